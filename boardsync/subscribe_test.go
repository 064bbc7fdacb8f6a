// Copyright (c) 2026 the Behavior Chart authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package boardsync

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/behavior-chart/server/feed"
	"github.com/behavior-chart/server/models"
	"github.com/behavior-chart/server/router"
	"github.com/behavior-chart/server/testutil"
)

const (
	waitFor = 2 * time.Second
	tick    = 10 * time.Millisecond
)

// startTestServer brings up the real router, hub and an in-memory
// database, and returns a seeded session plus an API client.
func startTestServer(t *testing.T) (*APIClient, models.Session) {
	t.Helper()

	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()

	hub := feed.NewHub()
	go hub.Run()

	srv := httptest.NewServer(router.NewRouter(conn, cfg, hub))
	t.Cleanup(srv.Close)

	board := testutil.CreateTestBoard(t, conn, "creator-1", "Team Mood")
	session := testutil.CreateTestSession(t, conn, cfg, board.ID, true)

	return NewAPIClient(srv.URL, ""), session
}

func TestSubscribe_FeedRoundTrip(t *testing.T) {
	api, session := startTestServer(t)
	ctx := context.Background()

	store := NewStore(session.ID)

	// Initial load happens over the API, then the channel opens
	pins, err := api.LoadPins(ctx, session.ID)
	require.NoError(t, err)
	store.SetPins(pins)
	require.Empty(t, store.Pins())

	require.NoError(t, store.Subscribe(ctx, api.FeedURL(session.ID), "casey"))
	defer store.Unsubscribe()

	// Connection status flips only after the subscription ack
	require.Eventually(t, store.Connected, waitFor, tick)

	// Presence was announced after the ack and synced back to us
	require.Eventually(t, func() bool {
		users := store.ActiveUsers()
		return len(users) == 1 && users[0] == "casey"
	}, waitFor, tick)

	// A second subscription on the same store is refused
	assert.ErrorIs(t, store.Subscribe(ctx, api.FeedURL(session.ID), "casey"), ErrAlreadySubscribed)

	// New pins arrive via the feed's insert event, not optimistically
	created, err := api.AddPin(ctx, session.ID, "  Robin  ", "casey")
	require.NoError(t, err)
	assert.Equal(t, "Robin", created.PersonName)
	assert.Equal(t, 0.5, created.BoardXPercentage)

	require.Eventually(t, func() bool {
		return len(store.Pins()) == 1
	}, waitFor, tick)

	// Drag echo: the write's feed event settles the local drag state
	store.MarkPinDragging(created.ID)
	require.NoError(t, api.MovePin(ctx, created.ID, 5.0, -1.0))

	require.Eventually(t, func() bool {
		pin, ok := store.Pin(created.ID)
		return ok && store.PinState(created.ID) == StateSettled &&
			pin.BoardXPercentage == models.PositionMax &&
			pin.BoardYPercentage == models.PositionMin
	}, waitFor, tick)

	// Hard delete fans out as a delete event
	require.NoError(t, api.RemovePin(ctx, created.ID))
	require.Eventually(t, func() bool {
		return len(store.Pins()) == 0
	}, waitFor, tick)

	store.Unsubscribe()
	require.Eventually(t, func() bool { return !store.Connected() }, waitFor, tick)
}

func TestSubscribe_UnknownSessionRejected(t *testing.T) {
	api, _ := startTestServer(t)

	store := NewStore("no-such-session")
	err := store.Subscribe(context.Background(), api.FeedURL("no-such-session"), "casey")

	// The upgrade is refused with a 404 before any channel exists
	require.Error(t, err)
	assert.False(t, store.Connected())
}
