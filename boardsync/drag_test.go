// Copyright (c) 2026 the Behavior Chart authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package boardsync

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/behavior-chart/server/models"
)

// fakeWriter records position writes and can be told to fail.
type fakeWriter struct {
	calls []struct {
		pinID string
		x, y  float64
	}
	err error
}

func (f *fakeWriter) MovePin(_ context.Context, pinID string, x, y float64) error {
	f.calls = append(f.calls, struct {
		pinID string
		x, y  float64
	}{pinID, x, y})
	return f.err
}

func newTestController(writer *fakeWriter) (*DragController, *Store) {
	store := NewStore("session-1")
	store.AddPin(testPin("a", 0.5, 0.5))
	board := Rect{Left: 100, Top: 50, Width: 800, Height: 600}
	return NewDragController(store, writer, board), store
}

func TestDrag_FullGesture(t *testing.T) {
	writer := &fakeWriter{}
	ctrl, store := newTestController(writer)

	require.NoError(t, ctrl.Begin("a"))
	assert.Equal(t, StateDragging, store.PinState("a"))

	// Mid-drag positions render directly, no store writes
	pos, ok := ctrl.Move(500, 350)
	require.True(t, ok)
	assert.InDelta(t, 0.5, pos.X, 1e-9)
	assert.InDelta(t, 0.5, pos.Y, 1e-9)
	assert.Empty(t, writer.calls)

	// Pointer-up issues exactly one write and leaves the pin pending
	pos, err := ctrl.End(context.Background(), 900, 650)
	require.NoError(t, err)
	assert.Equal(t, models.PositionMax, pos.X) // bottom-right corner clamps
	assert.Equal(t, models.PositionMax, pos.Y)
	require.Len(t, writer.calls, 1)
	assert.Equal(t, "a", writer.calls[0].pinID)
	assert.Equal(t, StatePendingWrite, store.PinState("a"))
}

// Persisted coordinates stay inside [0.02, 0.98] for any pointer
// input, including points far outside the board's bounding rectangle.
func TestDrag_ClampsArbitraryPointerInput(t *testing.T) {
	points := []struct{ px, py float64 }{
		{-10_000, -10_000},
		{0, 0},
		{100, 50},    // exact top-left corner
		{900, 650},   // exact bottom-right corner
		{1e9, 1e9},   // absurdly far
		{-1e9, 1e9},  // mixed
		{450.5, 123}, // interior
	}

	for _, pt := range points {
		writer := &fakeWriter{}
		ctrl, _ := newTestController(writer)

		require.NoError(t, ctrl.Begin("a"))
		_, err := ctrl.End(context.Background(), pt.px, pt.py)
		require.NoError(t, err)

		require.Len(t, writer.calls, 1)
		call := writer.calls[0]
		assert.GreaterOrEqual(t, call.x, models.PositionMin, "x for pointer (%v,%v)", pt.px, pt.py)
		assert.LessOrEqual(t, call.x, models.PositionMax, "x for pointer (%v,%v)", pt.px, pt.py)
		assert.GreaterOrEqual(t, call.y, models.PositionMin, "y for pointer (%v,%v)", pt.px, pt.py)
		assert.LessOrEqual(t, call.y, models.PositionMax, "y for pointer (%v,%v)", pt.px, pt.py)
	}
}

func TestDrag_WriteFailureFlagsPin(t *testing.T) {
	writer := &fakeWriter{err: errors.New("boom")}
	ctrl, store := newTestController(writer)

	require.NoError(t, ctrl.Begin("a"))
	_, err := ctrl.End(context.Background(), 500, 350)

	require.Error(t, err)
	// No retry, just a visible error state for the user to re-drag
	assert.Equal(t, StateError, store.PinState("a"))
	assert.Len(t, writer.calls, 1)
}

func TestDrag_OneGestureAtATime(t *testing.T) {
	writer := &fakeWriter{}
	ctrl, store := newTestController(writer)
	store.AddPin(testPin("b", 0.2, 0.2))

	require.NoError(t, ctrl.Begin("a"))
	assert.ErrorIs(t, ctrl.Begin("b"), ErrDragInProgress)

	_, err := ctrl.End(context.Background(), 500, 350)
	require.NoError(t, err)

	// Idle again: Move reports no gesture, End refuses
	_, ok := ctrl.Move(10, 10)
	assert.False(t, ok)
	_, err = ctrl.End(context.Background(), 10, 10)
	assert.ErrorIs(t, err, ErrNotDragging)
}

func TestDrag_DegenerateBoardRect(t *testing.T) {
	writer := &fakeWriter{}
	store := NewStore("session-1")
	store.AddPin(testPin("a", 0.5, 0.5))
	ctrl := NewDragController(store, writer, Rect{})

	require.NoError(t, ctrl.Begin("a"))
	pos, err := ctrl.End(context.Background(), 123, 456)
	require.NoError(t, err)

	// Zero-size rects fall back to center rather than dividing by zero
	assert.Equal(t, 0.5, pos.X)
	assert.Equal(t, 0.5, pos.Y)
}

func TestCategoryFor(t *testing.T) {
	pin := testPin("a", 0.5, 0.55)

	assert.Equal(t, 2, CategoryFor(pin, 4))
	// Category count change re-derives membership with no pin movement
	assert.Equal(t, 1, CategoryFor(pin, 2))
	assert.Equal(t, 5, CategoryFor(pin, 10))
}
