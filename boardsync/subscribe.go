// Copyright (c) 2026 the Behavior Chart authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package boardsync

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/gorilla/websocket"

	"github.com/behavior-chart/server/feed"
)

var ErrAlreadySubscribed = errors.New("store already has an open subscription")

// Subscribe opens the store's single feed channel. Connection status
// turns true only once the server acks the subscription; presence is
// announced right after the ack. Subscribe and Unsubscribe must be
// paired - a second Subscribe without an Unsubscribe is refused.
func (s *Store) Subscribe(ctx context.Context, feedURL, user string) error {
	s.mu.Lock()
	if s.conn != nil {
		s.mu.Unlock()
		return ErrAlreadySubscribed
	}
	s.mu.Unlock()

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, feedURL, nil)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.conn = conn
	s.mu.Unlock()

	go s.readLoop(conn, user)

	return nil
}

// Unsubscribe closes the channel if one is open and resets connection
// status. Safe to call when no channel is open.
func (s *Store) Unsubscribe() {
	s.mu.Lock()
	conn := s.conn
	s.conn = nil
	s.connected = false
	s.mu.Unlock()

	if conn != nil {
		conn.Close()
	}
}

// readLoop applies feed events until the channel closes. Events that
// arrive after Unsubscribe are discarded with the connection;
// there is no draining or cancellation handshake.
func (s *Store) readLoop(conn *websocket.Conn, user string) {
	defer s.setConnected(false)

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) &&
				!errors.Is(err, websocket.ErrCloseSent) {
				slog.Debug("feed channel closed", "session_id", s.sessionID, "error", err)
			}
			return
		}

		var ev feed.Event
		if err := json.Unmarshal(message, &ev); err != nil {
			slog.Warn("invalid feed event", "session_id", s.sessionID, "error", err)
			continue
		}

		if ev.Type == feed.EventSubscribed {
			s.setConnected(true)
			// Announce local presence now that the channel is live
			announce := feed.Event{Type: feed.EventPresenceTrack, SessionID: s.sessionID, User: user}
			if err := conn.WriteJSON(announce); err != nil {
				slog.Warn("presence announce failed", "session_id", s.sessionID, "error", err)
			}
			continue
		}

		s.ApplyRemote(ev)
	}
}
