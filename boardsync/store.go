// Copyright (c) 2026 the Behavior Chart authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package boardsync

import (
	"sync"
	"time"

	"github.com/behavior-chart/server/feed"
	"github.com/behavior-chart/server/models"
)

// SyncState tags a pin's position relative to durable storage.
type SyncState int

const (
	// StateSettled: local value matches the last feed echo.
	StateSettled SyncState = iota
	// StateDragging: a local drag gesture is in progress.
	StateDragging
	// StatePendingWrite: the drag ended and its write is in flight;
	// the state holds until the feed echoes the confirmed update.
	StatePendingWrite
	// StateError: the drag's write failed; the user must re-drag.
	StateError
)

// PinPatch is a shallow partial update; nil fields are left untouched.
type PinPatch struct {
	PersonName *string
	X          *float64
	Y          *float64
	PlacedBy   *string
	UpdatedAt  *time.Time
}

// Store is the single source of truth for one subscribed session: the
// pin list, connection status, and active-user set. Construct one per
// open session and tear it down on navigation away; nothing here is
// process-global.
type Store struct {
	mu          sync.RWMutex
	sessionID   string
	pins        []models.Pin
	states      map[string]SyncState
	activeUsers []string
	connected   bool

	conn connCloser
}

type connCloser interface {
	Close() error
}

// NewStore creates an empty store for a session.
func NewStore(sessionID string) *Store {
	return &Store{
		sessionID: sessionID,
		states:    make(map[string]SyncState),
	}
}

// SessionID returns the session this store is bound to.
func (s *Store) SessionID() string {
	return s.sessionID
}

// SetPins replaces the full pin list (used after initial load). No
// validation; trusts the caller.
func (s *Store) SetPins(pins []models.Pin) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pins = append([]models.Pin(nil), pins...)
}

// Pins returns a copy of the current pin list.
func (s *Store) Pins() []models.Pin {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Pin(nil), s.pins...)
}

// Pin returns the pin with the given id, if present.
func (s *Store) Pin(id string) (models.Pin, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.pins {
		if p.ID == id {
			return p, true
		}
	}
	return models.Pin{}, false
}

// AddPin appends a pin to the list.
func (s *Store) AddPin(pin models.Pin) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pins = append(s.pins, pin)
}

// UpdatePin shallow-merges the patch onto the pin with the given id.
// Unknown id is a no-op. Idempotent for identical patches.
func (s *Store) UpdatePin(id string, patch PinPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.pins {
		if s.pins[i].ID != id {
			continue
		}
		if patch.PersonName != nil {
			s.pins[i].PersonName = *patch.PersonName
		}
		if patch.X != nil {
			s.pins[i].BoardXPercentage = *patch.X
		}
		if patch.Y != nil {
			s.pins[i].BoardYPercentage = *patch.Y
		}
		if patch.PlacedBy != nil {
			s.pins[i].PlacedBy = *patch.PlacedBy
		}
		if patch.UpdatedAt != nil {
			s.pins[i].UpdatedAt = *patch.UpdatedAt
		}
		return
	}
}

// RemovePin deletes a pin and its sync state.
func (s *Store) RemovePin(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.pins {
		if s.pins[i].ID == id {
			s.pins = append(s.pins[:i], s.pins[i+1:]...)
			break
		}
	}
	delete(s.states, id)
}

// PinState reports a pin's sync state; unknown pins are settled.
func (s *Store) PinState(id string) SyncState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.states[id]
}

// MarkPinDragging transitions a pin into the local drag state.
func (s *Store) MarkPinDragging(id string) {
	s.setState(id, StateDragging)
}

// MarkPinPendingWrite records that the drag's write is in flight.
func (s *Store) MarkPinPendingWrite(id string) {
	s.setState(id, StatePendingWrite)
}

// MarkPinSettled clears any in-flight drag state for a pin.
func (s *Store) MarkPinSettled(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, id)
}

// MarkPinError flags a pin whose position write failed.
func (s *Store) MarkPinError(id string) {
	s.setState(id, StateError)
}

func (s *Store) setState(id string, state SyncState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[id] = state
}

// ActiveUsers returns the last presence sync's user set.
func (s *Store) ActiveUsers() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.activeUsers...)
}

// Connected reports whether the feed subscription is confirmed.
func (s *Store) Connected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.connected
}

func (s *Store) setActiveUsers(users []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeUsers = append([]string(nil), users...)
}

func (s *Store) setConnected(connected bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connected = connected
}

// ApplyRemote applies an authoritative feed event to local state.
//
// A remote update for a pin that is locally Dragging or PendingWrite
// settles it: the remote value is the last one storage committed, so
// it wins over any stale local guess. The echo of our own write is the
// common case - it carries the position we just persisted.
func (s *Store) ApplyRemote(ev feed.Event) {
	switch ev.Type {
	case feed.EventPinInsert:
		if ev.Pin != nil {
			s.AddPin(*ev.Pin)
		}

	case feed.EventPinUpdate:
		if ev.Pin == nil {
			return
		}
		s.mu.Lock()
		if st, ok := s.states[ev.Pin.ID]; ok && (st == StateDragging || st == StatePendingWrite) {
			delete(s.states, ev.Pin.ID)
		}
		for i := range s.pins {
			if s.pins[i].ID == ev.Pin.ID {
				s.pins[i] = *ev.Pin
				break
			}
		}
		s.mu.Unlock()

	case feed.EventPinDelete:
		if ev.PinID != "" {
			s.RemovePin(ev.PinID)
		}

	case feed.EventPresenceSync:
		s.setActiveUsers(ev.Users)
	}
}
