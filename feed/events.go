// Copyright (c) 2026 the Behavior Chart authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package feed

import (
	"time"

	"github.com/behavior-chart/server/models"
)

// Event types
const (
	// Server -> client
	EventSubscribed   = "subscribed"
	EventPinInsert    = "pin.insert"
	EventPinUpdate    = "pin.update"
	EventPinDelete    = "pin.delete"
	EventPresenceSync = "presence.sync"

	// Client -> server
	EventPresenceTrack = "presence.track"
)

// Event is a change-feed message. Pin is set on insert/update, PinID on
// delete, Users on presence sync, User on a presence announcement.
type Event struct {
	Type      string      `json:"type"`
	SessionID string      `json:"sessionId"`
	Pin       *models.Pin `json:"pin,omitempty"`
	PinID     string      `json:"pinId,omitempty"`
	Users     []string    `json:"users,omitempty"`
	User      string      `json:"user,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}
