// Copyright (c) 2026 the Behavior Chart authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package feed

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/behavior-chart/server/models"
)

// Client represents one subscribed feed connection, scoped to a session.
type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	sessionID string

	// user is the presence identity, empty until the client announces
	// itself with a presence.track event. Written only by the hub loop.
	user string
}

// Hub maintains active feed clients per session and fans events out to
// them. Handlers publish after their database commit, so delivery order
// follows storage commit order.
type Hub struct {
	rooms map[string]map[*Client]bool // session ID -> clients

	register   chan *Client
	unregister chan *Client
	track      chan trackRequest
	broadcast  chan *Event

	mu sync.RWMutex
}

type trackRequest struct {
	client *Client
	user   string
}

// NewHub creates a feed hub. Run must be started on its own goroutine.
func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		track:      make(chan trackRequest),
		broadcast:  make(chan *Event, 256),
	}
}

// NewClient wraps an upgraded connection for a session.
func NewClient(h *Hub, conn *websocket.Conn, sessionID string) *Client {
	return &Client{
		hub:       h,
		conn:      conn,
		send:      make(chan []byte, 64),
		sessionID: sessionID,
	}
}

// PublishPinInsert broadcasts a committed pin insert to the session.
func (h *Hub) PublishPinInsert(sessionID string, pin models.Pin) {
	h.publish(&Event{Type: EventPinInsert, SessionID: sessionID, Pin: &pin})
}

// PublishPinUpdate broadcasts a committed pin update to the session.
func (h *Hub) PublishPinUpdate(sessionID string, pin models.Pin) {
	h.publish(&Event{Type: EventPinUpdate, SessionID: sessionID, Pin: &pin})
}

// PublishPinDelete broadcasts a committed pin delete to the session.
func (h *Hub) PublishPinDelete(sessionID, pinID string) {
	h.publish(&Event{Type: EventPinDelete, SessionID: sessionID, PinID: pinID})
}

func (h *Hub) publish(ev *Event) {
	ev.Timestamp = time.Now()
	h.broadcast <- ev
}

// ActiveUsers returns the announced presence identities for a session.
func (h *Hub) ActiveUsers(sessionID string) []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.usersLocked(sessionID)
}

func (h *Hub) usersLocked(sessionID string) []string {
	users := []string{}
	for client := range h.rooms[sessionID] {
		if client.user != "" {
			users = append(users, client.user)
		}
	}
	return users
}

// Run processes register/unregister/broadcast traffic. All room and
// presence mutations happen on this goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.rooms[client.sessionID] == nil {
				h.rooms[client.sessionID] = make(map[*Client]bool)
			}
			h.rooms[client.sessionID][client] = true
			h.mu.Unlock()

			// Confirm the subscription before any events flow
			client.deliver(&Event{
				Type:      EventSubscribed,
				SessionID: client.sessionID,
				Timestamp: time.Now(),
			})

		case client := <-h.unregister:
			h.mu.Lock()
			var hadPresence bool
			if clients, ok := h.rooms[client.sessionID]; ok {
				if _, ok := clients[client]; ok {
					hadPresence = client.user != ""
					delete(clients, client)
					close(client.send)
					if len(clients) == 0 {
						delete(h.rooms, client.sessionID)
					}
				}
			}
			h.mu.Unlock()

			if hadPresence {
				h.syncPresence(client.sessionID)
			}

		case req := <-h.track:
			h.mu.Lock()
			req.client.user = req.user
			h.mu.Unlock()

			h.syncPresence(req.client.sessionID)

		case ev := <-h.broadcast:
			h.fanOut(ev)
		}
	}
}

// syncPresence broadcasts the full active-user set for a session.
// Receivers replace their list rather than applying deltas.
func (h *Hub) syncPresence(sessionID string) {
	h.mu.RLock()
	users := h.usersLocked(sessionID)
	h.mu.RUnlock()

	h.fanOut(&Event{
		Type:      EventPresenceSync,
		SessionID: sessionID,
		Users:     users,
		Timestamp: time.Now(),
	})
}

func (h *Hub) fanOut(ev *Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		slog.Error("failed to marshal feed event", "error", err)
		return
	}

	h.mu.RLock()
	clients := make([]*Client, 0, len(h.rooms[ev.SessionID]))
	for client := range h.rooms[ev.SessionID] {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	for _, client := range clients {
		select {
		case client.send <- payload:
		default:
			// Slow client: drop it rather than stall the feed
			h.mu.Lock()
			if room, ok := h.rooms[ev.SessionID]; ok && room[client] {
				delete(room, client)
				close(client.send)
				if len(room) == 0 {
					delete(h.rooms, ev.SessionID)
				}
			}
			h.mu.Unlock()
		}
	}
}

func (c *Client) deliver(ev *Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		slog.Error("failed to marshal feed event", "error", err)
		return
	}
	select {
	case c.send <- payload:
	default:
	}
}
