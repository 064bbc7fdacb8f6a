// Copyright (c) 2026 the Behavior Chart authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/behavior-chart/server/feed"
	"github.com/behavior-chart/server/middleware"
)

type FeedHandler struct {
	db  *sql.DB
	hub *feed.Hub
}

func NewFeedHandler(db *sql.DB, hub *feed.Hub) *FeedHandler {
	return &FeedHandler{db: db, hub: hub}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Cross-origin board UIs are expected; the share code is the
	// authorization boundary, not the Origin header.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Subscribe handles GET /api/sessions/{id}/feed
// Upgrades the connection and attaches it to the session's feed room.
// The hub sends the subscription ack; the client announces presence
// after receiving it.
func (h *FeedHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")
	if sessionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "session id is required")
		return
	}

	var active bool
	err := h.db.QueryRow(`
		SELECT is_active FROM board_sessions WHERE id = $1
	`, sessionID).Scan(&active)

	if err == sql.ErrNoRows || (err == nil && !active) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Session not found")
		return
	}
	if err != nil {
		slog.Error("failed to query session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("websocket upgrade failed", "session_id", sessionID, "error", err)
		return
	}

	client := feed.NewClient(h.hub, conn, sessionID)
	h.hub.Register(client)

	slog.Info("feed subscribed", "session_id", sessionID, "remote", r.RemoteAddr)

	go client.WritePump()
	go client.ReadPump()
}
