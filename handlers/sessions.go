// Copyright (c) 2026 the Behavior Chart authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/behavior-chart/server/auth"
	"github.com/behavior-chart/server/cliparse"
	"github.com/behavior-chart/server/middleware"
	"github.com/behavior-chart/server/models"
)

type SessionHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewSessionHandler(db *sql.DB, cfg cliparse.Config) *SessionHandler {
	return &SessionHandler{db: db, cfg: cfg}
}

// ResolveSession handles GET /api/sessions/{code}
// Resolves a shareable code to an active session and its board. An
// unknown code, an inactive session, and a missing parent board all
// answer 404 - participants only learn that the link is dead.
func (h *SessionHandler) ResolveSession(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	if code == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "code is required")
		return
	}

	var session models.Session
	err := h.db.QueryRow(`
		SELECT id, board_id, session_name, shareable_code, is_active, created_at
		FROM board_sessions
		WHERE shareable_code = $1 AND is_active = $2
	`, code, true).Scan(
		&session.ID, &session.BoardID, &session.SessionName,
		&session.ShareableCode, &session.IsActive, &session.CreatedAt,
	)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Session not found")
		return
	}
	if err != nil {
		slog.Error("failed to query session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	board, err := h.loadBoard(session.BoardID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Session not found")
		return
	}
	if err != nil {
		slog.Error("failed to query board", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ResolveSessionResponse{
		Session: session,
		Board:   board,
	})
}

// DeactivateSession handles POST /api/sessions/{id}/deactivate
// Only the board's creator may deactivate; the share link stops
// resolving afterwards but existing pins remain readable through the
// pins endpoint.
func (h *SessionHandler) DeactivateSession(w http.ResponseWriter, r *http.Request) {
	user, err := auth.UserFromRequest(r, h.cfg.AuthTokenSecret)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, err.Error())
		return
	}

	sessionID := r.PathValue("id")
	if sessionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "session id is required")
		return
	}

	var session models.Session
	var creatorID string
	err = h.db.QueryRow(`
		SELECT s.id, s.board_id, s.session_name, s.shareable_code, s.is_active, s.created_at, b.creator_id
		FROM board_sessions s
		JOIN boards b ON s.board_id = b.id
		WHERE s.id = $1
	`, sessionID).Scan(
		&session.ID, &session.BoardID, &session.SessionName,
		&session.ShareableCode, &session.IsActive, &session.CreatedAt, &creatorID,
	)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Session not found")
		return
	}
	if err != nil {
		slog.Error("failed to query session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if creatorID != user.ID {
		middleware.ErrorResponse(w, http.StatusForbidden, "Only the board creator can deactivate a session")
		return
	}

	_, err = h.db.Exec(`
		UPDATE board_sessions SET is_active = $1 WHERE id = $2
	`, false, sessionID)

	if err != nil {
		slog.Error("failed to deactivate session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to deactivate session")
		return
	}

	session.IsActive = false
	slog.Info("session deactivated", "session_id", sessionID, "by", user.ID)

	middleware.JSONResponse(w, http.StatusOK, session)
}

func (h *SessionHandler) loadBoard(boardID string) (models.Board, error) {
	row := h.db.QueryRow(`
		SELECT id, title, description, creator_id, categories, created_at
		FROM boards
		WHERE id = $1
	`, boardID)
	return scanBoard(row)
}
