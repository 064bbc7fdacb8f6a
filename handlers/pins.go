// Copyright (c) 2026 the Behavior Chart authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/behavior-chart/server/cliparse"
	"github.com/behavior-chart/server/feed"
	"github.com/behavior-chart/server/middleware"
	"github.com/behavior-chart/server/models"
)

// PinHandler owns every pin write. Positions are re-clamped here no
// matter what the client sent, and each committed mutation is published
// to the session's change feed.
type PinHandler struct {
	db  *sql.DB
	cfg cliparse.Config
	hub *feed.Hub
}

func NewPinHandler(db *sql.DB, cfg cliparse.Config, hub *feed.Hub) *PinHandler {
	return &PinHandler{db: db, cfg: cfg, hub: hub}
}

// ListPins handles GET /api/sessions/{id}/pins
func (h *PinHandler) ListPins(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")
	if sessionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "session id is required")
		return
	}

	if _, err := h.sessionActive(sessionID); err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Session not found")
		return
	} else if err != nil {
		slog.Error("failed to query session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	rows, err := h.db.Query(`
		SELECT id, session_id, person_name, board_x_percentage, board_y_percentage,
		       placed_by, created_at, updated_at
		FROM pin_placements
		WHERE session_id = $1
		ORDER BY created_at
	`, sessionID)

	if err != nil {
		slog.Error("failed to query pins", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	pins := []models.Pin{}
	for rows.Next() {
		var pin models.Pin
		if err := rows.Scan(
			&pin.ID, &pin.SessionID, &pin.PersonName,
			&pin.BoardXPercentage, &pin.BoardYPercentage,
			&pin.PlacedBy, &pin.CreatedAt, &pin.UpdatedAt,
		); err != nil {
			slog.Error("failed to scan pin", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		pins = append(pins, pin)
	}

	middleware.JSONResponse(w, http.StatusOK, models.ListPinsResponse{Pins: pins})
}

// CreatePin handles POST /api/sessions/{id}/pins
// New pins start centered; clients wait for the feed's insert event
// rather than inserting optimistically.
func (h *PinHandler) CreatePin(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")
	if sessionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "session id is required")
		return
	}

	var req models.CreatePinRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	personName := strings.TrimSpace(req.PersonName)
	if personName == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "person name is required")
		return
	}

	active, err := h.sessionActive(sessionID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Session not found")
		return
	}
	if err != nil {
		slog.Error("failed to query session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !active {
		middleware.ErrorResponse(w, http.StatusConflict, "Session is not active")
		return
	}

	placedBy := strings.TrimSpace(req.PlacedBy)
	if placedBy == "" {
		placedBy = "user"
	}

	now := time.Now()
	pin := models.Pin{
		ID:               uuid.NewString(),
		SessionID:        sessionID,
		PersonName:       personName,
		BoardXPercentage: 0.5,
		BoardYPercentage: 0.5,
		PlacedBy:         placedBy,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	_, err = h.db.Exec(`
		INSERT INTO pin_placements (id, session_id, person_name, board_x_percentage,
		                            board_y_percentage, placed_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, pin.ID, pin.SessionID, pin.PersonName, pin.BoardXPercentage,
		pin.BoardYPercentage, pin.PlacedBy, pin.CreatedAt, pin.UpdatedAt)

	if err != nil {
		slog.Error("failed to insert pin", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create pin")
		return
	}

	slog.Info("pin created", "pin_id", pin.ID, "session_id", sessionID, "person", personName)

	h.hub.PublishPinInsert(sessionID, pin)

	middleware.JSONResponse(w, http.StatusCreated, pin)
}

// MovePin handles PATCH /api/pins/{id}/position
// Persists the final position of a drag. The feed's update event is
// what settles the dragging client's local state.
func (h *PinHandler) MovePin(w http.ResponseWriter, r *http.Request) {
	pinID := r.PathValue("id")
	if pinID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "pin id is required")
		return
	}

	var req models.MovePinRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	var pin models.Pin
	err := h.db.QueryRow(`
		SELECT id, session_id, person_name, board_x_percentage, board_y_percentage,
		       placed_by, created_at, updated_at
		FROM pin_placements
		WHERE id = $1
	`, pinID).Scan(
		&pin.ID, &pin.SessionID, &pin.PersonName,
		&pin.BoardXPercentage, &pin.BoardYPercentage,
		&pin.PlacedBy, &pin.CreatedAt, &pin.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Pin not found")
		return
	}
	if err != nil {
		slog.Error("failed to query pin", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	pin.BoardXPercentage = models.ClampPosition(req.X)
	pin.BoardYPercentage = models.ClampPosition(req.Y)
	pin.UpdatedAt = time.Now()

	_, err = h.db.Exec(`
		UPDATE pin_placements
		SET board_x_percentage = $1, board_y_percentage = $2, updated_at = $3
		WHERE id = $4
	`, pin.BoardXPercentage, pin.BoardYPercentage, pin.UpdatedAt, pinID)

	if err != nil {
		slog.Error("failed to update pin", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update pin")
		return
	}

	h.hub.PublishPinUpdate(pin.SessionID, pin)

	middleware.JSONResponse(w, http.StatusOK, pin)
}

// DeletePin handles DELETE /api/pins/{id}
// Hard delete; removal reaches clients through the feed's delete event.
func (h *PinHandler) DeletePin(w http.ResponseWriter, r *http.Request) {
	pinID := r.PathValue("id")
	if pinID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "pin id is required")
		return
	}

	var sessionID string
	err := h.db.QueryRow(`
		SELECT session_id FROM pin_placements WHERE id = $1
	`, pinID).Scan(&sessionID)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Pin not found")
		return
	}
	if err != nil {
		slog.Error("failed to query pin", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	_, err = h.db.Exec(`DELETE FROM pin_placements WHERE id = $1`, pinID)
	if err != nil {
		slog.Error("failed to delete pin", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete pin")
		return
	}

	slog.Info("pin deleted", "pin_id", pinID, "session_id", sessionID)

	h.hub.PublishPinDelete(sessionID, pinID)

	middleware.JSONResponse(w, http.StatusOK, models.DeletePinResponse{Success: true})
}

func (h *PinHandler) sessionActive(sessionID string) (bool, error) {
	var active bool
	err := h.db.QueryRow(`
		SELECT is_active FROM board_sessions WHERE id = $1
	`, sessionID).Scan(&active)
	return active, err
}
