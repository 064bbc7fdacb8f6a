// Copyright (c) 2026 the Behavior Chart authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/behavior-chart/server/auth"
	"github.com/behavior-chart/server/cliparse"
	"github.com/behavior-chart/server/middleware"
	"github.com/behavior-chart/server/models"
)

type BoardHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewBoardHandler(db *sql.DB, cfg cliparse.Config) *BoardHandler {
	return &BoardHandler{db: db, cfg: cfg}
}

// CreateBoard handles POST /api/boards
// Creates a board and its session in one transaction, so a failed
// session insert can never leave an orphaned board behind.
func (h *BoardHandler) CreateBoard(w http.ResponseWriter, r *http.Request) {
	user, err := auth.UserFromRequest(r, h.cfg.AuthTokenSecret)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, err.Error())
		return
	}

	var req models.CreateBoardRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Validate input
	if req.Title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}

	sessionName := req.SessionName
	if sessionName == "" {
		sessionName = req.Title
	}

	categories := req.Categories
	if len(categories) == 0 {
		categories = models.DefaultCategories()
	}

	categoriesJSON, err := json.Marshal(categories)
	if err != nil {
		slog.Error("failed to marshal categories", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create board")
		return
	}

	now := time.Now()
	board := models.Board{
		ID:         uuid.NewString(),
		Title:      req.Title,
		CreatorID:  user.ID,
		Categories: categories,
		CreatedAt:  now,
	}
	session := models.Session{
		ID:          uuid.NewString(),
		BoardID:     board.ID,
		SessionName: sessionName,
		IsActive:    true,
		CreatedAt:   now,
	}
	session.ShareableCode = auth.GenerateShareCode(session.ID, h.cfg.ShareCodeSalt)

	// Board and session are one unit of work
	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO boards (id, title, creator_id, categories, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, board.ID, board.Title, board.CreatorID, string(categoriesJSON), board.CreatedAt)

	if err != nil {
		slog.Error("failed to insert board", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create board")
		return
	}

	_, err = tx.Exec(`
		INSERT INTO board_sessions (id, board_id, session_name, shareable_code, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, session.ID, session.BoardID, session.SessionName, session.ShareableCode, session.IsActive, session.CreatedAt)

	if err != nil {
		slog.Error("failed to insert session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create board")
		return
	}

	slog.Info("board created", "board_id", board.ID, "session_id", session.ID, "creator", user.ID)

	middleware.JSONResponse(w, http.StatusOK, models.CreateBoardResponse{
		Board:    board,
		Session:  session,
		ShareURL: h.cfg.SiteURL + "/session/" + session.ShareableCode,
	})
}

// ListBoards handles GET /api/get-boards
// Returns the caller's boards, newest first.
func (h *BoardHandler) ListBoards(w http.ResponseWriter, r *http.Request) {
	user, err := auth.UserFromRequest(r, h.cfg.AuthTokenSecret)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, err.Error())
		return
	}

	rows, err := h.db.Query(`
		SELECT id, title, description, creator_id, categories, created_at
		FROM boards
		WHERE creator_id = $1
		ORDER BY created_at DESC
	`, user.ID)

	if err != nil {
		slog.Error("failed to query boards", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch boards")
		return
	}
	defer rows.Close()

	boards := []models.Board{}
	for rows.Next() {
		board, err := scanBoard(rows)
		if err != nil {
			slog.Error("failed to scan board", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch boards")
			return
		}
		boards = append(boards, board)
	}

	middleware.JSONResponse(w, http.StatusOK, models.ListBoardsResponse{
		Success: true,
		Data:    boards,
		User:    models.UserSummary{ID: user.ID, Email: user.Email},
	})
}

// CreateSimpleBoard handles POST /api/get-boards
// The lightweight creation variant: name plus optional description,
// default category set.
func (h *BoardHandler) CreateSimpleBoard(w http.ResponseWriter, r *http.Request) {
	user, err := auth.UserFromRequest(r, h.cfg.AuthTokenSecret)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, err.Error())
		return
	}

	var req models.CreateSimpleBoardRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Board name is required")
		return
	}

	categories := models.DefaultCategories()
	categoriesJSON, err := json.Marshal(categories)
	if err != nil {
		slog.Error("failed to marshal categories", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create board")
		return
	}

	board := models.Board{
		ID:         uuid.NewString(),
		Title:      req.Name,
		CreatorID:  user.ID,
		Categories: categories,
		CreatedAt:  time.Now(),
	}

	var description sql.NullString
	if req.Description != "" {
		description = sql.NullString{String: req.Description, Valid: true}
		board.Description = &req.Description
	}

	_, err = h.db.Exec(`
		INSERT INTO boards (id, title, description, creator_id, categories, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, board.ID, board.Title, description, board.CreatorID, string(categoriesJSON), board.CreatedAt)

	if err != nil {
		slog.Error("failed to insert board", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create board")
		return
	}

	slog.Info("board created", "board_id", board.ID, "creator", user.ID)

	middleware.JSONResponse(w, http.StatusOK, models.CreateSimpleBoardResponse{
		Success: true,
		Data:    board,
	})
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanBoard(s scanner) (models.Board, error) {
	var board models.Board
	var description sql.NullString
	var categoriesJSON string

	if err := s.Scan(&board.ID, &board.Title, &description, &board.CreatorID, &categoriesJSON, &board.CreatedAt); err != nil {
		return models.Board{}, err
	}

	if description.Valid {
		board.Description = &description.String
	}
	if err := json.Unmarshal([]byte(categoriesJSON), &board.Categories); err != nil {
		return models.Board{}, err
	}

	return board, nil
}
