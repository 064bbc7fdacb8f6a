// Copyright (c) 2026 the Behavior Chart authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/behavior-chart/server/auth"
	"github.com/behavior-chart/server/cliparse"
	"github.com/behavior-chart/server/db"
	"github.com/behavior-chart/server/models"
)

// SetupTestDB creates a fresh in-memory database with the full schema.
// A single connection is forced so the pool cannot split the :memory:
// database across connections.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	t.Cleanup(func() { conn.Close() })

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:            4210,
		DatabaseURL:     ":memory:",
		DatabaseType:    "sqlite",
		AuthTokenSecret: "test-token-secret",
		ShareCodeSalt:   "test-code-salt",
		SiteURL:         "http://chart.test",
	}
}

// IssueTestToken mints a valid bearer token for the test user.
func IssueTestToken(cfg cliparse.Config, userID, email string) string {
	return auth.IssueToken(userID, email, time.Hour, cfg.AuthTokenSecret)
}

// CreateTestBoard inserts a board and returns it.
func CreateTestBoard(t *testing.T, conn *sql.DB, creatorID, title string) models.Board {
	t.Helper()

	board := models.Board{
		ID:         uuid.NewString(),
		Title:      title,
		CreatorID:  creatorID,
		Categories: models.DefaultCategories(),
		CreatedAt:  time.Now(),
	}

	categoriesJSON, err := json.Marshal(board.Categories)
	if err != nil {
		t.Fatalf("Failed to marshal categories: %v", err)
	}

	_, err = conn.Exec(`
		INSERT INTO boards (id, title, creator_id, categories, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, board.ID, board.Title, board.CreatorID, string(categoriesJSON), board.CreatedAt)
	if err != nil {
		t.Fatalf("Failed to create test board: %v", err)
	}

	return board
}

// CreateTestSession inserts a session for a board and returns it.
func CreateTestSession(t *testing.T, conn *sql.DB, cfg cliparse.Config, boardID string, active bool) models.Session {
	t.Helper()

	session := models.Session{
		ID:          uuid.NewString(),
		BoardID:     boardID,
		SessionName: "Test Session",
		IsActive:    active,
		CreatedAt:   time.Now(),
	}
	session.ShareableCode = auth.GenerateShareCode(session.ID, cfg.ShareCodeSalt)

	_, err := conn.Exec(`
		INSERT INTO board_sessions (id, board_id, session_name, shareable_code, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, session.ID, session.BoardID, session.SessionName, session.ShareableCode, session.IsActive, session.CreatedAt)
	if err != nil {
		t.Fatalf("Failed to create test session: %v", err)
	}

	return session
}

// CreateTestPin inserts a pin at the given position and returns it.
func CreateTestPin(t *testing.T, conn *sql.DB, sessionID, personName string, x, y float64) models.Pin {
	t.Helper()

	now := time.Now()
	pin := models.Pin{
		ID:               uuid.NewString(),
		SessionID:        sessionID,
		PersonName:       personName,
		BoardXPercentage: x,
		BoardYPercentage: y,
		PlacedBy:         "user",
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	_, err := conn.Exec(`
		INSERT INTO pin_placements (id, session_id, person_name, board_x_percentage,
		                            board_y_percentage, placed_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, pin.ID, pin.SessionID, pin.PersonName, pin.BoardXPercentage,
		pin.BoardYPercentage, pin.PlacedBy, pin.CreatedAt, pin.UpdatedAt)
	if err != nil {
		t.Fatalf("Failed to create test pin: %v", err)
	}

	return pin
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

// CountRows returns the row count of a table.
func CountRows(t *testing.T, conn *sql.DB, table string) int {
	t.Helper()
	var n int
	if err := conn.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("Failed to count rows in %s: %v", table, err)
	}
	return n
}
