// Copyright (c) 2026 the Behavior Chart authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS. The DDL sticks to
// the dialect both supported drivers accept (sqlite and postgres), so
// categories are stored as JSON text and timestamps are set by the
// application.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Boards: category templates, immutable after creation
CREATE TABLE IF NOT EXISTS boards (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT,
    creator_id TEXT NOT NULL,
    categories TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_boards_creator_id ON boards(creator_id);

-- Sessions: shareable live instances of a board
CREATE TABLE IF NOT EXISTS board_sessions (
    id TEXT PRIMARY KEY,
    board_id TEXT NOT NULL REFERENCES boards(id) ON DELETE CASCADE,
    session_name TEXT NOT NULL,
    shareable_code TEXT NOT NULL UNIQUE,
    is_active BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_board_sessions_board_id ON board_sessions(board_id);
CREATE INDEX IF NOT EXISTS idx_board_sessions_code ON board_sessions(shareable_code);

-- Pins: named markers at normalized positions, hard-deleted
CREATE TABLE IF NOT EXISTS pin_placements (
    id TEXT PRIMARY KEY,
    session_id TEXT NOT NULL REFERENCES board_sessions(id) ON DELETE CASCADE,
    person_name TEXT NOT NULL,
    board_x_percentage REAL NOT NULL CHECK (board_x_percentage >= 0 AND board_x_percentage <= 1),
    board_y_percentage REAL NOT NULL CHECK (board_y_percentage >= 0 AND board_y_percentage <= 1),
    placed_by TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_pin_placements_session_id ON pin_placements(session_id);
`
