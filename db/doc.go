// Copyright (c) 2026 the Behavior Chart authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

The schema includes:

  - boards: Category templates, owned by one creator
  - board_sessions: Shareable live instances of a board
  - pin_placements: Named markers at normalized positions

# Relationships

	boards 1──* board_sessions
	board_sessions 1──* pin_placements

All foreign keys use ON DELETE CASCADE. Pins are hard-deleted; removal
reaches clients through the feed's delete event.

# Portability

The DDL is restricted to what both supported drivers (modernc.org/sqlite
and lib/pq) accept: categories are stored as JSON text, booleans bind as
native bool on both, and all row timestamps are written explicitly by
the application rather than computed in the database.

# Indexes

Performance indexes on:

  - boards.creator_id
  - board_sessions.board_id
  - board_sessions.shareable_code (unique)
  - pin_placements.session_id
*/
package db
