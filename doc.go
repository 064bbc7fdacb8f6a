// Copyright (c) 2026 the Behavior Chart authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Behavior Chart API server.

Behavior Chart is a collaborative board service: a board is a stack of
labeled, colored categories; a session is its shareable live instance;
participants join via the share URL and drag named pins around the
board, with every change fanned out over a websocket feed in real time.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=file:chart.db AUTH_TOKEN_SECRET=... SHARE_CODE_SALT=... go run .

Or with flags:

	go run . -p 4210 -d "postgres://..." -t postgres

A .env file is loaded when present (godotenv).

# Configuration

Required settings:

  - DATABASE_URL (-d): Database connection string
  - AUTH_TOKEN_SECRET (-token-secret): Secret for bearer token HMAC
  - SHARE_CODE_SALT (-code-salt): Secret for share code generation

Optional settings:

  - PORT (-p): Server port (default: 4210)
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - SITE_URL (-site-url): Public base URL for share links

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (boards, sessions, pins, feed)
  - feed: websocket change-feed hub (pin events, presence)
  - boardsync: client-side session store and drag controller
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types and position math
  - auth: Bearer tokens and share codes
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
