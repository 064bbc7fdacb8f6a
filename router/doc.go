// Copyright (c) 2026 the Behavior Chart authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Behavior Chart API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg, hub)

# Endpoints

Health:

	GET /health

Board management (requires Authorization: Bearer token):

	POST /api/boards     - Create board with session and share link
	GET  /api/get-boards - List the caller's boards
	POST /api/get-boards - Create board (name + description variant)

Sessions (share-code resolution is public):

	GET  /api/sessions/{code}            - Resolve a share code
	POST /api/sessions/{id}/deactivate   - Deactivate (creator only)

Pins (link-authorized participant operations):

	GET    /api/sessions/{id}/pins  - List session pins
	POST   /api/sessions/{id}/pins  - Add a pin (starts centered)
	PATCH  /api/pins/{id}/position  - Move a pin
	DELETE /api/pins/{id}           - Remove a pin

Change feed:

	GET /api/sessions/{id}/feed - Websocket feed of committed changes

# Handler Initialization

The router creates handler instances with dependency injection:

	boardHandler := handlers.NewBoardHandler(db, cfg)
	sessionHandler := handlers.NewSessionHandler(db, cfg)
	pinHandler := handlers.NewPinHandler(db, cfg, hub)
	feedHandler := handlers.NewFeedHandler(db, hub)

Pin and feed handlers additionally receive the feed hub so committed
mutations reach subscribed clients.
*/
package router
