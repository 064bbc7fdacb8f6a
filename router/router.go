// Copyright (c) 2026 the Behavior Chart authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/behavior-chart/server/cliparse"
	"github.com/behavior-chart/server/feed"
	"github.com/behavior-chart/server/handlers"
	"github.com/behavior-chart/server/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config, hub *feed.Hub) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	boardHandler := handlers.NewBoardHandler(db, cfg)
	sessionHandler := handlers.NewSessionHandler(db, cfg)
	pinHandler := handlers.NewPinHandler(db, cfg, hub)
	feedHandler := handlers.NewFeedHandler(db, hub)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Board management (authenticated)
	mux.HandleFunc("POST /api/boards", middleware.WithLogging(boardHandler.CreateBoard))
	mux.HandleFunc("GET /api/get-boards", middleware.WithLogging(boardHandler.ListBoards))
	mux.HandleFunc("POST /api/get-boards", middleware.WithLogging(boardHandler.CreateSimpleBoard))

	// Sessions (share-code resolution is public)
	mux.HandleFunc("GET /api/sessions/{code}", middleware.WithLogging(sessionHandler.ResolveSession))
	mux.HandleFunc("POST /api/sessions/{id}/deactivate", middleware.WithLogging(sessionHandler.DeactivateSession))

	// Pins (link-authorized participant operations)
	mux.HandleFunc("GET /api/sessions/{id}/pins", middleware.WithLogging(pinHandler.ListPins))
	mux.HandleFunc("POST /api/sessions/{id}/pins", middleware.WithLogging(pinHandler.CreatePin))
	mux.HandleFunc("PATCH /api/pins/{id}/position", middleware.WithLogging(pinHandler.MovePin))
	mux.HandleFunc("DELETE /api/pins/{id}", middleware.WithLogging(pinHandler.DeletePin))

	// Change feed (websocket; logging middleware would hold the
	// connection's log entry open for its whole lifetime, so it is
	// registered bare)
	mux.HandleFunc("GET /api/sessions/{id}/feed", feedHandler.Subscribe)

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("behavior-chart API v1"))
	})

	return mux
}
