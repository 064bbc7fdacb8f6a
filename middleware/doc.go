// Copyright (c) 2026 the Behavior Chart authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and JSON helpers.

# Request Logging

WithLogging wraps handlers with structured request/completion logs:

	mux.HandleFunc("POST /api/boards", middleware.WithLogging(handler.CreateBoard))

# JSON Helpers

Consistent JSON responses across all handlers:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
	err := middleware.ParseJSONBody(r, &req)

ErrorResponse produces the {error, message} shape every endpoint uses.

# CORS

CORS wraps the whole mux, reflects the request origin, and answers
preflight OPTIONS requests, so the board UI can call the API from a
different origin during development.
*/
package middleware
