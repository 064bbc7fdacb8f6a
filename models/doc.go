// Copyright (c) 2026 the Behavior Chart authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreateBoardRequest: title, sessionName, categories
  - CreateSimpleBoardRequest: name, description
  - CreatePinRequest: personName, placedBy
  - MovePinRequest: x, y

# Response Types

Types for JSON responses:

  - CreateBoardResponse: board, session, shareUrl
  - ListBoardsResponse: success, data, user
  - CreateSimpleBoardResponse: success, data
  - ResolveSessionResponse: session, board
  - ListPinsResponse: pins
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - Board: category template, owned by one creator
  - Category: named, colored band with a fixed position index
  - Session: shareable live instance of a board
  - Pin: named marker at a normalized (x, y) position

# Position Math

Normalized coordinates are clamped into [0.02, 0.98] by every writer:

	x = models.ClampPosition(x)

Category membership is derived, never stored:

	idx := models.CategoryIndex(pin.BoardYPercentage, len(board.Categories))

# Defaults

DefaultCategories returns the documented four-band set (order and
colors fixed) applied when a board is created without categories.
*/
package models
