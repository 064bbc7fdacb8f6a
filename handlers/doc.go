// Copyright (c) 2026 the Behavior Chart authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers implements HTTP request handlers for the API.

# Handler Organization

Handlers are grouped by resource, each holding its dependencies:

  - BoardHandler: board creation (with its session, transactionally)
    and the get-boards list/create pair
  - SessionHandler: share-code resolution, deactivation
  - PinHandler: pin list/create/move/delete, publishing every commit
    to the change feed
  - FeedHandler: websocket subscription endpoint

# Authorization Model

Board routes require a bearer token (auth.UserFromRequest, 401 on any
failure). Session and pin routes are link-authorized: knowing an active
session is the credential, matching how participants join with nothing
but the share URL.

# Write Boundary

All pin writes go through this package. Positions are clamped into
[0.02, 0.98] server-side, and feed events are published only after the
database write succeeds, so subscribers observe commit order.
*/
package handlers
