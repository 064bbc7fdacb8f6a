// Copyright (c) 2026 the Behavior Chart authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides authentication and token generation utilities.

# Bearer Tokens

Tokens use HMAC-SHA256 over a compact payload of user ID, email and
expiry, so no token state is stored server-side:

	token := auth.IssueToken(userID, email, 24*time.Hour, secret)
	user, err := auth.VerifyToken(token, secret)

Handlers extract and verify the Authorization header in one call:

	user, err := auth.UserFromRequest(r, cfg.AuthTokenSecret)

All error values (missing header, malformed header, bad signature,
expired) map to HTTP 401 at the handler boundary.

# Share Codes

Share codes create URL-friendly identifiers for board sessions:

	code := auth.GenerateShareCode(sessionID, salt)

Codes are base62 encoded (alphanumeric only) for easy sharing. They're
deterministic from the session ID and salt, so a session's share link
never changes.

# ID Generation

Random hex IDs where a uuid is not wanted:

	id, err := auth.GenerateID(16)  // 32 hex characters
*/
package auth
