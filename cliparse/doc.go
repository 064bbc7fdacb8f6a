// Copyright (c) 2026 the Behavior Chart authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 4210)
  - DatabaseURL: Database connection string (required)
  - DatabaseType: "sqlite" or "postgres" (default: sqlite)
  - AuthTokenSecret: Secret for bearer token HMAC (required)
  - ShareCodeSalt: Secret for session share code generation (required)
  - SiteURL: Public base URL used when building share links

# CLI Flags

	-p            Server port
	-d            Database URL
	-t            Database type
	-site-url     Public site URL
	-token-secret Bearer token secret
	-code-salt    Share code salt

# Environment Variables

Flags fall back to environment variables:

	PORT              → -p
	DATABASE_URL      → -d
	DATABASE_TYPE     → -t
	SITE_URL          → -site-url
	AUTH_TOKEN_SECRET → -token-secret
	SHARE_CODE_SALT   → -code-salt

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_URL must be provided
  - AUTH_TOKEN_SECRET must be provided
  - SHARE_CODE_SALT must be provided

SiteURL defaults to http://localhost:<port> when unset, which keeps
share links usable in local development.
*/
package cliparse
