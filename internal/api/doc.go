// FeedForge - DP-1 Feed Operator for Signed Playlists and Channels
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedforge

/*
Package api provides the HTTP REST API layer for FeedForge.

This package implements the DP-1 feed operator surface: CRUD for playlists
and channels, read access to playlist items, and manual queue-drain
endpoints. It is the only package that speaks HTTP; everything below it
works in terms of domain types.

Key Components:

  - Router: route configuration and the middleware stack
  - Handler: request handlers for every endpoint
  - ChiMiddleware: CORS, per-IP rate limiting, security headers
  - Response formatting: flat JSON error contract ({error, message})
  - Authentication integration: bearer tokens (shared secret or JWT)
    on every write route via internal/auth

API Surface:

1. Core (/api/v1):
  - GET /health liveness probe
  - GET / service description and endpoint index

2. Playlists (/api/v1/playlists):
  - Public paginated reads by UUID or slug, optional channel filter
  - Bearer-gated POST, PUT, PATCH, DELETE with optional async
    persistence via Prefer: respond-async

3. Playlist items (/api/v1/playlist-items):
  - Read-only; items are derived from playlist bodies and addressed
    by server-assigned UUID

4. Channels (/api/v1/channels):
  - Same split as playlists; channel bodies carry playlist references
    that the write path resolves before signing

5. Queues (/api/v1/queues):
  - process-message and process-batch apply WriteOperationMessages
    directly, exactly as the queue consumer would

6. Observability (root level):
  - GET /metrics Prometheus exposition
  - GET /swagger/* interactive API documentation

Usage Example:

	import (
	    "github.com/tomtom215/feedforge/internal/api"
	    "github.com/tomtom215/feedforge/internal/auth"
	)

	handler := api.NewHandler(engine, coordinator, processor, version, minDPVersion)
	router := api.NewRouter(handler, api.NewChiMiddleware(nil), authenticator)

	http.ListenAndServe(":8787", router.Setup())

Error Contract:

Every error response is a flat JSON object with a machine-readable tag
and a human-readable message. Tags are stable API surface; messages are
not. See models.ErrorResponse for the tag inventory.

Security:

  - Wildcard CORS: signed feeds are public documents
  - Bearer auth on all write routes (shared secret or Ed25519 JWT)
  - Per-IP rate limiting, stricter on writes
  - Request bodies capped at 2 MiB
*/
package api
