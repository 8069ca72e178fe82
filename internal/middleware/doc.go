// FeedForge - DP-1 Feed Operator for Signed Playlists and Channels
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedforge

// Package middleware provides chi-compatible HTTP middleware shared by
// the API router: Prometheus request instrumentation and structured
// request logging. Route-class concerns (CORS, rate limiting, security
// headers, authentication) live next to the router in internal/api.
package middleware
