// FeedForge - DP-1 Feed Operator for Signed Playlists and Channels
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedforge

// Package main provides the FeedForge HTTP server
//
// FeedForge is a DP-1 feed operator serving signed playlists and
// channels for blockchain-native digital art displays.
//
// @title FeedForge API
// @version 1.0
// @description DP-1 feed operator API for signed playlists and channels.
// @description
// @description ## Write Pipeline
// @description
// @description Every accepted write is validated, canonicalized per the DP-1
// @description specification, signed with the operator's Ed25519 key, stored, and
// @description acknowledged. Requests carrying `Prefer: respond-async` are instead
// @description queued and acknowledged with 202 before they are applied.
// @description
// @description ## Authentication
// @description
// @description Read endpoints are public: signed feeds are public documents.
// @description Write endpoints require a bearer token, either the operator's
// @description static API secret or a JWT from the configured issuer.
// @description
// @description ## Rate Limiting
// @description
// @description Default limits per client IP: 100 read requests and 30 write
// @description requests per minute. Exceeding either returns 429.
// @description
// @description ## Error Responses
// @description
// @description All error responses follow this format:
// @description ```json
// @description {
// @description   "error": "validation_error",
// @description   "message": "Human-readable explanation"
// @description }
// @description ```
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/feedforge/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @host localhost:8787
// @BasePath /api/v1
// @schemes http https
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token: "Authorization: Bearer <API_SECRET or JWT>"
//
// @tag.name Meta
// @tag.description Service identity and health endpoints
//
// @tag.name Playlists
// @tag.description Signed DP-1 playlist documents with server-managed identity
//
// @tag.name Playlist Items
// @tag.description Read-only flattened view of items across all playlists
//
// @tag.name Channels
// @tag.description Curated channels grouping playlists by reference
//
// @tag.name Queues
// @tag.description Manual ingest of queued write-operation messages
package main
