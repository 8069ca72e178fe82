// FeedForge - DP-1 Feed Operator for Signed Playlists and Channels
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedforge

// Package models defines the DP-1 resource types served by FeedForge:
// playlists, playlist items, channels, the write-operation queue message,
// and the HTTP response envelopes.
//
// Server-controlled fields (id, slug, created, signature) are never accepted
// from clients; the input types in this package deliberately omit them.
// Validation tags follow the DP-1 record shapes; the custom tags (rfc3339,
// didkey, ed25519sig, slugid) are registered by the validation package.
package models
