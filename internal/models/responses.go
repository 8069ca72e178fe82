// FeedForge - DP-1 Feed Operator for Signed Playlists and Channels
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedforge

package models

// ErrorResponse is the wire form of every error the API returns.
//
// Error holds a machine-readable tag (unauthorized, invalid_json,
// validation_error, protected_fields, invalid_id, invalid_channel_id,
// invalid_limit, not_found, method_not_allowed, rate_limited,
// queue_error, storage_error, internal_error, invalid_message,
// invalid_batch, processing_failed, batch_processing_failed); Message
// is human-readable.
//
// Example:
//
//	{
//	  "error": "invalid_limit",
//	  "message": "Limit must be between 1 and 100"
//	}
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// PlaylistsResponse is a page of playlists. Cursor is opaque and absent on
// the final page; HasMore mirrors its presence for clients that do not want
// to sniff the cursor.
type PlaylistsResponse struct {
	Items   []*Playlist `json:"items"`
	Cursor  string      `json:"cursor,omitempty"`
	HasMore bool        `json:"hasMore"`
}

// PlaylistItemsResponse is a page of playlist items.
type PlaylistItemsResponse struct {
	Items   []*PlaylistItem `json:"items"`
	Cursor  string          `json:"cursor,omitempty"`
	HasMore bool            `json:"hasMore"`
}

// ChannelsResponse is a page of channels.
type ChannelsResponse struct {
	Items   []*Channel `json:"items"`
	Cursor  string     `json:"cursor,omitempty"`
	HasMore bool       `json:"hasMore"`
}

// ProcessMessageResponse reports the outcome of a single queue-ingest call.
type ProcessMessageResponse struct {
	Success        bool     `json:"success"`
	ProcessedCount int      `json:"processedCount"`
	Errors         []string `json:"errors,omitempty"`
}

// ProcessBatchResponse reports the outcome of a batch queue-ingest call.
type ProcessBatchResponse struct {
	Success        bool     `json:"success"`
	ProcessedCount int      `json:"processedCount"`
	MessageIDs     []string `json:"messageIds"`
	Errors         []string `json:"errors,omitempty"`
}

// HealthResponse is returned by GET /api/v1/health.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// InfoResponse is returned by the API root.
type InfoResponse struct {
	Name        string            `json:"name"`
	Version     string            `json:"version"`
	Description string            `json:"description"`
	Endpoints   map[string]string `json:"endpoints"`
}
