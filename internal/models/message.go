// FeedForge - DP-1 Feed Operator for Signed Playlists and Channels
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedforge

package models

import (
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
)

// Write operations carried by WriteOperationMessage. The consumer derives
// is_update from the operation name; anything outside this set is skipped.
const (
	OperationCreatePlaylist = "create_playlist"
	OperationUpdatePlaylist = "update_playlist"
	OperationDeletePlaylist = "delete_playlist"
	OperationCreateChannel  = "create_channel"
	OperationUpdateChannel  = "update_channel"
	OperationDeleteChannel  = "delete_channel"
)

// WriteOperationData is the payload of a write operation. Exactly one of
// the resource or id fields is populated, matching the operation:
// create/update carry the full signed resource, delete carries the id.
type WriteOperationData struct {
	Playlist   *Playlist `json:"playlist,omitempty"`
	Channel    *Channel  `json:"channel,omitempty"`
	PlaylistID string    `json:"playlistId,omitempty"`
	ChannelID  string    `json:"channelId,omitempty"`
}

// WriteOperationMessage is the unit of the async persistence path. It is
// published on the queue by the write coordinator and drained into storage
// by the consumer; the same shape is accepted verbatim on the queue-ingest
// HTTP endpoints.
type WriteOperationMessage struct {
	ID         string             `json:"id"`
	Timestamp  string             `json:"timestamp"`
	Operation  string             `json:"operation"`
	Data       WriteOperationData `json:"data"`
	RetryCount int                `json:"retryCount"`
}

// NewWriteOperationMessage builds a message with a globally unique id of the
// form "<operation>_<resource-id>_<ulid>" and the current UTC timestamp.
func NewWriteOperationMessage(operation, resourceID string, data WriteOperationData) *WriteOperationMessage {
	return &WriteOperationMessage{
		ID:        fmt.Sprintf("%s_%s_%s", operation, resourceID, watermill.NewULID()),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Operation: operation,
		Data:      data,
	}
}

// KnownOperation reports whether op names a write operation this service
// understands.
func KnownOperation(op string) bool {
	switch op {
	case OperationCreatePlaylist, OperationUpdatePlaylist, OperationDeletePlaylist,
		OperationCreateChannel, OperationUpdateChannel, OperationDeleteChannel:
		return true
	default:
		return false
	}
}

// IsUpdateOperation reports whether op replaces an existing record.
func IsUpdateOperation(op string) bool {
	return op == OperationUpdatePlaylist || op == OperationUpdateChannel
}

// Validate checks structural integrity of the message: required envelope
// fields and a data payload matching the operation.
func (m *WriteOperationMessage) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("message id is required")
	}
	if m.Timestamp == "" {
		return fmt.Errorf("message timestamp is required")
	}
	if _, err := time.Parse(time.RFC3339, m.Timestamp); err != nil {
		return fmt.Errorf("message timestamp must be RFC 3339: %w", err)
	}
	if m.Operation == "" {
		return fmt.Errorf("message operation is required")
	}

	switch m.Operation {
	case OperationCreatePlaylist, OperationUpdatePlaylist:
		if m.Data.Playlist == nil {
			return fmt.Errorf("%s requires data.playlist", m.Operation)
		}
	case OperationDeletePlaylist:
		if m.Data.PlaylistID == "" {
			return fmt.Errorf("%s requires data.playlistId", m.Operation)
		}
	case OperationCreateChannel, OperationUpdateChannel:
		if m.Data.Channel == nil {
			return fmt.Errorf("%s requires data.channel", m.Operation)
		}
	case OperationDeleteChannel:
		if m.Data.ChannelID == "" {
			return fmt.Errorf("%s requires data.channelId", m.Operation)
		}
	default:
		// Unknown operations pass structural validation; the consumer
		// logs and skips them rather than failing the batch.
	}

	return nil
}
