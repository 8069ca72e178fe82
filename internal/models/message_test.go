// FeedForge - DP-1 Feed Operator for Signed Playlists and Channels
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedforge

package models

import (
	"strings"
	"testing"
	"time"
)

func validPlaylist() *Playlist {
	return &Playlist{
		DPVersion: "1.0.0",
		ID:        "9b5b8f0a-1c2d-4e3f-8a5b-6c7d8e9f0a1b",
		Slug:      "test-playlist-1234",
		Title:     "Test Playlist",
		Created:   "2026-08-26T10:00:00Z",
		Items: []PlaylistItem{
			{
				ID:       "0a1b2c3d-4e5f-4a6b-8c7d-9e0f1a2b3c4d",
				Source:   "https://example.com/a",
				Duration: 300,
				License:  "open",
			},
		},
	}
}

func TestNewWriteOperationMessage(t *testing.T) {
	t.Parallel()

	p := validPlaylist()
	msg := NewWriteOperationMessage(OperationCreatePlaylist, p.ID, WriteOperationData{Playlist: p})

	if !strings.HasPrefix(msg.ID, OperationCreatePlaylist+"_"+p.ID+"_") {
		t.Errorf("message id %q does not carry operation and resource id", msg.ID)
	}
	if len(msg.ID) <= len(OperationCreatePlaylist)+len(p.ID)+2 {
		t.Errorf("message id %q missing ulid suffix", msg.ID)
	}
	if _, err := time.Parse(time.RFC3339, msg.Timestamp); err != nil {
		t.Errorf("timestamp %q is not RFC 3339: %v", msg.Timestamp, err)
	}
	if msg.RetryCount != 0 {
		t.Errorf("expected zero retry count, got %d", msg.RetryCount)
	}
	if err := msg.Validate(); err != nil {
		t.Errorf("expected valid message, got: %v", err)
	}
}

func TestWriteOperationMessageValidate(t *testing.T) {
	t.Parallel()

	p := validPlaylist()
	ch := &Channel{
		ID:        "3f2e1d0c-9b8a-4765-b432-10fedcba9876",
		Slug:      "test-channel-0001",
		Title:     "Test Channel",
		Curator:   "Curator",
		Created:   "2026-08-26T10:00:00Z",
		Playlists: []string{"https://example.com/api/v1/playlists/" + p.ID},
	}

	tests := []struct {
		name    string
		msg     WriteOperationMessage
		wantErr string
	}{
		{
			name: "valid create playlist",
			msg: WriteOperationMessage{
				ID:        "create_playlist_x_01HZX",
				Timestamp: "2026-08-26T10:00:00Z",
				Operation: OperationCreatePlaylist,
				Data:      WriteOperationData{Playlist: p},
			},
		},
		{
			name: "valid delete channel",
			msg: WriteOperationMessage{
				ID:        "delete_channel_x_01HZX",
				Timestamp: "2026-08-26T10:00:00Z",
				Operation: OperationDeleteChannel,
				Data:      WriteOperationData{ChannelID: ch.ID},
			},
		},
		{
			name: "missing id",
			msg: WriteOperationMessage{
				Timestamp: "2026-08-26T10:00:00Z",
				Operation: OperationCreatePlaylist,
				Data:      WriteOperationData{Playlist: p},
			},
			wantErr: "id is required",
		},
		{
			name: "missing timestamp",
			msg: WriteOperationMessage{
				ID:        "create_playlist_x_01HZX",
				Operation: OperationCreatePlaylist,
				Data:      WriteOperationData{Playlist: p},
			},
			wantErr: "timestamp is required",
		},
		{
			name: "bad timestamp",
			msg: WriteOperationMessage{
				ID:        "create_playlist_x_01HZX",
				Timestamp: "yesterday",
				Operation: OperationCreatePlaylist,
				Data:      WriteOperationData{Playlist: p},
			},
			wantErr: "RFC 3339",
		},
		{
			name: "create playlist without payload",
			msg: WriteOperationMessage{
				ID:        "create_playlist_x_01HZX",
				Timestamp: "2026-08-26T10:00:00Z",
				Operation: OperationCreatePlaylist,
			},
			wantErr: "requires data.playlist",
		},
		{
			name: "update channel without payload",
			msg: WriteOperationMessage{
				ID:        "update_channel_x_01HZX",
				Timestamp: "2026-08-26T10:00:00Z",
				Operation: OperationUpdateChannel,
			},
			wantErr: "requires data.channel",
		},
		{
			name: "delete playlist without id",
			msg: WriteOperationMessage{
				ID:        "delete_playlist_x_01HZX",
				Timestamp: "2026-08-26T10:00:00Z",
				Operation: OperationDeletePlaylist,
			},
			wantErr: "requires data.playlistId",
		},
		{
			name: "unknown operation passes structural validation",
			msg: WriteOperationMessage{
				ID:        "rotate_keys_x_01HZX",
				Timestamp: "2026-08-26T10:00:00Z",
				Operation: "rotate_keys",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.msg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("expected no error, got: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got: %v", tt.wantErr, err)
			}
		})
	}
}

func TestKnownOperation(t *testing.T) {
	t.Parallel()

	for _, op := range []string{
		OperationCreatePlaylist, OperationUpdatePlaylist, OperationDeletePlaylist,
		OperationCreateChannel, OperationUpdateChannel, OperationDeleteChannel,
	} {
		if !KnownOperation(op) {
			t.Errorf("expected %q to be known", op)
		}
	}
	if KnownOperation("rotate_keys") {
		t.Error("expected 'rotate_keys' to be unknown")
	}
	if KnownOperation("") {
		t.Error("expected empty operation to be unknown")
	}
}

func TestIsUpdateOperation(t *testing.T) {
	t.Parallel()

	if !IsUpdateOperation(OperationUpdatePlaylist) || !IsUpdateOperation(OperationUpdateChannel) {
		t.Error("update operations not recognized")
	}
	if IsUpdateOperation(OperationCreatePlaylist) || IsUpdateOperation(OperationDeleteChannel) {
		t.Error("non-update operation reported as update")
	}
}
