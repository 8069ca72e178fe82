// FeedForge - DP-1 Feed Operator for Signed Playlists and Channels
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedforge

package validation

import (
	"reflect"
	"testing"
)

func TestProtectedFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		want    []string
		wantErr bool
	}{
		{
			name: "clean update",
			body: `{"title":"New Title"}`,
			want: nil,
		},
		{
			name: "id and slug",
			body: `{"id":"abc","slug":"def","title":"x"}`,
			want: []string{"id", "slug"},
		},
		{
			name: "all four in declaration order",
			body: `{"signature":"s","created":"c","slug":"b","id":"a"}`,
			want: []string{"id", "slug", "created", "signature"},
		},
		{
			name: "null values still count",
			body: `{"id":null}`,
			want: []string{"id"},
		},
		{
			name: "empty object",
			body: `{}`,
			want: nil,
		},
		{
			name:    "malformed json",
			body:    `{"id":`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ProtectedFields([]byte(tt.body))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ProtectedFields(%s) = %v, want %v", tt.body, got, tt.want)
			}
		})
	}
}

func TestProtectedFieldsMessage(t *testing.T) {
	t.Parallel()

	got := ProtectedFieldsMessage([]string{"id", "slug"})
	want := "Cannot update protected fields: id, slug. These fields are server-managed and immutable."
	if got != want {
		t.Errorf("ProtectedFieldsMessage = %q, want %q", got, want)
	}
}
