// FeedForge - DP-1 Feed Operator for Signed Playlists and Channels
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedforge

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func listRequest(query string) *http.Request {
	target := "/api/v1/playlists"
	if query != "" {
		target += "?" + query
	}
	return httptest.NewRequest(http.MethodGet, target, nil)
}

func TestParseListQuery(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantLimit  int
		wantSort   string
		wantCursor string
		wantTag    string
	}{
		{name: "defaults", query: "", wantLimit: 100, wantSort: "asc"},
		{name: "explicit limit", query: "limit=25", wantLimit: 25, wantSort: "asc"},
		{name: "limit at floor", query: "limit=1", wantLimit: 1, wantSort: "asc"},
		{name: "limit at ceiling", query: "limit=100", wantLimit: 100, wantSort: "asc"},
		{name: "limit zero", query: "limit=0", wantTag: "invalid_limit"},
		{name: "limit above ceiling", query: "limit=101", wantTag: "invalid_limit"},
		{name: "limit negative", query: "limit=-1", wantTag: "invalid_limit"},
		{name: "limit not a number", query: "limit=many", wantTag: "invalid_limit"},
		{name: "sort desc", query: "sort=desc", wantLimit: 100, wantSort: "desc"},
		{name: "sort rejected", query: "sort=sideways", wantTag: "validation_error"},
		{name: "cursor passes through", query: "cursor=b3BhcXVl", wantLimit: 100, wantSort: "asc", wantCursor: "b3BhcXVl"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q, qerr := parseListQuery(listRequest(tc.query))

			if tc.wantTag != "" {
				if qerr == nil {
					t.Fatalf("parseListQuery(%q) accepted, want %s", tc.query, tc.wantTag)
				}
				if qerr.tag != tc.wantTag {
					t.Errorf("tag = %q, want %q", qerr.tag, tc.wantTag)
				}
				return
			}

			if qerr != nil {
				t.Fatalf("parseListQuery(%q) = %s: %s", tc.query, qerr.tag, qerr.message)
			}
			if q.Limit != tc.wantLimit {
				t.Errorf("limit = %d, want %d", q.Limit, tc.wantLimit)
			}
			if q.Sort != tc.wantSort {
				t.Errorf("sort = %q, want %q", q.Sort, tc.wantSort)
			}
			if q.Cursor != tc.wantCursor {
				t.Errorf("cursor = %q, want %q", q.Cursor, tc.wantCursor)
			}
		})
	}
}

func TestIsValidResourceID(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want bool
	}{
		{name: "uuid v4", id: "9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d", want: true},
		{name: "generated slug", id: "night-garden-0001", want: true},
		{name: "single word", id: "garden", want: true},
		{name: "mixed case slug", id: "Night-Garden", want: true},
		// A v1 UUID is hyphenated alphanumerics, so it stays routable as
		// a slug and simply misses on lookup.
		{name: "uuid v1 routes as slug", id: "c232ab00-9414-11ec-b3c8-9f6bdeced846", want: true},
		{name: "empty", id: "", want: false},
		{name: "underscore", id: "under_scored", want: false},
		{name: "punctuation", id: "bad!chars", want: false},
		{name: "path traversal", id: "../etc", want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := isValidResourceID(tc.id); got != tc.want {
				t.Errorf("isValidResourceID(%q) = %v, want %v", tc.id, got, tc.want)
			}
		})
	}
}

func TestIsUUIDv4(t *testing.T) {
	if !isUUIDv4("9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d") {
		t.Error("version 4 UUID rejected")
	}
	if isUUIDv4("c232ab00-9414-11ec-b3c8-9f6bdeced846") {
		t.Error("version 1 UUID accepted")
	}
	if isUUIDv4("night-garden-0001") {
		t.Error("slug accepted as UUID")
	}
}

func TestChannelFilter(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		wantValue   string
		wantPresent bool
		wantTag     string
	}{
		{name: "absent", query: "", wantPresent: false},
		{name: "uuid", query: "channel=9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d", wantValue: "9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d", wantPresent: true},
		{name: "slug", query: "channel=evening-rotation-0001", wantValue: "evening-rotation-0001", wantPresent: true},
		{name: "malformed", query: "channel=bad%21chars", wantPresent: true, wantTag: "invalid_channel_id"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			value, present, ferr := channelFilter(listRequest(tc.query))

			if present != tc.wantPresent {
				t.Errorf("present = %v, want %v", present, tc.wantPresent)
			}
			if tc.wantTag != "" {
				if ferr == nil {
					t.Fatalf("channelFilter(%q) accepted, want %s", tc.query, tc.wantTag)
				}
				if ferr.tag != tc.wantTag {
					t.Errorf("tag = %q, want %q", ferr.tag, tc.wantTag)
				}
				return
			}
			if ferr != nil {
				t.Fatalf("channelFilter(%q) = %s: %s", tc.query, ferr.tag, ferr.message)
			}
			if value != tc.wantValue {
				t.Errorf("value = %q, want %q", value, tc.wantValue)
			}
		})
	}
}

func TestPreferAsync(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		want    bool
	}{
		{name: "no header", headers: nil, want: false},
		{name: "plain", headers: []string{"respond-async"}, want: true},
		{name: "upper case", headers: []string{"RESPOND-ASYNC"}, want: true},
		{name: "with parameters", headers: []string{"respond-async, wait=10"}, want: true},
		{name: "parameter form", headers: []string{"wait=10"}, want: false},
		{name: "second header carries it", headers: []string{"return=minimal", "respond-async"}, want: true},
		{name: "prefix is not a match", headers: []string{"respond-async-later"}, want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/playlists", nil)
			for _, value := range tc.headers {
				req.Header.Add("Prefer", value)
			}
			if got := preferAsync(req); got != tc.want {
				t.Errorf("preferAsync(%v) = %v, want %v", tc.headers, got, tc.want)
			}
		})
	}
}

func TestRequireJSON(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		want        bool
	}{
		{name: "absent header tolerated", contentType: "", want: true},
		{name: "json", contentType: "application/json", want: true},
		{name: "json with charset", contentType: "application/json; charset=utf-8", want: true},
		{name: "plain text", contentType: "text/plain", want: false},
		{name: "form data", contentType: "application/x-www-form-urlencoded", want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/playlists", nil)
			if tc.contentType != "" {
				req.Header.Set("Content-Type", tc.contentType)
			}
			if got := requireJSON(req); got != tc.want {
				t.Errorf("requireJSON(%q) = %v, want %v", tc.contentType, got, tc.want)
			}
		})
	}
}

func TestWriteStatus(t *testing.T) {
	if got := writeStatus(true, http.StatusOK); got != http.StatusAccepted {
		t.Errorf("async status = %d, want 202", got)
	}
	if got := writeStatus(false, http.StatusCreated); got != http.StatusCreated {
		t.Errorf("sync status = %d, want 201", got)
	}
}
