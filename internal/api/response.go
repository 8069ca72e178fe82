// FeedForge - DP-1 Feed Operator for Signed Playlists and Channels
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedforge

package api

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/feedforge/internal/logging"
	"github.com/tomtom215/feedforge/internal/models"
)

// maxBodyBytes caps request bodies. Playlists are metadata documents;
// 2 MiB leaves generous headroom over any real feed.
const maxBodyBytes = 2 << 20

// respondJSON sends a JSON response with proper headers.
func respondJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")

	data, err := json.Marshal(payload)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondError sends an error in the flat wire format. err carries the
// internal cause for the log line and is never exposed to the client.
func respondError(w http.ResponseWriter, r *http.Request, status int, tag, message string, err error) {
	event := logging.Ctx(r.Context()).Warn()
	if status >= http.StatusInternalServerError {
		event = logging.Ctx(r.Context()).Error()
	}
	event.
		Err(err).
		Str("error_tag", tag).
		Int("status", status).
		Str("path", r.URL.Path).
		Msg("Request failed")

	respondJSON(w, r, status, models.ErrorResponse{
		Error:   tag,
		Message: message,
	})
}

// decodeJSON reads and unmarshals a request body into dst. The error
// message distinguishes an unreadable body from malformed JSON; both
// map to the invalid_json tag at the call site.
func decodeJSON(r *http.Request, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return fmt.Errorf("read request body: %w", err)
	}
	if len(body) > maxBodyBytes {
		return fmt.Errorf("request body exceeds %d bytes", maxBodyBytes)
	}
	if len(body) == 0 {
		return fmt.Errorf("request body is empty")
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("parse request body: %w", err)
	}
	return nil
}

// readBody returns the raw request body for handlers that need to
// inspect it before binding (the PATCH protected-field guard).
func readBody(r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read request body: %w", err)
	}
	if len(body) > maxBodyBytes {
		return nil, fmt.Errorf("request body exceeds %d bytes", maxBodyBytes)
	}
	return body, nil
}

// requireJSON checks the Content-Type on requests that carry a body.
// An absent header is tolerated for compatibility with minimal clients;
// a present header must be application/json.
func requireJSON(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return true
	}
	return strings.HasPrefix(ct, "application/json")
}

// preferAsync reports whether the client asked for asynchronous
// persistence via the RFC 7240 Prefer header. Parameters and casing
// are tolerated: "respond-async, wait=10" selects async.
func preferAsync(r *http.Request) bool {
	for _, value := range r.Header.Values("Prefer") {
		for _, token := range strings.Split(value, ",") {
			pref := strings.TrimSpace(token)
			if i := strings.IndexByte(pref, '='); i >= 0 {
				pref = pref[:i]
			}
			if strings.EqualFold(strings.TrimSpace(pref), "respond-async") {
				return true
			}
		}
	}
	return false
}

// writeStatus picks the success status for a write: 202 when the
// operation was queued, the synchronous status otherwise.
func writeStatus(async bool, syncStatus int) int {
	if async {
		return http.StatusAccepted
	}
	return syncStatus
}
