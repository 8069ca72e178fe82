// FeedForge - DP-1 Feed Operator for Signed Playlists and Channels
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedforge

package api

import (
	"net/http"
	"regexp"
	"strconv"

	"github.com/google/uuid"

	"github.com/tomtom215/feedforge/internal/storage"
)

const (
	defaultListLimit = 100
	maxListLimit     = 100
)

// slugPattern is the permissive identifier form: slugs plus anything
// UUID-shaped that is not version 4 still routes to a lookup, which
// then misses.
var slugPattern = regexp.MustCompile(`^[A-Za-z0-9-]+$`)

// isUUIDv4 reports whether s is a version 4 UUID.
func isUUIDv4(s string) bool {
	id, err := uuid.Parse(s)
	if err != nil {
		return false
	}
	return id.Version() == 4
}

// isValidResourceID reports whether s is acceptable as a playlist or
// channel identifier: a UUIDv4 or a slug.
func isValidResourceID(s string) bool {
	if s == "" {
		return false
	}
	return isUUIDv4(s) || slugPattern.MatchString(s)
}

// listQueryError describes a rejected list parameter.
type listQueryError struct {
	tag     string
	message string
}

// parseListQuery extracts limit, cursor, and sort from a list request.
// limit outside [1,100] is rejected; sort defaults to ascending and
// anything other than asc/desc is rejected; the cursor passes through
// opaque.
func parseListQuery(r *http.Request) (storage.ListQuery, *listQueryError) {
	q := storage.ListQuery{
		Limit:  defaultListLimit,
		Cursor: r.URL.Query().Get("cursor"),
		Sort:   "asc",
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > maxListLimit {
			return q, &listQueryError{
				tag:     "invalid_limit",
				message: "Limit must be between 1 and 100",
			}
		}
		q.Limit = limit
	}

	if raw := r.URL.Query().Get("sort"); raw != "" {
		if raw != "asc" && raw != "desc" {
			return q, &listQueryError{
				tag:     "validation_error",
				message: "Sort must be asc or desc",
			}
		}
		q.Sort = raw
	}

	return q, nil
}

// channelFilter extracts and gates the optional ?channel= parameter.
// The bool reports presence; a malformed value returns an error.
func channelFilter(r *http.Request) (string, bool, *listQueryError) {
	channel := r.URL.Query().Get("channel")
	if channel == "" {
		return "", false, nil
	}
	if !isValidResourceID(channel) {
		return "", true, &listQueryError{
			tag:     "invalid_channel_id",
			message: "Channel identifier must be a UUID or slug",
		}
	}
	return channel, true, nil
}
