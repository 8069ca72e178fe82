// FeedForge - DP-1 Feed Operator for Signed Playlists and Channels
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedforge

package validation

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// protectedFieldOrder fixes the reporting order so error messages are
// deterministic regardless of map iteration.
var protectedFieldOrder = []string{"id", "slug", "created", "signature"}

// ProtectedFields inspects a raw PATCH body for server-controlled fields.
// It returns the protected field names present in the object, in reporting
// order, or an error when the body is not a JSON object.
func ProtectedFields(raw []byte) ([]string, error) {
	var body map[string]json.RawMessage
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("parse update body: %w", err)
	}

	var present []string
	for _, field := range protectedFieldOrder {
		if _, ok := body[field]; ok {
			present = append(present, field)
		}
	}

	return present, nil
}

// ProtectedFieldsMessage renders the client-facing message for a rejected
// partial update.
func ProtectedFieldsMessage(fields []string) string {
	return fmt.Sprintf(
		"Cannot update protected fields: %s. These fields are server-managed and immutable.",
		strings.Join(fields, ", "),
	)
}
