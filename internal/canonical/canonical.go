// FeedForge - DP-1 Feed Operator for Signed Playlists and Channels
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedforge

// Package canonical implements the deterministic serialization and signing
// rules for distributed playlists.
//
// The canonical form of a document is its JSON with object keys sorted
// lexicographically at every depth, minimal separators, no HTML escaping,
// the top-level "signature" member removed, and a single trailing newline.
// Signatures are computed over exactly these bytes, so independent
// operators serializing the same document sign the same payload.
package canonical

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
)

// SignatureField is the top-level member excluded from the canonical form.
const SignatureField = "signature"

// Canonicalize parses raw JSON and re-serializes it in canonical form.
// A top-level signature member, when present, is dropped first so the
// output is the exact payload a signature covers.
func Canonicalize(raw []byte) ([]byte, error) {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}

	if obj, ok := doc.(map[string]any); ok {
		delete(obj, SignatureField)
	}

	return encode(doc)
}

// CanonicalizeValue marshals v and canonicalizes the result. Convenience
// path for documents that already live in a struct.
func CanonicalizeValue(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshaling document: %w", err)
	}
	return Canonicalize(raw)
}

func encode(doc any) ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	// Encode serializes map keys in sorted order and appends the trailing
	// newline, both part of the canonical form.
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encoding canonical form: %w", err)
	}

	return buf.Bytes(), nil
}
