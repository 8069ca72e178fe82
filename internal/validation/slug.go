// FeedForge - DP-1 Feed Operator for Signed Playlists and Channels
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedforge

package validation

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"unicode"
)

// MaxSlugLength bounds the generated slug, suffix included.
const MaxSlugLength = 64

// slugSuffixLength is "-" plus four random decimal digits.
const slugSuffixLength = 5

// GenerateSlug derives a URL-safe slug from a title: lowercase, runs of
// non-alphanumerics collapsed to single hyphens, trimmed, the title portion
// truncated so the whole slug fits MaxSlugLength, and a random 4-digit
// suffix appended for uniqueness.
func GenerateSlug(title string) string {
	base := NormalizeSlug(title)
	if base == "" {
		base = "untitled"
	}

	if limit := MaxSlugLength - slugSuffixLength; len(base) > limit {
		base = strings.TrimRight(base[:limit], "-")
	}

	return fmt.Sprintf("%s-%04d", base, rand.IntN(10000))
}

// NormalizeSlug applies the deterministic part of slug generation: lowercase
// alphanumerics with hyphen separators, no leading or trailing hyphen.
func NormalizeSlug(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	lastHyphen := true // suppress leading hyphen
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if r > unicode.MaxASCII {
				continue
			}
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}

	return strings.TrimRight(b.String(), "-")
}
