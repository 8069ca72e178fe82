// FeedForge - DP-1 Feed Operator for Signed Playlists and Channels
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedforge

package validation

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// DefaultMinDPVersion is the floor applied when no minimum is configured.
const DefaultMinDPVersion = "1.0.0"

// ValidateDPVersion gates a playlist's dpVersion against the configured
// minimum. Non-semver input and versions below the minimum are both
// rejected; the returned error text is part of the API contract.
func ValidateDPVersion(version, minimum string) error {
	if minimum == "" {
		minimum = DefaultMinDPVersion
	}

	v, err := semver.StrictNewVersion(version)
	if err != nil {
		return fmt.Errorf("Invalid semantic version format: %s", version)
	}

	floor, err := semver.StrictNewVersion(minimum)
	if err != nil {
		return fmt.Errorf("invalid minimum version configured: %s", minimum)
	}

	if v.LessThan(floor) {
		return fmt.Errorf("dpVersion %s is below minimum required version %s", version, minimum)
	}

	return nil
}
