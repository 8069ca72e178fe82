// FeedForge - DP-1 Feed Operator for Signed Playlists and Channels
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedforge

package services

import (
	"context"
	"time"

	"github.com/tomtom215/feedforge/internal/metrics"
)

// UptimeService refreshes the uptime gauge on a fixed interval so the
// metric advances between scrapes.
type UptimeService struct {
	interval time.Duration
}

// NewUptimeService builds the ticker service. A non-positive interval
// falls back to 15 seconds.
func NewUptimeService(interval time.Duration) *UptimeService {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	return &UptimeService{interval: interval}
}

// Serve implements suture.Service.
func (s *UptimeService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			metrics.UpdateUptime()
		}
	}
}

// String identifies the service in supervisor logs.
func (s *UptimeService) String() string {
	return "uptime-ticker"
}
