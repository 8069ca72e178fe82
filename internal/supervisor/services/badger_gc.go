// FeedForge - DP-1 Feed Operator for Signed Playlists and Channels
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedforge

package services

import (
	"context"
	"time"

	"github.com/tomtom215/feedforge/internal/logging"
)

// GCRunner matches the Badger store's value-log garbage collection
// entry point.
type GCRunner interface {
	RunGC() error
}

// BadgerGCService runs value-log garbage collection on a fixed
// interval. Badger never reclaims value-log space on its own; without
// this loop the store directory grows monotonically under update and
// delete load.
type BadgerGCService struct {
	store    GCRunner
	interval time.Duration
}

// NewBadgerGCService wraps a store. A non-positive interval falls back
// to 10 minutes.
func NewBadgerGCService(store GCRunner, interval time.Duration) *BadgerGCService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &BadgerGCService{
		store:    store,
		interval: interval,
	}
}

// Serve implements suture.Service. GC failures are logged and retried
// on the next tick; a failed pass is not worth restarting the service
// over.
func (s *BadgerGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	logging.Debug().Dur("interval", s.interval).Msg("Badger GC loop started")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.store.RunGC(); err != nil {
				logging.Warn().Err(err).Msg("Badger value-log GC pass failed")
			}
		}
	}
}

// String identifies the service in supervisor logs.
func (s *BadgerGCService) String() string {
	return "badger-gc"
}
