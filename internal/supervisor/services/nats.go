// FeedForge - DP-1 Feed Operator for Signed Playlists and Channels
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedforge

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/feedforge/internal/logging"
)

// Broker matches the embedded NATS server's lifecycle surface.
type Broker interface {
	Shutdown(ctx context.Context) error
	IsRunning() bool
}

// EmbeddedNATSService supervises an already-running embedded broker.
// The broker is started before the supervision tree exists because the
// rest of the wiring needs its client URL, so Serve watches health
// rather than starting anything. A dead broker trips the restart
// budget and brings the messaging layer down with an error the
// operator can see.
type EmbeddedNATSService struct {
	broker          Broker
	checkInterval   time.Duration
	shutdownTimeout time.Duration
}

// NewEmbeddedNATSService wraps a running broker. Non-positive
// durations fall back to a 5 second health check and a 10 second
// shutdown grace period.
func NewEmbeddedNATSService(broker Broker, checkInterval, shutdownTimeout time.Duration) *EmbeddedNATSService {
	if checkInterval <= 0 {
		checkInterval = 5 * time.Second
	}
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	return &EmbeddedNATSService{
		broker:          broker,
		checkInterval:   checkInterval,
		shutdownTimeout: shutdownTimeout,
	}
}

// Serve implements suture.Service. It polls broker health until the
// context is canceled, then drains the broker on a fresh timeout
// context since the parent context is already dead by the time
// shutdown starts.
func (s *EmbeddedNATSService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
			defer cancel()

			if err := s.broker.Shutdown(shutdownCtx); err != nil {
				logging.Warn().Err(err).Msg("Embedded NATS shutdown did not complete cleanly")
			}
			return ctx.Err()
		case <-ticker.C:
			if !s.broker.IsRunning() {
				return fmt.Errorf("embedded NATS server stopped unexpectedly")
			}
		}
	}
}

// String identifies the service in supervisor logs.
func (s *EmbeddedNATSService) String() string {
	return "embedded-nats"
}
