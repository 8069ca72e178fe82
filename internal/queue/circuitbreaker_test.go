// FeedForge - DP-1 Feed Operator for Signed Playlists and Channels
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedforge

package queue

import (
	"errors"
	"testing"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
)

func TestCircuitBreakerTripsAfterThreshold(t *testing.T) {
	t.Parallel()

	cfg := CircuitBreakerConfig{
		Name:             "test-breaker",
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          time.Minute,
		FailureThreshold: 2,
	}
	cb := NewCircuitBreaker(cfg)

	boom := errors.New("publish failed")
	fail := func() (interface{}, error) { return nil, boom }

	for i := range 2 {
		if _, err := cb.Execute(fail); !errors.Is(err, boom) {
			t.Fatalf("attempt %d: err = %v, want %v", i, err, boom)
		}
	}

	_, err := cb.Execute(fail)
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("after threshold err = %v, want ErrOpenState", err)
	}
}

func TestCircuitBreakerPassesSuccess(t *testing.T) {
	t.Parallel()

	cb := NewCircuitBreaker(DefaultCircuitBreakerConfig())

	result, err := cb.Execute(func() (interface{}, error) { return "ok", nil })
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result != "ok" {
		t.Errorf("result = %v, want ok", result)
	}
}
