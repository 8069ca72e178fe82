// FeedForge - DP-1 Feed Operator for Signed Playlists and Channels
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedforge

package services

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"
)

// fakeBroker is a test double for the Broker interface.
type fakeBroker struct {
	running       atomic.Bool
	shutdownCount atomic.Int32
	shutdownErr   error
}

func newFakeBroker() *fakeBroker {
	b := &fakeBroker{}
	b.running.Store(true)
	return b
}

func (f *fakeBroker) Shutdown(ctx context.Context) error {
	f.shutdownCount.Add(1)
	f.running.Store(false)
	return f.shutdownErr
}

func (f *fakeBroker) IsRunning() bool {
	return f.running.Load()
}

func TestEmbeddedNATSService_Interface(t *testing.T) {
	var _ suture.Service = (*EmbeddedNATSService)(nil)
}

func TestNewEmbeddedNATSService_Defaults(t *testing.T) {
	svc := NewEmbeddedNATSService(newFakeBroker(), 0, 0)
	if svc.checkInterval != 5*time.Second {
		t.Errorf("expected default check interval 5s, got %v", svc.checkInterval)
	}
	if svc.shutdownTimeout != 10*time.Second {
		t.Errorf("expected default shutdown timeout 10s, got %v", svc.shutdownTimeout)
	}
}

func TestEmbeddedNATSService_Serve(t *testing.T) {
	t.Run("shuts down broker on context cancellation", func(t *testing.T) {
		broker := newFakeBroker()
		svc := NewEmbeddedNATSService(broker, 10*time.Millisecond, time.Second)

		ctx, cancel := context.WithCancel(context.Background())

		errCh := make(chan error, 1)
		go func() {
			errCh <- svc.Serve(ctx)
		}()

		time.Sleep(30 * time.Millisecond)
		cancel()

		select {
		case err := <-errCh:
			if !errors.Is(err, context.Canceled) {
				t.Errorf("expected context.Canceled, got %v", err)
			}
		case <-time.After(2 * time.Second):
			t.Error("Serve did not return after context cancellation")
		}

		if broker.shutdownCount.Load() != 1 {
			t.Errorf("expected 1 Shutdown call, got %d", broker.shutdownCount.Load())
		}
	})

	t.Run("detects a dead broker", func(t *testing.T) {
		broker := newFakeBroker()
		broker.running.Store(false)
		svc := NewEmbeddedNATSService(broker, 10*time.Millisecond, time.Second)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		errCh := make(chan error, 1)
		go func() {
			errCh <- svc.Serve(ctx)
		}()

		select {
		case err := <-errCh:
			if err == nil {
				t.Fatal("expected error for dead broker, got nil")
			}
			if !strings.Contains(err.Error(), "stopped unexpectedly") {
				t.Errorf("unexpected error: %v", err)
			}
		case <-time.After(time.Second):
			t.Error("Serve did not detect the dead broker")
		}

		// A health failure must not also drain the broker; the restart
		// path owns that decision.
		if broker.shutdownCount.Load() != 0 {
			t.Errorf("expected no Shutdown calls, got %d", broker.shutdownCount.Load())
		}
	})

	t.Run("tolerates a shutdown error", func(t *testing.T) {
		broker := newFakeBroker()
		broker.shutdownErr = errors.New("drain interrupted")
		svc := NewEmbeddedNATSService(broker, 10*time.Millisecond, time.Second)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := svc.Serve(ctx)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if broker.shutdownCount.Load() != 1 {
			t.Errorf("expected 1 Shutdown call, got %d", broker.shutdownCount.Load())
		}
	})
}

func TestEmbeddedNATSService_String(t *testing.T) {
	svc := NewEmbeddedNATSService(newFakeBroker(), time.Second, time.Second)
	if svc.String() != "embedded-nats" {
		t.Errorf("expected 'embedded-nats', got %q", svc.String())
	}
}
