// FeedForge - DP-1 Feed Operator for Signed Playlists and Channels
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedforge

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"
)

// fakeGCRunner is a test double for the GCRunner interface.
type fakeGCRunner struct {
	runCount atomic.Int32
	runErr   error
}

func (f *fakeGCRunner) RunGC() error {
	f.runCount.Add(1)
	return f.runErr
}

func TestBadgerGCService_Interface(t *testing.T) {
	var _ suture.Service = (*BadgerGCService)(nil)
}

func TestNewBadgerGCService_DefaultInterval(t *testing.T) {
	svc := NewBadgerGCService(&fakeGCRunner{}, 0)
	if svc.interval != 10*time.Minute {
		t.Errorf("expected default interval 10m, got %v", svc.interval)
	}

	svc = NewBadgerGCService(&fakeGCRunner{}, -time.Second)
	if svc.interval != 10*time.Minute {
		t.Errorf("expected default interval 10m, got %v", svc.interval)
	}
}

func TestBadgerGCService_Serve(t *testing.T) {
	t.Run("runs GC on each tick", func(t *testing.T) {
		runner := &fakeGCRunner{}
		svc := NewBadgerGCService(runner, 10*time.Millisecond)

		ctx, cancel := context.WithCancel(context.Background())

		errCh := make(chan error, 1)
		go func() {
			errCh <- svc.Serve(ctx)
		}()

		// Poll rather than sleep a fixed amount (more reliable in CI under load)
		var ticked bool
		for i := 0; i < 50; i++ {
			time.Sleep(10 * time.Millisecond)
			if runner.runCount.Load() >= 3 {
				ticked = true
				break
			}
		}
		if !ticked {
			t.Errorf("expected at least 3 GC passes, got %d", runner.runCount.Load())
		}

		cancel()

		select {
		case err := <-errCh:
			if !errors.Is(err, context.Canceled) {
				t.Errorf("expected context.Canceled, got %v", err)
			}
		case <-time.After(time.Second):
			t.Error("Serve did not return after context cancellation")
		}
	})

	t.Run("continues after a failed pass", func(t *testing.T) {
		runner := &fakeGCRunner{runErr: errors.New("value log GC attempt didn't result in any cleanup")}
		svc := NewBadgerGCService(runner, 10*time.Millisecond)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		errCh := make(chan error, 1)
		go func() {
			errCh <- svc.Serve(ctx)
		}()

		var retried bool
		for i := 0; i < 50; i++ {
			time.Sleep(10 * time.Millisecond)
			if runner.runCount.Load() >= 2 {
				retried = true
				break
			}
		}
		if !retried {
			t.Errorf("expected GC to be retried after failure, got %d passes", runner.runCount.Load())
		}

		// The error must not have terminated the loop.
		select {
		case err := <-errCh:
			t.Errorf("Serve returned early: %v", err)
		default:
		}
	})
}

func TestBadgerGCService_String(t *testing.T) {
	svc := NewBadgerGCService(&fakeGCRunner{}, time.Minute)
	if svc.String() != "badger-gc" {
		t.Errorf("expected 'badger-gc', got %q", svc.String())
	}
}
