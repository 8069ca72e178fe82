// FeedForge - DP-1 Feed Operator for Signed Playlists and Channels
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedforge

package consumer

import (
	"context"
	"errors"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/feedforge/internal/kv"
	"github.com/tomtom215/feedforge/internal/models"
	"github.com/tomtom215/feedforge/internal/queue"
	"github.com/tomtom215/feedforge/internal/storage"
)

type serviceRig struct {
	service *Service
	engine  *storage.Engine
	queue   *queue.MemoryQueue
	done    chan error
	cancel  context.CancelFunc
}

// startService wires a consumer service to an in-process queue and runs it
// until the test ends.
func startService(t *testing.T) *serviceRig {
	t.Helper()

	store := kv.NewMemoryStore()
	t.Cleanup(func() { _ = store.Close() })

	engine := storage.NewEngine(store, storage.ResolverConfig{
		SelfHostedDomains: []string{testDomain},
	})

	mq := queue.NewMemoryQueue("feedforge.writes.test", queue.NewLoggerAdapter())
	t.Cleanup(func() { _ = mq.Close() })

	service := NewService(mq, NewProcessor(engine))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- service.Serve(ctx) }()

	rig := &serviceRig{service: service, engine: engine, queue: mq, done: done, cancel: cancel}
	t.Cleanup(rig.stop)
	return rig
}

// stop cancels the service and waits for Serve to return.
func (r *serviceRig) stop() {
	r.cancel()
	select {
	case <-r.done:
	case <-time.After(5 * time.Second):
	}
}

func (r *serviceRig) publish(t *testing.T, op *models.WriteOperationMessage) {
	t.Helper()

	payload, err := json.Marshal(op)
	if err != nil {
		t.Fatalf("marshal operation: %v", err)
	}
	if err := r.queue.Publish(context.Background(), queue.Outgoing{ID: op.ID, Payload: payload}); err != nil {
		t.Fatalf("publish: %v", err)
	}
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, timeout time.Duration, cond func() bool, msg string) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal(msg)
}

func TestServiceAppliesQueuedWrites(t *testing.T) {
	t.Parallel()

	rig := startService(t)
	ctx := context.Background()

	playlist := storedPlaylist(t, "Queued Write", "2025-01-15T10:00:00Z", 2)
	rig.publish(t, createMessage(playlist))

	waitFor(t, 5*time.Second, func() bool {
		_, err := rig.engine.GetPlaylist(ctx, playlist.ID)
		return err == nil
	}, "queued playlist never applied")

	stats := rig.service.Stats()
	if stats.MessagesReceived < 1 {
		t.Errorf("MessagesReceived = %d, want >= 1", stats.MessagesReceived)
	}
	if stats.MessagesProcessed < 1 {
		t.Errorf("MessagesProcessed = %d, want >= 1", stats.MessagesProcessed)
	}
	if stats.LastMessageTime.IsZero() {
		t.Error("LastMessageTime not recorded")
	}
}

func TestServiceDrainsWritesPublishedBeforeStart(t *testing.T) {
	t.Parallel()

	// Publishing into a persistent queue before the consumer subscribes
	// mirrors a producer racing ahead of a restarting consumer.
	store := kv.NewMemoryStore()
	t.Cleanup(func() { _ = store.Close() })
	engine := storage.NewEngine(store, storage.ResolverConfig{
		SelfHostedDomains: []string{testDomain},
	})
	mq := queue.NewMemoryQueue("feedforge.writes.early", queue.NewLoggerAdapter())
	t.Cleanup(func() { _ = mq.Close() })

	playlist := storedPlaylist(t, "Early Bird", "2025-01-15T10:00:00Z", 1)
	payload, err := json.Marshal(createMessage(playlist))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := mq.Publish(context.Background(), queue.Outgoing{ID: playlist.ID, Payload: payload}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	service := NewService(mq, NewProcessor(engine))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- service.Serve(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	waitFor(t, 5*time.Second, func() bool {
		_, err := engine.GetPlaylist(context.Background(), playlist.ID)
		return err == nil
	}, "pre-subscription write never applied")
}

func TestServiceAcksMalformedPayload(t *testing.T) {
	t.Parallel()

	rig := startService(t)
	ctx := context.Background()

	if err := rig.queue.Publish(ctx, queue.Outgoing{
		ID:      uuid.New().String(),
		Payload: []byte("{not json"),
	}); err != nil {
		t.Fatalf("publish malformed: %v", err)
	}

	// A valid write behind the malformed one still lands, which proves the
	// bad message was acked instead of blocking the subject on redelivery.
	playlist := storedPlaylist(t, "After Garbage", "2025-01-15T10:00:00Z", 1)
	rig.publish(t, createMessage(playlist))

	waitFor(t, 5*time.Second, func() bool {
		_, err := rig.engine.GetPlaylist(ctx, playlist.ID)
		return err == nil
	}, "write behind malformed message never applied")

	stats := rig.service.Stats()
	if stats.ParseErrors != 1 {
		t.Errorf("ParseErrors = %d, want 1", stats.ParseErrors)
	}
}

func TestServiceAcksInvalidOperation(t *testing.T) {
	t.Parallel()

	rig := startService(t)
	ctx := context.Background()

	// Parses fine but fails envelope validation: no operation type.
	if err := rig.queue.Publish(ctx, queue.Outgoing{
		ID:      uuid.New().String(),
		Payload: []byte(`{"id":"op_x","timestamp":"2025-01-15T10:00:00Z"}`),
	}); err != nil {
		t.Fatalf("publish invalid: %v", err)
	}

	playlist := storedPlaylist(t, "After Invalid", "2025-01-15T10:00:00Z", 1)
	rig.publish(t, createMessage(playlist))

	waitFor(t, 5*time.Second, func() bool {
		_, err := rig.engine.GetPlaylist(ctx, playlist.ID)
		return err == nil
	}, "write behind invalid operation never applied")
}

func TestServiceNacksFailedApply(t *testing.T) {
	t.Parallel()

	rig := startService(t)
	ctx := context.Background()

	// A channel referencing a playlist that does not exist fails resolution
	// in the engine, so the delivery is nacked and the broker retries it.
	channel := &models.Channel{
		ID:        uuid.New().String(),
		Slug:      "orphan-channel-0001",
		Title:     "Orphan Channel",
		Curator:   "Test Curator",
		Created:   "2025-02-01T00:00:00Z",
		Playlists: []string{"https://" + testDomain + "/api/v1/playlists/" + uuid.New().String()},
	}
	rig.publish(t, models.NewWriteOperationMessage(models.OperationCreateChannel, channel.ID,
		models.WriteOperationData{Channel: channel}))

	waitFor(t, 5*time.Second, func() bool {
		return rig.service.Stats().MessagesReceived >= 2
	}, "nacked message was never redelivered")

	if _, err := rig.engine.GetChannel(ctx, channel.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("unresolvable channel was applied, error = %v", err)
	}
	if got := rig.service.Stats().MessagesProcessed; got != 0 {
		t.Errorf("MessagesProcessed = %d, want 0", got)
	}
}

func TestServiceStopsOnCancel(t *testing.T) {
	t.Parallel()

	store := kv.NewMemoryStore()
	t.Cleanup(func() { _ = store.Close() })
	engine := storage.NewEngine(store, storage.ResolverConfig{
		SelfHostedDomains: []string{testDomain},
	})
	mq := queue.NewMemoryQueue("feedforge.writes.cancel", queue.NewLoggerAdapter())
	t.Cleanup(func() { _ = mq.Close() })

	service := NewService(mq, NewProcessor(engine))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- service.Serve(ctx) }()

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() error = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve() did not return after cancel")
	}

	if got := service.String(); got == "" {
		t.Error("String() returned empty service name")
	}
}
