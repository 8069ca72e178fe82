// FeedForge - DP-1 Feed Operator for Signed Playlists and Channels
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedforge

package queue

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
)

func receive(t *testing.T, ch <-chan *message.Message) *message.Message {
	t.Helper()

	select {
	case msg, ok := <-ch:
		if !ok {
			t.Fatal("message channel closed")
		}
		return msg
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for message")
	}
	return nil
}

func TestMemoryQueuePublishBeforeSubscribe(t *testing.T) {
	t.Parallel()

	queue := NewMemoryQueue("writes", nil)
	t.Cleanup(func() { queue.Close() })
	ctx := context.Background()

	if err := queue.Publish(ctx, Outgoing{ID: "m1", Payload: []byte("one")}); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	ch, err := queue.Subscribe(ctx)
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	msg := receive(t, ch)
	if msg.UUID != "m1" {
		t.Errorf("UUID = %q, want m1", msg.UUID)
	}
	if string(msg.Payload) != "one" {
		t.Errorf("Payload = %q, want one", msg.Payload)
	}
	msg.Ack()
}

func TestMemoryQueueBatchOrder(t *testing.T) {
	t.Parallel()

	queue := NewMemoryQueue("writes", nil)
	t.Cleanup(func() { queue.Close() })
	ctx := context.Background()

	ch, err := queue.Subscribe(ctx)
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	batch := make([]Outgoing, 0, 3)
	for i := range 3 {
		batch = append(batch, Outgoing{
			ID:      fmt.Sprintf("m%d", i),
			Payload: []byte(fmt.Sprintf("payload-%d", i)),
		})
	}
	if err := queue.PublishBatch(ctx, batch); err != nil {
		t.Fatalf("PublishBatch: %v", err)
	}

	for i := range 3 {
		msg := receive(t, ch)
		if want := fmt.Sprintf("m%d", i); msg.UUID != want {
			t.Errorf("message %d UUID = %q, want %q", i, msg.UUID, want)
		}
		msg.Ack()
	}
}

func TestMemoryQueueNackRedelivers(t *testing.T) {
	t.Parallel()

	queue := NewMemoryQueue("writes", nil)
	t.Cleanup(func() { queue.Close() })
	ctx := context.Background()

	ch, err := queue.Subscribe(ctx)
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	if err := queue.Publish(ctx, Outgoing{ID: "retry-me", Payload: []byte("x")}); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	first := receive(t, ch)
	first.Nack()

	second := receive(t, ch)
	if second.UUID != "retry-me" {
		t.Errorf("redelivered UUID = %q, want retry-me", second.UUID)
	}
	second.Ack()
}

func TestMemoryQueueEmptyPayload(t *testing.T) {
	t.Parallel()

	queue := NewMemoryQueue("writes", nil)
	t.Cleanup(func() { queue.Close() })

	err := queue.Publish(context.Background(), Outgoing{ID: "m1"})
	if !errors.Is(err, ErrEmptyPayload) {
		t.Errorf("Publish with empty payload = %v, want ErrEmptyPayload", err)
	}
}

func TestMemoryQueueClosed(t *testing.T) {
	t.Parallel()

	queue := NewMemoryQueue("writes", nil)
	if err := queue.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	ctx := context.Background()
	if err := queue.Publish(ctx, Outgoing{ID: "m1", Payload: []byte("x")}); !errors.Is(err, ErrQueueClosed) {
		t.Errorf("Publish after close = %v, want ErrQueueClosed", err)
	}
	if _, err := queue.Subscribe(ctx); !errors.Is(err, ErrQueueClosed) {
		t.Errorf("Subscribe after close = %v, want ErrQueueClosed", err)
	}
	if err := queue.Close(); err != nil {
		t.Errorf("second Close = %v, want nil", err)
	}
}
