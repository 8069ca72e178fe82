// FeedForge - DP-1 Feed Operator for Signed Playlists and Channels
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedforge

package queue

import (
	"context"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// MemoryQueue is an in-process broker implementing both Publisher and
// Subscriber over a single Go channel pub/sub. Messages do not survive a
// restart; use the NATS backend where durability matters.
type MemoryQueue struct {
	pubsub  *gochannel.GoChannel
	subject string

	mu     sync.RWMutex
	closed bool
}

// NewMemoryQueue creates an in-process queue for the given subject.
// Persistence keeps messages published before the consumer subscribes,
// matching the broker-backed behavior of a durable stream within one
// process lifetime.
func NewMemoryQueue(subject string, logger watermill.LoggerAdapter) *MemoryQueue {
	if logger == nil {
		logger = watermill.NewStdLogger(false, false)
	}

	pubsub := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: 256,
		Persistent:          true,
	}, logger)

	return &MemoryQueue{
		pubsub:  pubsub,
		subject: subject,
	}
}

// Publish enqueues a single message.
func (q *MemoryQueue) Publish(ctx context.Context, msg Outgoing) error {
	q.mu.RLock()
	if q.closed {
		q.mu.RUnlock()
		return ErrQueueClosed
	}
	q.mu.RUnlock()

	if len(msg.Payload) == 0 {
		return ErrEmptyPayload
	}

	if err := q.pubsub.Publish(q.subject, message.NewMessage(msg.ID, msg.Payload)); err != nil {
		RecordPublish("error")
		return err
	}

	RecordPublish("ok")
	return nil
}

// PublishBatch enqueues messages in order, stopping at the first failure.
func (q *MemoryQueue) PublishBatch(ctx context.Context, msgs []Outgoing) error {
	for _, msg := range msgs {
		if err := q.Publish(ctx, msg); err != nil {
			return err
		}
	}
	return nil
}

// Subscribe returns the message channel for the queue subject.
func (q *MemoryQueue) Subscribe(ctx context.Context) (<-chan *message.Message, error) {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return nil, ErrQueueClosed
	}
	return q.pubsub.Subscribe(ctx, q.subject)
}

// Close shuts the broker down. Pending unconsumed messages are dropped.
func (q *MemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}
	q.closed = true

	return q.pubsub.Close()
}
