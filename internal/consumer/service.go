// FeedForge - DP-1 Feed Operator for Signed Playlists and Channels
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedforge

package consumer

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"

	"github.com/tomtom215/feedforge/internal/logging"
	"github.com/tomtom215/feedforge/internal/models"
	"github.com/tomtom215/feedforge/internal/queue"
)

// Stats holds runtime counters for monitoring.
type Stats struct {
	MessagesReceived  int64
	MessagesProcessed int64
	ParseErrors       int64
	LastMessageTime   time.Time
}

// Service drains the write queue into the processor. It implements
// suture.Service; Serve blocks until the context is canceled.
type Service struct {
	subscriber queue.Subscriber
	processor  *Processor

	messagesReceived  atomic.Int64
	messagesProcessed atomic.Int64
	parseErrors       atomic.Int64
	lastMessageTime   atomic.Value // stores time.Time
}

// NewService wires a subscriber to a processor.
func NewService(subscriber queue.Subscriber, processor *Processor) *Service {
	s := &Service{
		subscriber: subscriber,
		processor:  processor,
	}
	s.lastMessageTime.Store(time.Time{})
	return s
}

// Serve subscribes and processes messages until the context is
// canceled. Buffered messages are drained on shutdown so deliveries
// already in flight are not lost.
func (s *Service) Serve(ctx context.Context) error {
	messages, err := s.subscriber.Subscribe(ctx)
	if err != nil {
		return fmt.Errorf("subscribe to write queue: %w", err)
	}

	logging.Info().Msg("Write queue consumer started")

	for {
		select {
		case <-ctx.Done():
			s.drain(messages)
			logging.Info().Msg("Write queue consumer stopped")
			return ctx.Err()
		case msg, ok := <-messages:
			if !ok {
				logging.Info().Msg("Write queue subscription closed")
				return nil
			}
			s.handle(ctx, msg)
		}
	}
}

// drain processes whatever is already buffered before returning. A
// short timeout keeps shutdown bounded if deliveries keep arriving.
func (s *Service) drain(messages <-chan *message.Message) {
	timeout := time.After(100 * time.Millisecond)
	drained := 0

	for {
		select {
		case <-timeout:
			if drained > 0 {
				logging.Info().Int("count", drained).Msg("Drained queued writes during shutdown")
			}
			return
		case msg, ok := <-messages:
			if !ok {
				if drained > 0 {
					logging.Info().Int("count", drained).Msg("Drained queued writes during shutdown")
				}
				return
			}
			// The serve context is already canceled.
			s.handle(context.Background(), msg)
			drained++
		default:
			if drained > 0 {
				logging.Info().Int("count", drained).Msg("Drained queued writes during shutdown")
			}
			return
		}
	}
}

// handle decodes and applies one delivery. Malformed payloads are acked
// so they are never redelivered; engine failures are nacked for retry.
func (s *Service) handle(ctx context.Context, msg *message.Message) {
	s.messagesReceived.Add(1)
	s.lastMessageTime.Store(time.Now())

	var op models.WriteOperationMessage
	if err := json.Unmarshal(msg.Payload, &op); err != nil {
		s.parseErrors.Add(1)
		RecordConsumed("parse_error")
		logging.Warn().
			Str("message_uuid", msg.UUID).
			Err(err).
			Msg("Failed to parse queued write")
		msg.Ack()
		return
	}

	if err := op.Validate(); err != nil {
		s.parseErrors.Add(1)
		RecordConsumed("invalid")
		logging.Warn().
			Str("message_uuid", msg.UUID).
			Str("operation", op.Operation).
			Err(err).
			Msg("Discarding structurally invalid write")
		msg.Ack()
		return
	}

	if err := s.processor.ProcessMessage(ctx, &op); err != nil {
		RecordConsumed("error")
		logging.Warn().
			Str("message_id", op.ID).
			Str("operation", op.Operation).
			Err(err).
			Msg("Failed to apply queued write")
		msg.Nack()
		return
	}

	s.messagesProcessed.Add(1)
	RecordConsumed("ok")
	msg.Ack()
}

// Stats returns current runtime counters.
func (s *Service) Stats() Stats {
	var last time.Time
	if t, ok := s.lastMessageTime.Load().(time.Time); ok {
		last = t
	}
	return Stats{
		MessagesReceived:  s.messagesReceived.Load(),
		MessagesProcessed: s.messagesProcessed.Load(),
		ParseErrors:       s.parseErrors.Load(),
		LastMessageTime:   last,
	}
}

// String names the service in supervisor logs.
func (s *Service) String() string {
	return "write-queue-consumer"
}
