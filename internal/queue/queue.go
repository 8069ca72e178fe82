// FeedForge - DP-1 Feed Operator for Signed Playlists and Channels
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedforge

// Package queue provides the write-queue port and its two backends: NATS
// JetStream for durable deployments and an in-process channel broker for
// tests and single-node setups.
//
// Every accepted write travels through this queue as a serialized
// operation message. Delivery is at-least-once; consumers ack on success
// and nack for redelivery.
package queue

import (
	"context"
	"errors"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
)

// Errors
var (
	// ErrQueueClosed is returned by operations after Close.
	ErrQueueClosed = errors.New("queue is closed")

	// ErrEmptyPayload is returned when a message has no payload.
	ErrEmptyPayload = errors.New("message payload cannot be empty")
)

// Outgoing is a message to publish. ID becomes the broker message ID and
// drives JetStream deduplication, so callers must keep it unique per
// logical write.
type Outgoing struct {
	ID      string
	Payload []byte
}

// Publisher enqueues write operations.
type Publisher interface {
	// Publish enqueues a single message.
	Publish(ctx context.Context, msg Outgoing) error

	// PublishBatch enqueues messages in order, stopping at the first
	// failure.
	PublishBatch(ctx context.Context, msgs []Outgoing) error

	Close() error
}

// Subscriber delivers queued messages. The returned channel closes when
// the context is canceled or the subscriber is closed; consumers must Ack
// or Nack every message.
type Subscriber interface {
	Subscribe(ctx context.Context) (<-chan *message.Message, error)
	Close() error
}

// PublisherConfig holds NATS publisher configuration.
type PublisherConfig struct {
	URL             string
	Subject         string
	MaxReconnects   int
	ReconnectWait   time.Duration
	ReconnectBuffer int

	// TrackMsgID enables JetStream deduplication keyed on the message ID.
	TrackMsgID bool
}

// DefaultPublisherConfig returns production defaults for the publisher.
func DefaultPublisherConfig(url, subject string) PublisherConfig {
	return PublisherConfig{
		URL:             url,
		Subject:         subject,
		MaxReconnects:   -1, // Unlimited
		ReconnectWait:   2 * time.Second,
		ReconnectBuffer: 8 * 1024 * 1024, // 8MB
		TrackMsgID:      true,
	}
}

// SubscriberConfig holds NATS subscriber configuration.
type SubscriberConfig struct {
	URL              string
	Subject          string
	StreamName       string
	DurableName      string
	QueueGroup       string
	SubscribersCount int
	AckWaitTimeout   time.Duration
	MaxDeliver       int
	MaxAckPending    int
	CloseTimeout     time.Duration
	MaxReconnects    int
	ReconnectWait    time.Duration
}

// DefaultSubscriberConfig returns production defaults for the subscriber.
func DefaultSubscriberConfig(url, subject, stream string) SubscriberConfig {
	return SubscriberConfig{
		URL:              url,
		Subject:          subject,
		StreamName:       stream,
		DurableName:      "feedforge-writer",
		QueueGroup:       "feedforge-workers",
		SubscribersCount: 1,
		AckWaitTimeout:   30 * time.Second,
		MaxDeliver:       5,    // Max redelivery attempts
		MaxAckPending:    1000, // Flow control
		CloseTimeout:     30 * time.Second,
		MaxReconnects:    -1,
		ReconnectWait:    2 * time.Second,
	}
}

// StreamConfig defines the write-queue stream settings.
type StreamConfig struct {
	Name            string
	Subjects        []string
	MaxAge          time.Duration
	MaxBytes        int64
	MaxMsgs         int64
	DuplicateWindow time.Duration
	Replicas        int
}

// DefaultStreamConfig returns production stream configuration.
func DefaultStreamConfig(name, subject string) StreamConfig {
	return StreamConfig{
		Name:            name,
		Subjects:        []string{subject},
		MaxAge:          24 * time.Hour,
		MaxBytes:        1 << 30, // 1GB
		MaxMsgs:         -1,
		DuplicateWindow: 2 * time.Minute,
		Replicas:        1,
	}
}

// ServerConfig holds embedded NATS server settings.
type ServerConfig struct {
	Host              string
	Port              int
	StoreDir          string
	JetStreamMaxMem   int64
	JetStreamMaxStore int64
}

// DefaultServerConfig returns embedded server defaults.
func DefaultServerConfig(storeDir string) ServerConfig {
	return ServerConfig{
		Host:              "127.0.0.1",
		Port:              -1, // Random available port
		StoreDir:          storeDir,
		JetStreamMaxMem:   1 << 30,  // 1GB
		JetStreamMaxStore: 10 << 30, // 10GB
	}
}
