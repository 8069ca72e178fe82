// FeedForge - DP-1 Feed Operator for Signed Playlists and Channels
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedforge

// Package coordinator owns the write path for playlists and channels.
//
// Every mutation flows through here: the coordinator synthesizes the
// server-managed fields (id, slug, created, item identity), signs the
// canonical form, and then either persists through the storage engine
// (sync) or publishes a WriteOperationMessage to the queue (async). The
// coordinator never retries; the queue provides durability for the async
// path and the client retries the sync path.
package coordinator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/feedforge/internal/canonical"
	"github.com/tomtom215/feedforge/internal/logging"
	"github.com/tomtom215/feedforge/internal/models"
	"github.com/tomtom215/feedforge/internal/queue"
	"github.com/tomtom215/feedforge/internal/storage"
)

// ErrQueueUnavailable wraps any publish failure on the async path.
var ErrQueueUnavailable = errors.New("write queue unavailable")

// timestampLayout is the wire form of server-assigned created values:
// UTC with millisecond precision.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Coordinator synthesizes, signs, and dispatches writes.
type Coordinator struct {
	engine    *storage.Engine
	signer    *canonical.Signer
	publisher queue.Publisher
}

// New wires a coordinator to its storage engine, signing identity, and
// write queue.
func New(engine *storage.Engine, signer *canonical.Signer, publisher queue.Publisher) *Coordinator {
	return &Coordinator{
		engine:    engine,
		signer:    signer,
		publisher: publisher,
	}
}

// now returns the current UTC time stamped to millisecond precision, so
// record timestamps round-trip through the created index unchanged.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// buildItems converts input items into stored form: fresh UUIDs and
// created stamps spaced one millisecond apart so a timestamp sort
// preserves input order.
func buildItems(inputs []models.PlaylistItemInput, base time.Time) []models.PlaylistItem {
	items := make([]models.PlaylistItem, len(inputs))
	for i, in := range inputs {
		items[i] = models.PlaylistItem{
			ID:         uuid.New().String(),
			Title:      in.Title,
			Source:     in.Source,
			Duration:   in.Duration,
			License:    in.License,
			Created:    base.Add(time.Duration(i) * time.Millisecond).Format(timestampLayout),
			Ref:        in.Ref,
			Override:   in.Override,
			Display:    in.Display,
			Repro:      in.Repro,
			Provenance: in.Provenance,
		}
	}
	return items
}

// sign computes the canonical-form signature for a resource. The
// canonical encoder drops any signature member, so the resource may be
// passed with a stale signature still set.
func (c *Coordinator) sign(resource any) (string, error) {
	canonicalBytes, err := canonical.CanonicalizeValue(resource)
	if err != nil {
		return "", fmt.Errorf("canonicalize resource: %w", err)
	}

	signature, err := c.signer.Sign(canonicalBytes)
	if err != nil {
		return "", fmt.Errorf("sign resource: %w", err)
	}
	return signature, nil
}

// publish serializes a write operation and enqueues it.
func (c *Coordinator) publish(ctx context.Context, msg *models.WriteOperationMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal write operation: %w", err)
	}

	if err := c.publisher.Publish(ctx, queue.Outgoing{ID: msg.ID, Payload: payload}); err != nil {
		RecordWrite(msg.Operation, "async", "queue_error")
		return fmt.Errorf("%w: %v", ErrQueueUnavailable, err)
	}

	logging.Ctx(ctx).Info().
		Str("message_id", msg.ID).
		Str("operation", msg.Operation).
		Msg("Write operation queued")
	RecordWrite(msg.Operation, "async", "ok")
	return nil
}
