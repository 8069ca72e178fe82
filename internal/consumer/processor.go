// FeedForge - DP-1 Feed Operator for Signed Playlists and Channels
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedforge

// Package consumer drains the write queue into the storage engine.
//
// The processor applies WriteOperationMessages idempotently: creates and
// updates overwrite the same keys on redelivery, deletes of already-gone
// resources succeed. Unknown operations are logged and skipped so that a
// newer producer never wedges an older consumer; only real engine
// failures propagate, and those make the delivery eligible for retry.
package consumer

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomtom215/feedforge/internal/logging"
	"github.com/tomtom215/feedforge/internal/models"
	"github.com/tomtom215/feedforge/internal/storage"
)

// Processor applies write operations to the storage engine.
type Processor struct {
	engine *storage.Engine
}

// NewProcessor returns a processor bound to the given engine.
func NewProcessor(engine *storage.Engine) *Processor {
	return &Processor{engine: engine}
}

// ProcessMessage applies one operation. Unknown operations return nil
// after a logged skip; engine failures return the engine's error.
func (p *Processor) ProcessMessage(ctx context.Context, op *models.WriteOperationMessage) error {
	switch op.Operation {
	case models.OperationCreatePlaylist:
		return p.savePlaylist(ctx, op, false)
	case models.OperationUpdatePlaylist:
		return p.savePlaylist(ctx, op, true)
	case models.OperationDeletePlaylist:
		return p.deletePlaylist(ctx, op)
	case models.OperationCreateChannel:
		return p.saveChannel(ctx, op, false)
	case models.OperationUpdateChannel:
		return p.saveChannel(ctx, op, true)
	case models.OperationDeleteChannel:
		return p.deleteChannel(ctx, op)
	default:
		logging.Ctx(ctx).Warn().
			Str("message_id", op.ID).
			Str("operation", op.Operation).
			Msg("Skipping unknown write operation")
		RecordProcessed(op.Operation, "skipped")
		return nil
	}
}

// ProcessBatch applies operations in order, stopping at the first
// failure. It returns how many were applied; redelivering the whole
// batch after a partial failure is safe because every operation is
// idempotent.
func (p *Processor) ProcessBatch(ctx context.Context, ops []*models.WriteOperationMessage) (int, error) {
	for i, op := range ops {
		if err := p.ProcessMessage(ctx, op); err != nil {
			return i, fmt.Errorf("message %d (%s): %w", i, op.ID, err)
		}
	}
	return len(ops), nil
}

func (p *Processor) savePlaylist(ctx context.Context, op *models.WriteOperationMessage, isUpdate bool) error {
	if op.Data.Playlist == nil {
		return fmt.Errorf("%s message %s has no playlist payload", op.Operation, op.ID)
	}

	if err := p.engine.SavePlaylist(ctx, op.Data.Playlist, isUpdate); err != nil {
		RecordProcessed(op.Operation, "error")
		return fmt.Errorf("apply %s: %w", op.Operation, err)
	}
	RecordProcessed(op.Operation, "ok")
	return nil
}

func (p *Processor) deletePlaylist(ctx context.Context, op *models.WriteOperationMessage) error {
	if op.Data.PlaylistID == "" {
		return fmt.Errorf("%s message %s has no playlistId", op.Operation, op.ID)
	}

	err := p.engine.DeletePlaylist(ctx, op.Data.PlaylistID)
	if errors.Is(err, storage.ErrNotFound) {
		// Redelivered delete; the work is already done.
		logging.Ctx(ctx).Debug().
			Str("playlist_id", op.Data.PlaylistID).
			Msg("Playlist already deleted")
		RecordProcessed(op.Operation, "ok")
		return nil
	}
	if err != nil {
		RecordProcessed(op.Operation, "error")
		return fmt.Errorf("apply %s: %w", op.Operation, err)
	}
	RecordProcessed(op.Operation, "ok")
	return nil
}

func (p *Processor) saveChannel(ctx context.Context, op *models.WriteOperationMessage, isUpdate bool) error {
	if op.Data.Channel == nil {
		return fmt.Errorf("%s message %s has no channel payload", op.Operation, op.ID)
	}

	if err := p.engine.SaveChannel(ctx, op.Data.Channel, isUpdate); err != nil {
		RecordProcessed(op.Operation, "error")
		return fmt.Errorf("apply %s: %w", op.Operation, err)
	}
	RecordProcessed(op.Operation, "ok")
	return nil
}

func (p *Processor) deleteChannel(ctx context.Context, op *models.WriteOperationMessage) error {
	if op.Data.ChannelID == "" {
		return fmt.Errorf("%s message %s has no channelId", op.Operation, op.ID)
	}

	err := p.engine.DeleteChannel(ctx, op.Data.ChannelID)
	if errors.Is(err, storage.ErrNotFound) {
		logging.Ctx(ctx).Debug().
			Str("channel_id", op.Data.ChannelID).
			Msg("Channel already deleted")
		RecordProcessed(op.Operation, "ok")
		return nil
	}
	if err != nil {
		RecordProcessed(op.Operation, "error")
		return fmt.Errorf("apply %s: %w", op.Operation, err)
	}
	RecordProcessed(op.Operation, "ok")
	return nil
}
