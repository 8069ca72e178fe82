// FeedForge - DP-1 Feed Operator for Signed Playlists and Channels
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedforge

package coordinator

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/tomtom215/feedforge/internal/models"
	"github.com/tomtom215/feedforge/internal/storage"
	"github.com/tomtom215/feedforge/internal/validation"
)

// CreateChannel synthesizes a new channel from client input, signs it,
// and persists it sync or async. On the sync path every referenced
// playlist URL is resolved before the channel lands; on the async path
// resolution happens when the consumer drains the message.
func (c *Coordinator) CreateChannel(ctx context.Context, input *models.ChannelInput, async bool) (*models.Channel, error) {
	channel := &models.Channel{
		ID:             uuid.New().String(),
		Slug:           validation.GenerateSlug(input.Title),
		Title:          input.Title,
		Curator:        input.Curator,
		Created:        now().Format(timestampLayout),
		Curators:       input.Curators,
		Summary:        input.Summary,
		Publisher:      input.Publisher,
		CoverImage:     input.CoverImage,
		DynamicQueries: input.DynamicQueries,
		Playlists:      input.Playlists,
	}

	signature, err := c.sign(channel)
	if err != nil {
		return nil, fmt.Errorf("create channel: %w", err)
	}
	channel.Signature = signature

	if async {
		msg := models.NewWriteOperationMessage(models.OperationCreateChannel, channel.ID,
			models.WriteOperationData{Channel: channel})
		if err := c.publish(ctx, msg); err != nil {
			return nil, err
		}
		return channel, nil
	}

	if err := c.engine.SaveChannel(ctx, channel, false); err != nil {
		RecordWrite(models.OperationCreateChannel, "sync", saveChannelStatus(err))
		return nil, fmt.Errorf("create channel: %w", err)
	}
	RecordWrite(models.OperationCreateChannel, "sync", "ok")
	return channel, nil
}

// ReplaceChannel rebuilds a stored channel from full client input,
// keeping id, slug, and created. There is no upsert.
func (c *Coordinator) ReplaceChannel(ctx context.Context, identifier string, input *models.ChannelInput, async bool) (*models.Channel, error) {
	stored, err := c.engine.GetChannel(ctx, identifier)
	if err != nil {
		return nil, err
	}

	channel := &models.Channel{
		ID:             stored.ID,
		Slug:           stored.Slug,
		Title:          input.Title,
		Curator:        input.Curator,
		Created:        stored.Created,
		Curators:       input.Curators,
		Summary:        input.Summary,
		Publisher:      input.Publisher,
		CoverImage:     input.CoverImage,
		DynamicQueries: input.DynamicQueries,
		Playlists:      input.Playlists,
	}

	signature, err := c.sign(channel)
	if err != nil {
		return nil, fmt.Errorf("replace channel %s: %w", stored.ID, err)
	}
	channel.Signature = signature

	if async {
		msg := models.NewWriteOperationMessage(models.OperationUpdateChannel, channel.ID,
			models.WriteOperationData{Channel: channel})
		if err := c.publish(ctx, msg); err != nil {
			return nil, err
		}
		return channel, nil
	}

	if err := c.engine.SaveChannel(ctx, channel, true); err != nil {
		RecordWrite(models.OperationUpdateChannel, "sync", saveChannelStatus(err))
		return nil, fmt.Errorf("replace channel %s: %w", stored.ID, err)
	}
	RecordWrite(models.OperationUpdateChannel, "sync", "ok")
	return channel, nil
}

// PatchChannel merges the update into the stored channel and re-signs.
// A patched playlist list is re-resolved in full on save.
func (c *Coordinator) PatchChannel(ctx context.Context, identifier string, update *models.ChannelUpdate, async bool) (*models.Channel, error) {
	stored, err := c.engine.GetChannel(ctx, identifier)
	if err != nil {
		return nil, err
	}

	channel := *stored
	mergeChannelUpdate(&channel, update)

	signature, err := c.sign(&channel)
	if err != nil {
		return nil, fmt.Errorf("patch channel %s: %w", stored.ID, err)
	}
	channel.Signature = signature

	if async {
		msg := models.NewWriteOperationMessage(models.OperationUpdateChannel, channel.ID,
			models.WriteOperationData{Channel: &channel})
		if err := c.publish(ctx, msg); err != nil {
			return nil, err
		}
		return &channel, nil
	}

	if err := c.engine.SaveChannel(ctx, &channel, true); err != nil {
		RecordWrite(models.OperationUpdateChannel, "sync", saveChannelStatus(err))
		return nil, fmt.Errorf("patch channel %s: %w", stored.ID, err)
	}
	RecordWrite(models.OperationUpdateChannel, "sync", "ok")
	return &channel, nil
}

// mergeChannelUpdate applies the present fields of update onto channel.
// Zero values mean "not present"; clearing a field takes a PUT.
func mergeChannelUpdate(channel *models.Channel, update *models.ChannelUpdate) {
	if update.Title != "" {
		channel.Title = update.Title
	}
	if update.Curator != "" {
		channel.Curator = update.Curator
	}
	if update.Curators != nil {
		channel.Curators = update.Curators
	}
	if update.Summary != "" {
		channel.Summary = update.Summary
	}
	if update.Publisher != nil {
		channel.Publisher = update.Publisher
	}
	if update.CoverImage != "" {
		channel.CoverImage = update.CoverImage
	}
	if update.DynamicQueries != nil {
		channel.DynamicQueries = update.DynamicQueries
	}
	if update.Playlists != nil {
		channel.Playlists = update.Playlists
	}
}

// DeleteChannel removes a channel sync, or queues its removal async.
func (c *Coordinator) DeleteChannel(ctx context.Context, identifier string, async bool) error {
	if async {
		stored, err := c.engine.GetChannel(ctx, identifier)
		if err != nil {
			return err
		}
		msg := models.NewWriteOperationMessage(models.OperationDeleteChannel, stored.ID,
			models.WriteOperationData{ChannelID: stored.ID})
		return c.publish(ctx, msg)
	}

	if err := c.engine.DeleteChannel(ctx, identifier); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			RecordWrite(models.OperationDeleteChannel, "sync", "storage_error")
		}
		return err
	}
	RecordWrite(models.OperationDeleteChannel, "sync", "ok")
	return nil
}

// saveChannelStatus distinguishes resolution rejections from real
// storage failures in the write counter.
func saveChannelStatus(err error) string {
	if errors.Is(err, storage.ErrInvalidSelfHostedURL) ||
		errors.Is(err, storage.ErrSelfHostedPlaylistMissing) {
		return "resolution_rejected"
	}
	return "storage_error"
}
