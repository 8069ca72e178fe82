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

// CreatePlaylist synthesizes a new playlist from client input, signs it,
// and persists it sync or async. The returned playlist is the full
// stored form either way; on the async path it becomes visible once the
// queue drains.
func (c *Coordinator) CreatePlaylist(ctx context.Context, input *models.PlaylistInput, async bool) (*models.Playlist, error) {
	created := now()

	playlist := &models.Playlist{
		DPVersion:      input.DPVersion,
		ID:             uuid.New().String(),
		Slug:           validation.GenerateSlug(input.Title),
		Title:          input.Title,
		Created:        created.Format(timestampLayout),
		Defaults:       input.Defaults,
		Curators:       input.Curators,
		Summary:        input.Summary,
		CoverImage:     input.CoverImage,
		DynamicQueries: input.DynamicQueries,
		Items:          buildItems(input.Items, created),
	}

	signature, err := c.sign(playlist)
	if err != nil {
		return nil, fmt.Errorf("create playlist: %w", err)
	}
	playlist.Signature = signature

	if async {
		msg := models.NewWriteOperationMessage(models.OperationCreatePlaylist, playlist.ID,
			models.WriteOperationData{Playlist: playlist})
		if err := c.publish(ctx, msg); err != nil {
			return nil, err
		}
		return playlist, nil
	}

	if err := c.engine.SavePlaylist(ctx, playlist, false); err != nil {
		RecordWrite(models.OperationCreatePlaylist, "sync", "storage_error")
		return nil, fmt.Errorf("create playlist: %w", err)
	}
	RecordWrite(models.OperationCreatePlaylist, "sync", "ok")
	return playlist, nil
}

// ReplacePlaylist rebuilds a stored playlist from full client input.
// Identity fields survive the replace: id, slug, and created stay what
// they were, item identity does not. There is no upsert; a missing
// playlist is the caller's 404.
func (c *Coordinator) ReplacePlaylist(ctx context.Context, identifier string, input *models.PlaylistInput, async bool) (*models.Playlist, error) {
	stored, err := c.engine.GetPlaylist(ctx, identifier)
	if err != nil {
		return nil, err
	}

	playlist := &models.Playlist{
		DPVersion:      input.DPVersion,
		ID:             stored.ID,
		Slug:           stored.Slug,
		Title:          input.Title,
		Created:        stored.Created,
		Defaults:       input.Defaults,
		Curators:       input.Curators,
		Summary:        input.Summary,
		CoverImage:     input.CoverImage,
		DynamicQueries: input.DynamicQueries,
		Items:          buildItems(input.Items, now()),
	}

	signature, err := c.sign(playlist)
	if err != nil {
		return nil, fmt.Errorf("replace playlist %s: %w", stored.ID, err)
	}
	playlist.Signature = signature

	if async {
		msg := models.NewWriteOperationMessage(models.OperationUpdatePlaylist, playlist.ID,
			models.WriteOperationData{Playlist: playlist})
		if err := c.publish(ctx, msg); err != nil {
			return nil, err
		}
		return playlist, nil
	}

	if err := c.engine.SavePlaylist(ctx, playlist, true); err != nil {
		RecordWrite(models.OperationUpdatePlaylist, "sync", "storage_error")
		return nil, fmt.Errorf("replace playlist %s: %w", stored.ID, err)
	}
	RecordWrite(models.OperationUpdatePlaylist, "sync", "ok")
	return playlist, nil
}

// PatchPlaylist merges the update into the stored playlist. Only fields
// present in the update change; items, when present, are rebuilt with
// fresh identity like a replace. The merged resource is re-signed.
func (c *Coordinator) PatchPlaylist(ctx context.Context, identifier string, update *models.PlaylistUpdate, async bool) (*models.Playlist, error) {
	stored, err := c.engine.GetPlaylist(ctx, identifier)
	if err != nil {
		return nil, err
	}

	playlist := *stored
	mergePlaylistUpdate(&playlist, update)

	signature, err := c.sign(&playlist)
	if err != nil {
		return nil, fmt.Errorf("patch playlist %s: %w", stored.ID, err)
	}
	playlist.Signature = signature

	if async {
		msg := models.NewWriteOperationMessage(models.OperationUpdatePlaylist, playlist.ID,
			models.WriteOperationData{Playlist: &playlist})
		if err := c.publish(ctx, msg); err != nil {
			return nil, err
		}
		return &playlist, nil
	}

	if err := c.engine.SavePlaylist(ctx, &playlist, true); err != nil {
		RecordWrite(models.OperationUpdatePlaylist, "sync", "storage_error")
		return nil, fmt.Errorf("patch playlist %s: %w", stored.ID, err)
	}
	RecordWrite(models.OperationUpdatePlaylist, "sync", "ok")
	return &playlist, nil
}

// mergePlaylistUpdate applies the present fields of update onto playlist.
// Zero values mean "not present"; clearing a field takes a PUT.
func mergePlaylistUpdate(playlist *models.Playlist, update *models.PlaylistUpdate) {
	if update.DPVersion != "" {
		playlist.DPVersion = update.DPVersion
	}
	if update.Title != "" {
		playlist.Title = update.Title
	}
	if update.Defaults != nil {
		playlist.Defaults = update.Defaults
	}
	if update.Curators != nil {
		playlist.Curators = update.Curators
	}
	if update.Summary != "" {
		playlist.Summary = update.Summary
	}
	if update.CoverImage != "" {
		playlist.CoverImage = update.CoverImage
	}
	if update.DynamicQueries != nil {
		playlist.DynamicQueries = update.DynamicQueries
	}
	if len(update.Items) > 0 {
		playlist.Items = buildItems(update.Items, now())
	}
}

// DeletePlaylist removes a playlist sync, or queues its removal async.
// The identifier is resolved either way so a missing playlist surfaces
// as not-found before anything is queued.
func (c *Coordinator) DeletePlaylist(ctx context.Context, identifier string, async bool) error {
	if async {
		stored, err := c.engine.GetPlaylist(ctx, identifier)
		if err != nil {
			return err
		}
		msg := models.NewWriteOperationMessage(models.OperationDeletePlaylist, stored.ID,
			models.WriteOperationData{PlaylistID: stored.ID})
		return c.publish(ctx, msg)
	}

	if err := c.engine.DeletePlaylist(ctx, identifier); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			RecordWrite(models.OperationDeletePlaylist, "sync", "storage_error")
		}
		return err
	}
	RecordWrite(models.OperationDeletePlaylist, "sync", "ok")
	return nil
}
