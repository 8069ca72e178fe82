// FeedForge - DP-1 Feed Operator for Signed Playlists and Channels
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedforge

package storage

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/feedforge/internal/models"
)

// GetItem loads a playlist item by UUID. Items have no slug alias.
func (e *Engine) GetItem(ctx context.Context, id string) (*models.PlaylistItem, error) {
	var item models.PlaylistItem
	if err := e.getJSON(ctx, itemKey(id), &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// ListItems returns one page of items across all playlists, ordered by
// created time.
func (e *Engine) ListItems(ctx context.Context, q ListQuery) (*ItemPage, error) {
	prefix := createdPrefix(prefixItemCreated, normalizeSort(q.Sort))

	ids, cursor, hasMore, err := e.scanPage(ctx, prefix, q, false)
	if err != nil {
		return nil, err
	}

	items, err := e.fetchItems(ctx, ids)
	if err != nil {
		return nil, err
	}

	return &ItemPage{Items: items, Cursor: cursor, HasMore: hasMore}, nil
}

// ListItemsByChannel returns one page of the items reachable through a
// channel's playlists, ordered by playlist id then item id.
func (e *Engine) ListItemsByChannel(ctx context.Context, channelID string, q ListQuery) (*ItemPage, error) {
	prefix := itemsByChannelPrefix(channelID)

	ids, cursor, hasMore, err := e.scanPage(ctx, prefix, q, normalizeSort(q.Sort) == sortDesc)
	if err != nil {
		return nil, err
	}

	items, err := e.fetchItems(ctx, ids)
	if err != nil {
		return nil, err
	}

	return &ItemPage{Items: items, Cursor: cursor, HasMore: hasMore}, nil
}

// fetchItems loads records for the scanned ids in parallel, keeping scan
// order and skipping entries whose record vanished mid-listing.
func (e *Engine) fetchItems(ctx context.Context, ids []string) ([]models.PlaylistItem, error) {
	found := make([]*models.PlaylistItem, len(ids))

	eg, egCtx := errgroup.WithContext(ctx)
	for i, id := range ids {
		eg.Go(func() error {
			var item models.PlaylistItem
			err := e.getJSON(egCtx, itemKey(id), &item)
			if errors.Is(err, ErrNotFound) {
				logSkippedRecord(egCtx, "item", id)
				return nil
			}
			if err != nil {
				return err
			}
			found[i] = &item
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	items := make([]models.PlaylistItem, 0, len(ids))
	for _, item := range found {
		if item != nil {
			items = append(items, *item)
		}
	}
	return items, nil
}
