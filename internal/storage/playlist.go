// FeedForge - DP-1 Feed Operator for Signed Playlists and Channels
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedforge

package storage

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/feedforge/internal/kv"
	"github.com/tomtom215/feedforge/internal/models"
)

// SavePlaylist persists a fully-formed, signed playlist under every key
// the schema derives from it. Items are written before the parent record
// so a reader observing the record never sees a missing item set. On
// update, the previous version's item records and item indexes are
// removed first; the parent's slug and created keys are stable because
// those fields are immutable.
func (e *Engine) SavePlaylist(ctx context.Context, playlist *models.Playlist, isUpdate bool) error {
	ts, err := indexTimestamp(playlist.Created)
	if err != nil {
		return fmt.Errorf("save playlist %s: %w", playlist.ID, err)
	}

	if isUpdate {
		if err := e.deleteOldItems(ctx, playlist.ID); err != nil {
			return fmt.Errorf("save playlist %s: %w", playlist.ID, err)
		}
	}

	eg, egCtx := errgroup.WithContext(ctx)
	for _, item := range playlist.Items {
		eg.Go(func() error {
			return e.writeItem(egCtx, item)
		})
	}
	if err := eg.Wait(); err != nil {
		return fmt.Errorf("save playlist %s items: %w", playlist.ID, err)
	}

	eg, egCtx = errgroup.WithContext(ctx)
	eg.Go(func() error {
		return e.putJSON(egCtx, playlistKey(playlist.ID), playlist)
	})
	eg.Go(func() error {
		return e.store.Put(egCtx, playlistSlugKey(playlist.Slug), []byte(playlist.ID))
	})
	eg.Go(func() error {
		return e.store.Put(egCtx, playlistCreatedKey(sortAsc, ts, playlist.ID), []byte(playlist.ID))
	})
	eg.Go(func() error {
		return e.store.Put(egCtx, playlistCreatedKey(sortDesc, ts, playlist.ID), []byte(playlist.ID))
	})
	if err := eg.Wait(); err != nil {
		return fmt.Errorf("save playlist %s: %w", playlist.ID, err)
	}

	RecordSave("playlist", "ok")
	return nil
}

// writeItem persists one item record plus its two created indexes.
// Fetched external items may omit created; they stay out of the created
// index but remain reachable through their playlist and channel.
func (e *Engine) writeItem(ctx context.Context, item models.PlaylistItem) error {
	if err := e.putJSON(ctx, itemKey(item.ID), item); err != nil {
		return err
	}
	if item.Created == "" {
		return nil
	}

	ts, err := indexTimestamp(item.Created)
	if err != nil {
		return fmt.Errorf("item %s: %w", item.ID, err)
	}
	if err := e.store.Put(ctx, itemCreatedKey(sortAsc, ts, item.ID), []byte(item.ID)); err != nil {
		return fmt.Errorf("put item index: %w", err)
	}
	if err := e.store.Put(ctx, itemCreatedKey(sortDesc, ts, item.ID), []byte(item.ID)); err != nil {
		return fmt.Errorf("put item index: %w", err)
	}
	return nil
}

// deleteOldItems removes the stored version's item records and indexes
// ahead of a rewrite. A missing old record is not an error; the update
// may be replaying after a partial write.
func (e *Engine) deleteOldItems(ctx context.Context, playlistID string) error {
	var old models.Playlist
	err := e.getJSON(ctx, playlistKey(playlistID), &old)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	eg, egCtx := errgroup.WithContext(ctx)
	for _, item := range old.Items {
		eg.Go(func() error {
			return e.deleteItem(egCtx, item)
		})
	}
	return eg.Wait()
}

// deleteItem removes one item record plus its two created indexes.
func (e *Engine) deleteItem(ctx context.Context, item models.PlaylistItem) error {
	if err := e.store.Delete(ctx, itemKey(item.ID)); err != nil {
		return fmt.Errorf("delete item %s: %w", item.ID, err)
	}

	ts, err := indexTimestamp(item.Created)
	if err != nil {
		// No index keys exist for items stored without created.
		return nil
	}
	if err := e.store.Delete(ctx, itemCreatedKey(sortAsc, ts, item.ID)); err != nil {
		return fmt.Errorf("delete item index: %w", err)
	}
	if err := e.store.Delete(ctx, itemCreatedKey(sortDesc, ts, item.ID)); err != nil {
		return fmt.Errorf("delete item index: %w", err)
	}
	return nil
}

// GetPlaylist loads a playlist by UUID or slug.
func (e *Engine) GetPlaylist(ctx context.Context, identifier string) (*models.Playlist, error) {
	var playlist models.Playlist
	if err := e.getByIDOrSlug(ctx, prefixPlaylistByID, prefixPlaylistBySlug, identifier, &playlist); err != nil {
		return nil, err
	}
	return &playlist, nil
}

// DeletePlaylist removes a playlist, its items, its indexes, and every
// channel mapping that references it. Returns ErrNotFound when no such
// playlist exists.
func (e *Engine) DeletePlaylist(ctx context.Context, identifier string) error {
	playlist, err := e.GetPlaylist(ctx, identifier)
	if err != nil {
		return err
	}

	ts, tsErr := indexTimestamp(playlist.Created)

	// Record first so readers stop resolving the playlist, then the
	// aliases, indexes, and items.
	if err := e.store.Delete(ctx, playlistKey(playlist.ID)); err != nil {
		return fmt.Errorf("delete playlist %s: %w", playlist.ID, err)
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return e.store.Delete(egCtx, playlistSlugKey(playlist.Slug))
	})
	if tsErr == nil {
		eg.Go(func() error {
			return e.store.Delete(egCtx, playlistCreatedKey(sortAsc, ts, playlist.ID))
		})
		eg.Go(func() error {
			return e.store.Delete(egCtx, playlistCreatedKey(sortDesc, ts, playlist.ID))
		})
	}
	for _, item := range playlist.Items {
		eg.Go(func() error {
			return e.deleteItem(egCtx, item)
		})
	}
	if err := eg.Wait(); err != nil {
		return fmt.Errorf("delete playlist %s: %w", playlist.ID, err)
	}

	if err := e.unlinkPlaylistFromChannels(ctx, playlist.ID); err != nil {
		return fmt.Errorf("delete playlist %s: %w", playlist.ID, err)
	}

	RecordSave("playlist", "deleted")
	return nil
}

// unlinkPlaylistFromChannels removes both directions of every channel
// mapping for the playlist, plus the per-channel item entries.
func (e *Engine) unlinkPlaylistFromChannels(ctx context.Context, playlistID string) error {
	mappings, err := e.store.List(ctx, playlistToChannelsPrefix(playlistID), kv.ListOptions{})
	if err != nil {
		return fmt.Errorf("scan playlist mappings: %w", err)
	}

	for _, entry := range mappings.Entries {
		channelID := string(entry.Value)

		if err := e.store.Delete(ctx, channelToPlaylistsKey(channelID, playlistID)); err != nil {
			return fmt.Errorf("delete channel mapping: %w", err)
		}
		if err := e.deletePrefix(ctx, itemsByChannelPlaylistPrefix(channelID, playlistID)); err != nil {
			return err
		}
		if err := e.store.Delete(ctx, entry.Key); err != nil {
			return fmt.Errorf("delete playlist mapping: %w", err)
		}
	}
	return nil
}

// ListPlaylists returns one page of playlists ordered by created time.
func (e *Engine) ListPlaylists(ctx context.Context, q ListQuery) (*PlaylistPage, error) {
	prefix := createdPrefix(prefixPlaylistCreated, normalizeSort(q.Sort))

	ids, cursor, hasMore, err := e.scanPage(ctx, prefix, q, false)
	if err != nil {
		return nil, err
	}

	playlists, err := e.fetchPlaylists(ctx, ids)
	if err != nil {
		return nil, err
	}

	return &PlaylistPage{Playlists: playlists, Cursor: cursor, HasMore: hasMore}, nil
}

// ListPlaylistsByChannel returns one page of the playlists mapped into a
// channel, ordered by playlist id.
func (e *Engine) ListPlaylistsByChannel(ctx context.Context, channelID string, q ListQuery) (*PlaylistPage, error) {
	prefix := channelToPlaylistsPrefix(channelID)

	ids, cursor, hasMore, err := e.scanPage(ctx, prefix, q, normalizeSort(q.Sort) == sortDesc)
	if err != nil {
		return nil, err
	}

	playlists, err := e.fetchPlaylists(ctx, ids)
	if err != nil {
		return nil, err
	}

	return &PlaylistPage{Playlists: playlists, Cursor: cursor, HasMore: hasMore}, nil
}

// fetchPlaylists loads records for the scanned ids in parallel, keeping
// scan order and skipping entries whose record vanished mid-listing.
func (e *Engine) fetchPlaylists(ctx context.Context, ids []string) ([]models.Playlist, error) {
	found := make([]*models.Playlist, len(ids))

	eg, egCtx := errgroup.WithContext(ctx)
	for i, id := range ids {
		eg.Go(func() error {
			var playlist models.Playlist
			err := e.getJSON(egCtx, playlistKey(id), &playlist)
			if errors.Is(err, ErrNotFound) {
				logSkippedRecord(egCtx, "playlist", id)
				return nil
			}
			if err != nil {
				return err
			}
			found[i] = &playlist
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	playlists := make([]models.Playlist, 0, len(ids))
	for _, playlist := range found {
		if playlist != nil {
			playlists = append(playlists, *playlist)
		}
	}
	return playlists, nil
}
