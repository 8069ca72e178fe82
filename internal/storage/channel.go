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

// SaveChannel resolves every playlist URL the channel references, then
// persists the channel and its bidirectional playlist mappings. All URLs
// must resolve before anything is written; a single failure aborts the
// save with the store untouched. External playlists are materialized
// into the local store so channel listings never re-fetch them.
func (e *Engine) SaveChannel(ctx context.Context, channel *models.Channel, isUpdate bool) error {
	ts, err := indexTimestamp(channel.Created)
	if err != nil {
		return fmt.Errorf("save channel %s: %w", channel.ID, err)
	}

	resolutions, err := e.resolveAll(ctx, channel.Playlists)
	if err != nil {
		return fmt.Errorf("save channel %s: %w", channel.ID, err)
	}

	if isUpdate {
		if err := e.unlinkChannelMappings(ctx, channel.ID); err != nil {
			return fmt.Errorf("save channel %s: %w", channel.ID, err)
		}
	}

	eg, egCtx := errgroup.WithContext(ctx)
	for _, res := range resolutions {
		eg.Go(func() error {
			return e.linkPlaylist(egCtx, channel.ID, res)
		})
	}
	if err := eg.Wait(); err != nil {
		return fmt.Errorf("save channel %s mappings: %w", channel.ID, err)
	}

	eg, egCtx = errgroup.WithContext(ctx)
	eg.Go(func() error {
		return e.putJSON(egCtx, channelKey(channel.ID), channel)
	})
	eg.Go(func() error {
		return e.store.Put(egCtx, channelSlugKey(channel.Slug), []byte(channel.ID))
	})
	eg.Go(func() error {
		return e.store.Put(egCtx, channelCreatedKey(sortAsc, ts, channel.ID), []byte(channel.ID))
	})
	eg.Go(func() error {
		return e.store.Put(egCtx, channelCreatedKey(sortDesc, ts, channel.ID), []byte(channel.ID))
	})
	if err := eg.Wait(); err != nil {
		return fmt.Errorf("save channel %s: %w", channel.ID, err)
	}

	RecordSave("channel", "ok")
	return nil
}

// resolveAll resolves every playlist URL concurrently, preserving input
// order. Any failure cancels the remaining lookups.
func (e *Engine) resolveAll(ctx context.Context, urls []string) ([]*Resolution, error) {
	resolutions := make([]*Resolution, len(urls))

	eg, egCtx := errgroup.WithContext(ctx)
	for i, rawURL := range urls {
		eg.Go(func() error {
			res, err := e.resolver.Resolve(egCtx, rawURL)
			if err != nil {
				return fmt.Errorf("resolve %s: %w", rawURL, err)
			}
			resolutions[i] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return resolutions, nil
}

// linkPlaylist writes both mapping directions for one resolved playlist
// plus the per-channel item entries. External playlists are stored as a
// fresh create before linking.
func (e *Engine) linkPlaylist(ctx context.Context, channelID string, res *Resolution) error {
	if res.External {
		if err := e.SavePlaylist(ctx, res.Playlist, false); err != nil {
			return fmt.Errorf("materialize playlist %s: %w", res.ID, err)
		}
	}

	if err := e.store.Put(ctx, channelToPlaylistsKey(channelID, res.ID), []byte(res.ID)); err != nil {
		return fmt.Errorf("put channel mapping: %w", err)
	}
	if err := e.store.Put(ctx, playlistToChannelsKey(res.ID, channelID), []byte(channelID)); err != nil {
		return fmt.Errorf("put playlist mapping: %w", err)
	}

	for _, item := range res.Playlist.Items {
		if err := e.store.Put(ctx, itemByChannelKey(channelID, res.ID, item.ID), []byte(item.ID)); err != nil {
			return fmt.Errorf("put item mapping: %w", err)
		}
	}
	return nil
}

// unlinkChannelMappings removes every mapping the channel owns: the
// forward entries, their mirrors, and the per-channel item entries.
func (e *Engine) unlinkChannelMappings(ctx context.Context, channelID string) error {
	mappings, err := e.store.List(ctx, channelToPlaylistsPrefix(channelID), kv.ListOptions{})
	if err != nil {
		return fmt.Errorf("scan channel mappings: %w", err)
	}

	for _, entry := range mappings.Entries {
		playlistID := string(entry.Value)

		if err := e.store.Delete(ctx, playlistToChannelsKey(playlistID, channelID)); err != nil {
			return fmt.Errorf("delete playlist mapping: %w", err)
		}
		if err := e.store.Delete(ctx, entry.Key); err != nil {
			return fmt.Errorf("delete channel mapping: %w", err)
		}
	}

	return e.deletePrefix(ctx, itemsByChannelPrefix(channelID))
}

// GetChannel loads a channel by UUID or slug.
func (e *Engine) GetChannel(ctx context.Context, identifier string) (*models.Channel, error) {
	var channel models.Channel
	if err := e.getByIDOrSlug(ctx, prefixChannelByID, prefixChannelBySlug, identifier, &channel); err != nil {
		return nil, err
	}
	return &channel, nil
}

// DeleteChannel removes a channel, its indexes, and every mapping it
// owns. Playlists the channel referenced are left in place; they may be
// shared with other channels. Returns ErrNotFound when no such channel
// exists.
func (e *Engine) DeleteChannel(ctx context.Context, identifier string) error {
	channel, err := e.GetChannel(ctx, identifier)
	if err != nil {
		return err
	}

	ts, tsErr := indexTimestamp(channel.Created)

	// Record first so readers stop resolving the channel, then the
	// aliases, indexes, and mappings.
	if err := e.store.Delete(ctx, channelKey(channel.ID)); err != nil {
		return fmt.Errorf("delete channel %s: %w", channel.ID, err)
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return e.store.Delete(egCtx, channelSlugKey(channel.Slug))
	})
	if tsErr == nil {
		eg.Go(func() error {
			return e.store.Delete(egCtx, channelCreatedKey(sortAsc, ts, channel.ID))
		})
		eg.Go(func() error {
			return e.store.Delete(egCtx, channelCreatedKey(sortDesc, ts, channel.ID))
		})
	}
	if err := eg.Wait(); err != nil {
		return fmt.Errorf("delete channel %s: %w", channel.ID, err)
	}

	if err := e.unlinkChannelMappings(ctx, channel.ID); err != nil {
		return fmt.Errorf("delete channel %s: %w", channel.ID, err)
	}

	RecordSave("channel", "deleted")
	return nil
}

// ListChannels returns one page of channels ordered by created time.
func (e *Engine) ListChannels(ctx context.Context, q ListQuery) (*ChannelPage, error) {
	prefix := createdPrefix(prefixChannelCreated, normalizeSort(q.Sort))

	ids, cursor, hasMore, err := e.scanPage(ctx, prefix, q, false)
	if err != nil {
		return nil, err
	}

	channels, err := e.fetchChannels(ctx, ids)
	if err != nil {
		return nil, err
	}

	return &ChannelPage{Channels: channels, Cursor: cursor, HasMore: hasMore}, nil
}

// fetchChannels loads records for the scanned ids in parallel, keeping
// scan order and skipping entries whose record vanished mid-listing.
func (e *Engine) fetchChannels(ctx context.Context, ids []string) ([]models.Channel, error) {
	found := make([]*models.Channel, len(ids))

	eg, egCtx := errgroup.WithContext(ctx)
	for i, id := range ids {
		eg.Go(func() error {
			var channel models.Channel
			err := e.getJSON(egCtx, channelKey(id), &channel)
			if errors.Is(err, ErrNotFound) {
				logSkippedRecord(egCtx, "channel", id)
				return nil
			}
			if err != nil {
				return err
			}
			found[i] = &channel
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	channels := make([]models.Channel, 0, len(ids))
	for _, channel := range found {
		if channel != nil {
			channels = append(channels, *channel)
		}
	}
	return channels, nil
}
