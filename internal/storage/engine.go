// FeedForge - DP-1 Feed Operator for Signed Playlists and Channels
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedforge

// Package storage implements the multi-index persistence engine for
// playlists, items, and channels on top of the KV port.
//
// Every resource is stored under several keys at once: the JSON record,
// a slug alias, and two created-time indexes (ascending and descending)
// so both listing directions are plain forward prefix scans. Channel
// membership is materialized in both directions as mapping keys, making
// channel joins prefix scans as well. There are no cross-key
// transactions; consistency comes from write ordering (items before
// parent, mappings before channel record) and idempotent overwrites.
package storage

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/feedforge/internal/kv"
	"github.com/tomtom215/feedforge/internal/logging"
	"github.com/tomtom215/feedforge/internal/models"
)

// Errors
var (
	// ErrNotFound is returned when no resource matches the identifier.
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidCursor is returned when a pagination cursor cannot be
	// decoded.
	ErrInvalidCursor = errors.New("invalid cursor")

	// ErrInvalidSelfHostedURL is returned when a channel references a
	// self-hosted URL whose path is not a playlist path.
	ErrInvalidSelfHostedURL = errors.New("invalid self-hosted playlist URL")

	// ErrSelfHostedPlaylistMissing is returned when a self-hosted
	// reference points at a playlist that does not exist locally.
	ErrSelfHostedPlaylistMissing = errors.New("self-hosted playlist not found")
)

// ListQuery controls a paginated listing. Limit must already be validated
// by the caller; Sort values other than "desc" collapse to ascending.
type ListQuery struct {
	Limit  int
	Cursor string
	Sort   string
}

// PlaylistPage is one page of a playlist listing.
type PlaylistPage struct {
	Playlists []models.Playlist
	Cursor    string
	HasMore   bool
}

// ItemPage is one page of a playlist-item listing.
type ItemPage struct {
	Items   []models.PlaylistItem
	Cursor  string
	HasMore bool
}

// ChannelPage is one page of a channel listing.
type ChannelPage struct {
	Channels []models.Channel
	Cursor   string
	HasMore  bool
}

// Engine is the storage engine. It owns the key schema and all join and
// ordering logic; the KV store underneath only sees opaque keys.
type Engine struct {
	store    kv.Store
	resolver *Resolver
}

// NewEngine creates a storage engine on the given store. Channel saves
// resolve playlist references through a resolver built from resolverCfg,
// with local lookups short-circuiting to this engine.
func NewEngine(store kv.Store, resolverCfg ResolverConfig) *Engine {
	e := &Engine{store: store}
	e.resolver = newResolver(resolverCfg, e.GetPlaylist)
	return e
}

// Resolver exposes the engine's URL resolver.
func (e *Engine) Resolver() *Resolver {
	return e.resolver
}

// ========================
// Shared helpers
// ========================

// normalizeSort collapses any value other than "desc" to "asc".
func normalizeSort(sort string) string {
	if sort == sortDesc {
		return sortDesc
	}
	return sortAsc
}

// encodeCursor wraps a KV scan cursor into the opaque wire form.
func encodeCursor(cursor string) string {
	if cursor == "" {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString([]byte(cursor))
}

// decodeCursor unwraps a wire cursor back into a KV scan cursor.
func decodeCursor(cursor string) (string, error) {
	if cursor == "" {
		return "", nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidCursor, cursor)
	}
	return string(raw), nil
}

// isUUID reports whether the identifier parses as a UUID.
func isUUID(identifier string) bool {
	_, err := uuid.Parse(identifier)
	return err == nil
}

func (e *Engine) getJSON(ctx context.Context, key string, out any) error {
	raw, err := e.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, kv.ErrKeyNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (e *Engine) putJSON(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := e.store.Put(ctx, key, raw); err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

// getByIDOrSlug loads a record via its id key when the identifier is a
// UUID, via the slug alias otherwise.
func (e *Engine) getByIDOrSlug(ctx context.Context, idPrefix, slugPrefix, identifier string, out any) error {
	if isUUID(identifier) {
		return e.getJSON(ctx, idPrefix+identifier, out)
	}

	idRaw, err := e.store.Get(ctx, slugPrefix+identifier)
	if err != nil {
		if errors.Is(err, kv.ErrKeyNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("get %s: %w", slugPrefix+identifier, err)
	}
	return e.getJSON(ctx, idPrefix+string(idRaw), out)
}

// deletePrefix removes every key under prefix. Used for mapping cleanup,
// where the number of entries is bounded by channel size.
func (e *Engine) deletePrefix(ctx context.Context, prefix string) error {
	result, err := e.store.List(ctx, prefix, kv.ListOptions{})
	if err != nil {
		return fmt.Errorf("scan %s: %w", prefix, err)
	}
	for _, entry := range result.Entries {
		if err := e.store.Delete(ctx, entry.Key); err != nil {
			return fmt.Errorf("delete %s: %w", entry.Key, err)
		}
	}
	return nil
}

// scanPage runs one paginated index scan and returns the ids stored as
// entry values together with the next wire cursor. Created-index listings
// always scan forward because direction is baked into the index prefix;
// mapping listings pass reverse for descending order instead.
func (e *Engine) scanPage(ctx context.Context, prefix string, q ListQuery, reverse bool) ([]string, string, bool, error) {
	kvCursor, err := decodeCursor(q.Cursor)
	if err != nil {
		return nil, "", false, err
	}

	result, err := e.store.List(ctx, prefix, kv.ListOptions{
		Limit:   q.Limit,
		Cursor:  kvCursor,
		Reverse: reverse,
	})
	if err != nil {
		return nil, "", false, fmt.Errorf("scan %s: %w", prefix, err)
	}

	ids := make([]string, 0, len(result.Entries))
	for _, entry := range result.Entries {
		ids = append(ids, string(entry.Value))
	}
	return ids, encodeCursor(result.Cursor), !result.Complete, nil
}

// logSkippedRecord notes an index entry whose record vanished between the
// scan and the fetch, which can happen when a delete races a listing.
func logSkippedRecord(ctx context.Context, kind, id string) {
	logging.Ctx(ctx).Debug().
		Str("kind", kind).
		Str("id", id).
		Msg("Index entry without record skipped during listing")
}
