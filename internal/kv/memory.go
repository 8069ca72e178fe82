// FeedForge - DP-1 Feed Operator for Signed Playlists and Channels
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedforge

package kv

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryStore is an in-memory Store for tests and ephemeral deployments.
// Data does not survive a restart.
type MemoryStore struct {
	mu     sync.RWMutex
	data   map[string][]byte
	closed bool
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

// Get returns the value for key, or ErrKeyNotFound.
func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	value, ok := s.data[key]
	if !ok {
		return nil, ErrKeyNotFound
	}

	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Put writes value under key.
func (s *MemoryStore) Put(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	stored := make([]byte, len(value))
	copy(stored, value)
	s.data[key] = stored
	return nil
}

// Delete removes key. Missing keys are not an error.
func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	delete(s.data, key)
	return nil
}

// List scans keys sharing prefix, honoring cursor, limit, and direction.
func (s *MemoryStore) List(ctx context.Context, prefix string, opts ListOptions) (ListResult, error) {
	if err := ctx.Err(); err != nil {
		return ListResult{}, err
	}

	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return ListResult{}, ErrStoreClosed
	}

	entries := make([]Entry, 0, len(s.data))
	for key, value := range s.data {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		out := make([]byte, len(value))
		copy(out, value)
		entries = append(entries, Entry{Key: key, Value: out})
	}
	s.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		if opts.Reverse {
			return entries[i].Key > entries[j].Key
		}
		return entries[i].Key < entries[j].Key
	})

	// Drop everything at or before the cursor in scan direction. Exclusive
	// resumption holds even when the cursored key has been deleted.
	if opts.Cursor != "" {
		start := 0
		for start < len(entries) && !pastCursor(entries[start].Key, opts) {
			start++
		}
		entries = entries[start:]
	}

	if opts.Limit > 0 && opts.Limit < len(entries) {
		page := entries[:opts.Limit]
		return ListResult{
			Entries: page,
			Cursor:  page[len(page)-1].Key,
		}, nil
	}

	return ListResult{Entries: entries, Complete: true}, nil
}

// pastCursor reports whether key lies strictly past the cursor in scan
// direction.
func pastCursor(key string, opts ListOptions) bool {
	if opts.Reverse {
		return key < opts.Cursor
	}
	return key > opts.Cursor
}

// Close marks the store closed.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.data = nil
	return nil
}
