// FeedForge - DP-1 Feed Operator for Signed Playlists and Channels
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedforge

package kv

import (
	"context"
	"errors"
	"fmt"
	"sync"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/feedforge/internal/logging"
)

// BadgerConfig configures the persistent store.
type BadgerConfig struct {
	// Path is the on-disk database directory.
	Path string

	// SyncWrites fsyncs every write. Slower, but a crash cannot lose
	// acknowledged writes.
	SyncWrites bool

	// GCRatio is the value-log rewrite threshold for RunGC.
	GCRatio float64
}

// DefaultBadgerConfig returns production defaults.
func DefaultBadgerConfig(path string) BadgerConfig {
	return BadgerConfig{
		Path:       path,
		SyncWrites: true,
		GCRatio:    0.5,
	}
}

// BadgerStore is the BadgerDB-backed Store.
type BadgerStore struct {
	db      *badger.DB
	gcRatio float64

	mu     sync.RWMutex
	closed bool
}

// NewBadgerStore opens (or creates) the database at cfg.Path.
func NewBadgerStore(cfg BadgerConfig) (*BadgerStore, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("badger path cannot be empty")
	}
	if cfg.GCRatio <= 0 || cfg.GCRatio > 1 {
		cfg.GCRatio = 0.5
	}

	opts := badger.DefaultOptions(cfg.Path)
	opts.SyncWrites = cfg.SyncWrites

	// Reduce logging verbosity
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}

	logging.Info().
		Str("path", cfg.Path).
		Bool("sync_writes", cfg.SyncWrites).
		Msg("KV store opened")

	return &BadgerStore{db: db, gcRatio: cfg.GCRatio}, nil
}

func (s *BadgerStore) isClosed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}

// Get returns the value for key, or ErrKeyNotFound.
func (s *BadgerStore) Get(ctx context.Context, key string) ([]byte, error) {
	if s.isClosed() {
		return nil, ErrStoreClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrKeyNotFound
		}
		if err != nil {
			return fmt.Errorf("get key: %w", err)
		}

		value, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			RecordOperation("get", "not_found")
		} else {
			RecordOperation("get", "error")
		}
		return nil, err
	}

	RecordOperation("get", "ok")
	return value, nil
}

// Put writes value under key.
func (s *BadgerStore) Put(ctx context.Context, key string, value []byte) error {
	if s.isClosed() {
		return ErrStoreClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
	if err != nil {
		RecordOperation("put", "error")
		return fmt.Errorf("put key: %w", err)
	}

	RecordOperation("put", "ok")
	return nil
}

// Delete removes key. Missing keys are not an error.
func (s *BadgerStore) Delete(ctx context.Context, key string) error {
	if s.isClosed() {
		return ErrStoreClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete([]byte(key))
		if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return nil
	})
	if err != nil {
		RecordOperation("delete", "error")
		return fmt.Errorf("delete key: %w", err)
	}

	RecordOperation("delete", "ok")
	return nil
}

// List scans keys sharing prefix, honoring cursor, limit, and direction.
func (s *BadgerStore) List(ctx context.Context, prefix string, opts ListOptions) (ListResult, error) {
	if s.isClosed() {
		return ListResult{}, ErrStoreClosed
	}
	if err := ctx.Err(); err != nil {
		return ListResult{}, err
	}

	var result ListResult
	err := s.db.View(func(txn *badger.Txn) error {
		iterOpts := badger.DefaultIteratorOptions
		iterOpts.PrefetchValues = true
		iterOpts.Reverse = opts.Reverse
		it := txn.NewIterator(iterOpts)
		defer it.Close()

		prefixBytes := []byte(prefix)
		seekTo(it, prefixBytes, opts)

		for ; it.ValidForPrefix(prefixBytes); it.Next() {
			item := it.Item()
			value, err := item.ValueCopy(nil)
			if err != nil {
				return fmt.Errorf("copy value: %w", err)
			}
			result.Entries = append(result.Entries, Entry{
				Key:   string(item.KeyCopy(nil)),
				Value: value,
			})

			if opts.Limit > 0 && len(result.Entries) == opts.Limit {
				// Peek past the cap so Complete is accurate when the
				// page ends exactly at the range boundary.
				it.Next()
				if it.ValidForPrefix(prefixBytes) {
					result.Cursor = result.Entries[len(result.Entries)-1].Key
				} else {
					result.Complete = true
				}
				return nil
			}
		}

		result.Complete = true
		return nil
	})
	if err != nil {
		RecordOperation("list", "error")
		return ListResult{}, err
	}

	RecordOperation("list", "ok")
	return result, nil
}

// seekTo positions the iterator at the first entry of the requested page.
// Cursors are exclusive: iteration resumes at the first key strictly past
// the cursor in scan direction, which also holds when the cursored key has
// been deleted in the meantime.
func seekTo(it *badger.Iterator, prefix []byte, opts ListOptions) {
	if opts.Cursor != "" {
		cursor := []byte(opts.Cursor)
		it.Seek(cursor)
		if it.Valid() && string(it.Item().Key()) == opts.Cursor {
			it.Next()
		}
		return
	}

	if !opts.Reverse {
		it.Seek(prefix)
		return
	}

	// Reverse scans start past the end of the range. Keys are ASCII, so a
	// 0xff sentinel sorts after every key under the prefix.
	seek := make([]byte, 0, len(prefix)+1)
	seek = append(seek, prefix...)
	seek = append(seek, 0xff)
	it.Seek(seek)
}

// RunGC rewrites the value log until no further cleanup is possible.
// Call periodically; BadgerDB reclaims value-log space only through this.
func (s *BadgerStore) RunGC() error {
	if s.isClosed() {
		return ErrStoreClosed
	}

	for {
		err := s.db.RunValueLogGC(s.gcRatio)
		if errors.Is(err, badger.ErrNoRewrite) {
			break
		}
		if err != nil {
			return fmt.Errorf("run GC: %w", err)
		}
	}

	RecordGCRun()

	lsm, vlog := s.db.Size()
	UpdateDBSize(lsm, vlog)
	return nil
}

// Close releases the database.
func (s *BadgerStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close BadgerDB: %w", err)
	}
	return nil
}
