// FeedForge - DP-1 Feed Operator for Signed Playlists and Channels
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedforge

// Package kv defines the key-value port the storage engine runs on, with a
// BadgerDB implementation for persistence and an in-memory implementation
// for tests and ephemeral deployments.
//
// Keys are ASCII strings ordered lexicographically by byte value. All list
// traversal, pagination, and index ordering in the layers above depend on
// that ordering, so implementations must preserve it exactly.
package kv

import (
	"context"
	"errors"
)

// Errors
var (
	// ErrKeyNotFound is returned by Get when no value exists for the key.
	ErrKeyNotFound = errors.New("key not found")

	// ErrStoreClosed is returned by all operations after Close.
	ErrStoreClosed = errors.New("store is closed")
)

// Entry is a single key-value pair returned by List.
type Entry struct {
	Key   string
	Value []byte
}

// ListOptions controls a prefix scan.
type ListOptions struct {
	// Limit caps the number of entries returned. Zero or negative means
	// no cap.
	Limit int

	// Cursor resumes a scan after the given key. Empty starts from the
	// beginning of the range. The key named by the cursor is excluded, so
	// passing the Cursor of a previous ListResult continues without
	// overlap even when that key has since been deleted.
	Cursor string

	// Reverse scans in descending key order.
	Reverse bool
}

// ListResult is one page of a prefix scan.
type ListResult struct {
	Entries []Entry

	// Cursor resumes the scan on the next call. Empty when the scan is
	// complete.
	Cursor string

	// Complete is true when no entries remain past this page.
	Complete bool
}

// Store is the key-value port. Implementations must be safe for concurrent
// use.
type Store interface {
	// Get returns the value for key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put writes value under key, overwriting any existing value.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// List scans keys sharing prefix in lexicographic order, descending
	// when opts.Reverse is set.
	List(ctx context.Context, prefix string, opts ListOptions) (ListResult, error)

	// Close releases the store. Operations after Close return
	// ErrStoreClosed.
	Close() error
}
