// FeedForge - DP-1 Feed Operator for Signed Playlists and Channels
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedforge

package auth

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"sync"
)

// MultiAuthenticator tries multiple authenticators in priority order, a
// chain of responsibility where each authenticator runs until one succeeds
// or returns a fatal error.
//
// Error handling:
//   - ErrNoCredentials: try next (no credentials for this method)
//   - ErrAuthenticatorUnavailable: try next (key source down or unconfigured)
//   - ErrInvalidCredentials, ErrExpiredCredentials: stop, the caller
//     presented credentials and they failed
type MultiAuthenticator struct {
	mu             sync.RWMutex
	authenticators []Authenticator
}

// NewMultiAuthenticator creates a multi-authenticator over the given chain,
// sorted by priority (lower number runs first).
func NewMultiAuthenticator(authenticators ...Authenticator) *MultiAuthenticator {
	m := &MultiAuthenticator{
		authenticators: make([]Authenticator, 0, len(authenticators)),
	}
	m.authenticators = append(m.authenticators, authenticators...)
	m.sortByPriority()
	return m
}

// AddAuthenticator adds an authenticator to the chain.
func (m *MultiAuthenticator) AddAuthenticator(auth Authenticator) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.authenticators = append(m.authenticators, auth)
	m.sortByPriority()
}

// Authenticate tries each authenticator in priority order.
func (m *MultiAuthenticator) Authenticate(ctx context.Context, r *http.Request) (*Subject, error) {
	m.mu.RLock()
	authenticators := make([]Authenticator, len(m.authenticators))
	copy(authenticators, m.authenticators)
	m.mu.RUnlock()

	if len(authenticators) == 0 {
		return nil, ErrNoCredentials
	}

	lastErr := ErrNoCredentials

	for _, auth := range authenticators {
		subject, err := auth.Authenticate(ctx, r)
		if err == nil {
			return subject, nil
		}

		lastErr = err

		if shouldTryNext(err) {
			continue
		}

		return nil, err
	}

	return nil, lastErr
}

// Name returns the authenticator name.
func (m *MultiAuthenticator) Name() string {
	return string(AuthModeMulti)
}

// Priority returns the authenticator priority. Multi wraps the others, so
// it always sorts first.
func (m *MultiAuthenticator) Priority() int {
	return 0
}

// shouldTryNext reports whether the chain continues past this error.
func shouldTryNext(err error) bool {
	if errors.Is(err, ErrNoCredentials) {
		return true
	}
	if errors.Is(err, ErrAuthenticatorUnavailable) {
		return true
	}
	// Invalid or expired credentials are fatal.
	return false
}

// sortByPriority sorts authenticators by priority. Caller holds the write
// lock.
func (m *MultiAuthenticator) sortByPriority() {
	sort.Slice(m.authenticators, func(i, j int) bool {
		return m.authenticators[i].Priority() < m.authenticators[j].Priority()
	})
}
