// FeedForge - DP-1 Feed Operator for Signed Playlists and Channels
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedforge

package auth

import (
	"context"
	"crypto"
	"crypto/ed25519"
	"crypto/rsa"
	"encoding/base64"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"sync"
	"time"

	"github.com/goccy/go-json"
)

// errKeyNotFound means the fetched key set has no entry for the token's kid.
// Distinct from fetch failures so callers can treat the token as invalid
// rather than the endpoint as down.
var errKeyNotFound = errors.New("jwks key not found")

// JWKSCache caches verification keys fetched from a JWKS endpoint, keyed by
// kid. RSA and Ed25519 (OKP) keys are supported; other key types in the set
// are skipped. Thread-safe.
type JWKSCache struct {
	uri        string
	httpClient *http.Client
	ttl        time.Duration

	mu      sync.RWMutex
	keys    map[string]crypto.PublicKey
	fetched time.Time
}

// NewJWKSCache creates a new JWKS cache.
func NewJWKSCache(uri string, client *http.Client, ttl time.Duration) *JWKSCache {
	if client == nil {
		client = &http.Client{
			Timeout: 30 * time.Second,
		}
	}
	if ttl == 0 {
		ttl = 15 * time.Minute
	}
	return &JWKSCache{
		uri:        uri,
		httpClient: client,
		ttl:        ttl,
		keys:       make(map[string]crypto.PublicKey),
	}
}

// GetKey retrieves a key by ID, refreshing the cache if needed.
func (c *JWKSCache) GetKey(ctx context.Context, kid string) (crypto.PublicKey, error) {
	c.mu.RLock()
	key, ok := c.keys[kid]
	expired := time.Since(c.fetched) > c.ttl
	c.mu.RUnlock()

	if ok && !expired {
		return key, nil
	}

	keys, err := c.refreshKeys(ctx)
	if err != nil {
		// A stale key beats no key when the endpoint is down.
		if ok {
			return key, nil
		}
		return nil, err
	}

	key, ok = keys[kid]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errKeyNotFound, kid)
	}

	return key, nil
}

// refreshKeys fetches and caches all usable keys from the JWKS endpoint.
func (c *JWKSCache) refreshKeys(ctx context.Context) (map[string]crypto.PublicKey, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Another goroutine might have refreshed while we waited for the lock.
	if time.Since(c.fetched) < c.ttl && len(c.keys) > 0 {
		return c.keys, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.uri, http.NoBody)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("JWKS fetch failed with status %d", resp.StatusCode)
	}

	var jwks struct {
		Keys []struct {
			Kty string `json:"kty"`
			Kid string `json:"kid"`
			Crv string `json:"crv"`
			X   string `json:"x"`
			N   string `json:"n"`
			E   string `json:"e"`
		} `json:"keys"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&jwks); err != nil {
		return nil, fmt.Errorf("failed to decode JWKS: %w", err)
	}

	c.keys = make(map[string]crypto.PublicKey)

	for _, key := range jwks.Keys {
		switch key.Kty {
		case "RSA":
			nBytes, err := base64URLDecodeJWKS(key.N)
			if err != nil {
				continue
			}
			eBytes, err := base64URLDecodeJWKS(key.E)
			if err != nil {
				continue
			}

			e := 0
			for _, b := range eBytes {
				e = e<<8 + int(b)
			}
			c.keys[key.Kid] = &rsa.PublicKey{
				N: new(big.Int).SetBytes(nBytes),
				E: e,
			}

		case "OKP":
			if key.Crv != "Ed25519" {
				continue
			}
			xBytes, err := base64URLDecodeJWKS(key.X)
			if err != nil || len(xBytes) != ed25519.PublicKeySize {
				continue
			}
			c.keys[key.Kid] = ed25519.PublicKey(xBytes)
		}
	}

	c.fetched = time.Now()
	return c.keys, nil
}

// base64URLDecodeJWKS decodes a base64url encoded string.
func base64URLDecodeJWKS(s string) ([]byte, error) {
	// Add padding if needed
	switch len(s) % 4 {
	case 2:
		s += "=="
	case 3:
		s += "="
	}

	return base64.URLEncoding.DecodeString(s)
}

// URI returns the JWKS endpoint URI.
func (c *JWKSCache) URI() string {
	return c.uri
}
