// FeedForge - DP-1 Feed Operator for Signed Playlists and Channels
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedforge

package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/feedforge/internal/models"
	"github.com/tomtom215/feedforge/internal/validation"
)

// selfHostedPath extracts the playlist identifier from a self-hosted
// playlist URL. Anything else on a self-hosted domain is rejected
// rather than fetched, so the operator never issues HTTP requests to
// itself.
var selfHostedPath = regexp.MustCompile(`^/api/v1/playlists/([A-Za-z0-9_-]+)$`)

// maxFetchBytes caps how much of an external playlist response is read.
const maxFetchBytes = 10 << 20

// ResolverConfig controls how channel playlist URLs are resolved.
type ResolverConfig struct {
	// SelfHostedDomains lists hosts served by this operator. Entries
	// with a port match host:port exactly; entries without match the
	// hostname on any port.
	SelfHostedDomains []string

	// FetchTimeout bounds a single external playlist fetch.
	FetchTimeout time.Duration

	// RequestsPerSecond paces external fetches across all saves.
	RequestsPerSecond float64

	// FetchBurst is the limiter burst for external fetches.
	FetchBurst int
}

// DefaultResolverConfig returns resolver settings suitable for a single
// operator node.
func DefaultResolverConfig() ResolverConfig {
	return ResolverConfig{
		FetchTimeout:      10 * time.Second,
		RequestsPerSecond: 5,
		FetchBurst:        10,
	}
}

// Resolution is the outcome of resolving one playlist URL.
type Resolution struct {
	// ID is the playlist's UUID, whether it was found locally or
	// fetched.
	ID string

	// Playlist is the full document backing the resolution.
	Playlist *models.Playlist

	// External reports whether the playlist came from another operator
	// and needs to be materialized locally.
	External bool
}

// lookupFunc loads a locally stored playlist by UUID or slug.
type lookupFunc func(ctx context.Context, identifier string) (*models.Playlist, error)

// Resolver maps playlist URLs to stored or fetched playlist documents.
type Resolver struct {
	domains []string
	lookup  lookupFunc
	client  *http.Client
	limiter *rate.Limiter
}

func newResolver(cfg ResolverConfig, lookup lookupFunc) *Resolver {
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = DefaultResolverConfig().FetchTimeout
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = DefaultResolverConfig().RequestsPerSecond
	}
	if cfg.FetchBurst <= 0 {
		cfg.FetchBurst = DefaultResolverConfig().FetchBurst
	}

	return &Resolver{
		domains: cfg.SelfHostedDomains,
		lookup:  lookup,
		client: &http.Client{
			Timeout: cfg.FetchTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.FetchBurst),
	}
}

// Resolve classifies a playlist URL as self-hosted or external and
// returns the playlist document behind it. Self-hosted URLs are served
// from the local store without any HTTP traffic; external URLs are
// fetched, decoded, and schema-validated.
func (r *Resolver) Resolve(ctx context.Context, rawURL string) (*Resolution, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse playlist URL: %w", err)
	}

	if r.isSelfHosted(u) {
		return r.resolveLocal(ctx, u)
	}
	return r.fetchExternal(ctx, rawURL)
}

func (r *Resolver) isSelfHosted(u *url.URL) bool {
	for _, domain := range r.domains {
		if strings.Contains(domain, ":") {
			if strings.EqualFold(domain, u.Host) {
				return true
			}
			continue
		}
		if strings.EqualFold(domain, u.Hostname()) {
			return true
		}
	}
	return false
}

func (r *Resolver) resolveLocal(ctx context.Context, u *url.URL) (*Resolution, error) {
	match := selfHostedPath.FindStringSubmatch(u.Path)
	if match == nil {
		RecordResolution("self_hosted", "invalid_url")
		return nil, fmt.Errorf("%w: %s", ErrInvalidSelfHostedURL, u.String())
	}

	playlist, err := r.lookup(ctx, match[1])
	if errors.Is(err, ErrNotFound) {
		RecordResolution("self_hosted", "missing")
		return nil, fmt.Errorf("%w: %s", ErrSelfHostedPlaylistMissing, match[1])
	}
	if err != nil {
		RecordResolution("self_hosted", "error")
		return nil, fmt.Errorf("load playlist %s: %w", match[1], err)
	}

	RecordResolution("self_hosted", "ok")
	return &Resolution{ID: playlist.ID, Playlist: playlist, External: false}, nil
}

func (r *Resolver) fetchExternal(ctx context.Context, rawURL string) (*Resolution, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		RecordResolution("external", "request_creation")
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		RecordResolution("external", "network")
		return nil, fmt.Errorf("fetch playlist: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		RecordResolution("external", "http_status")
		return nil, fmt.Errorf("fetch playlist failed with status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes))
	if err != nil {
		RecordResolution("external", "read")
		return nil, fmt.Errorf("read playlist body: %w", err)
	}

	var playlist models.Playlist
	if err := json.Unmarshal(body, &playlist); err != nil {
		RecordResolution("external", "decode")
		return nil, fmt.Errorf("decode playlist: %w", err)
	}

	if verr := validation.ValidateStruct(&playlist); verr != nil {
		RecordResolution("external", "schema")
		return nil, fmt.Errorf("fetched playlist failed validation: %w", verr)
	}

	RecordResolution("external", "ok")
	return &Resolution{ID: playlist.ID, Playlist: &playlist, External: true}, nil
}
