// FeedForge - DP-1 Feed Operator for Signed Playlists and Channels
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedforge

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/feedforge/internal/consumer"
	"github.com/tomtom215/feedforge/internal/coordinator"
	"github.com/tomtom215/feedforge/internal/models"
	"github.com/tomtom215/feedforge/internal/storage"
)

// Handler bundles the dependencies the HTTP handlers need.
type Handler struct {
	engine       *storage.Engine
	coordinator  *coordinator.Coordinator
	processor    *consumer.Processor
	version      string
	minDPVersion string
}

// NewHandler creates the handler set. minDPVersion gates playlist
// ingest; empty falls back to the package default.
func NewHandler(engine *storage.Engine, coord *coordinator.Coordinator, processor *consumer.Processor, version, minDPVersion string) *Handler {
	return &Handler{
		engine:       engine,
		coordinator:  coord,
		processor:    processor,
		version:      version,
		minDPVersion: minDPVersion,
	}
}

// Health answers liveness probes.
//
// @Summary Health check
// @Description Reports service liveness and version
// @Tags Meta
// @Produce json
// @Success 200 {object} models.HealthResponse
// @Router /api/v1/health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, models.HealthResponse{
		Status:  "healthy",
		Version: h.version,
	})
}

// Root describes the API surface.
//
// @Summary API info
// @Description Lists the service name, version, and top-level endpoints
// @Tags Meta
// @Produce json
// @Success 200 {object} models.InfoResponse
// @Router /api/v1/ [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, models.InfoResponse{
		Name:        "FeedForge",
		Version:     h.version,
		Description: "DP-1 feed operator serving signed playlists and channels",
		Endpoints: map[string]string{
			"health":         "/api/v1/health",
			"playlists":      "/api/v1/playlists",
			"playlist_items": "/api/v1/playlist-items",
			"channels":       "/api/v1/channels",
			"queues":         "/api/v1/queues",
			"metrics":        "/metrics",
			"swagger":        "/swagger/index.html",
		},
	})
}

// resolveChannelID turns a ?channel= value into a channel ID. Slugs
// look up the channel record; a missing channel resolves to no ID so
// the caller lists an empty page, matching what a UUID filter over an
// absent channel would scan.
func (h *Handler) resolveChannelID(ctx context.Context, identifier string) (string, bool, error) {
	if isUUIDv4(identifier) {
		return identifier, true, nil
	}

	channel, err := h.engine.GetChannel(ctx, identifier)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return channel.ID, true, nil
}
