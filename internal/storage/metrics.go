// FeedForge - DP-1 Feed Operator for Signed Playlists and Channels
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedforge

package storage

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the storage engine
var (
	// storageSavesTotal counts save and delete outcomes by entity.
	storageSavesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "feedforge_storage_saves_total",
		Help: "Total number of storage engine saves and deletes by entity and status",
	}, []string{"entity", "status"})

	// resolverResolutionsTotal counts playlist URL resolutions by mode
	// and outcome.
	resolverResolutionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "feedforge_resolver_resolutions_total",
		Help: "Total number of playlist URL resolutions by mode (self_hosted or external) and status",
	}, []string{"mode", "status"})
)

// RecordSave increments the save counter.
func RecordSave(entity, status string) {
	storageSavesTotal.WithLabelValues(entity, status).Inc()
}

// RecordResolution increments the resolution counter.
func RecordResolution(mode, status string) {
	resolverResolutionsTotal.WithLabelValues(mode, status).Inc()
}
