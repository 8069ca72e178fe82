// FeedForge - DP-1 Feed Operator for Signed Playlists and Channels
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedforge

package kv

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for KV store operations
var (
	// kvOperationsTotal counts store operations by type and outcome.
	kvOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "feedforge_kv_operations_total",
		Help: "Total number of KV store operations by operation and status",
	}, []string{"operation", "status"})

	// kvGCRunsTotal counts completed value-log GC passes.
	kvGCRunsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "feedforge_kv_gc_runs_total",
		Help: "Total number of BadgerDB value-log GC passes",
	})

	// kvDBSizeBytes is the current BadgerDB size by segment.
	kvDBSizeBytes = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "feedforge_kv_db_size_bytes",
		Help: "BadgerDB size in bytes by segment (lsm or vlog)",
	}, []string{"segment"})
)

// RecordOperation increments the operation counter.
func RecordOperation(operation, status string) {
	kvOperationsTotal.WithLabelValues(operation, status).Inc()
}

// RecordGCRun increments the GC pass counter.
func RecordGCRun() {
	kvGCRunsTotal.Inc()
}

// UpdateDBSize records the current database size.
func UpdateDBSize(lsm, vlog int64) {
	kvDBSizeBytes.WithLabelValues("lsm").Set(float64(lsm))
	kvDBSizeBytes.WithLabelValues("vlog").Set(float64(vlog))
}
