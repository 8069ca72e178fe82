// FeedForge - DP-1 Feed Operator for Signed Playlists and Channels
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedforge

package coordinator

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the write coordinator
var (
	// writesTotal counts coordinated writes by operation, dispatch mode,
	// and outcome.
	writesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "feedforge_writes_total",
		Help: "Total number of coordinated write operations by operation, mode (sync or async), and status",
	}, []string{"operation", "mode", "status"})
)

// RecordWrite increments the write counter.
func RecordWrite(operation, mode, status string) {
	writesTotal.WithLabelValues(operation, mode, status).Inc()
}
