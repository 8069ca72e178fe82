// FeedForge - DP-1 Feed Operator for Signed Playlists and Channels
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedforge

package consumer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the write-queue consumer
var (
	// consumedTotal counts queue deliveries by outcome.
	consumedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "feedforge_consumer_deliveries_total",
		Help: "Total number of write queue deliveries by outcome (ok, error, parse_error, invalid)",
	}, []string{"status"})

	// processedTotal counts applied operations by operation and outcome.
	processedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "feedforge_consumer_operations_total",
		Help: "Total number of write operations applied by operation and status (ok, error, skipped)",
	}, []string{"operation", "status"})
)

// RecordConsumed increments the delivery counter.
func RecordConsumed(status string) {
	consumedTotal.WithLabelValues(status).Inc()
}

// RecordProcessed increments the operation counter.
func RecordProcessed(operation, status string) {
	processedTotal.WithLabelValues(operation, status).Inc()
}
