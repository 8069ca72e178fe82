// FeedForge - DP-1 Feed Operator for Signed Playlists and Channels
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedforge

package queue

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for queue operations
var (
	// queuePublishesTotal counts publish attempts by outcome.
	queuePublishesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "feedforge_queue_publishes_total",
		Help: "Total number of queue publish attempts by status",
	}, []string{"status"})

	// queueBreakerTransitionsTotal counts circuit breaker state changes.
	queueBreakerTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "feedforge_queue_breaker_transitions_total",
		Help: "Total number of publish circuit breaker transitions by new state",
	}, []string{"state"})
)

// RecordPublish increments the publish counter.
func RecordPublish(status string) {
	queuePublishesTotal.WithLabelValues(status).Inc()
}

// RecordBreakerState increments the breaker transition counter.
func RecordBreakerState(state string) {
	queueBreakerTransitionsTotal.WithLabelValues(state).Inc()
}
