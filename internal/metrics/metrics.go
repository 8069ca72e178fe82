// FeedForge - DP-1 Feed Operator for Signed Playlists and Channels
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedforge

package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for the HTTP surface and process-level state.
// Storage, queue, and write-path packages register their own collectors
// next to the code they measure; this package holds what the router
// middleware and the process itself report.

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedforge_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "feedforge_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	HTTPActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "feedforge_http_active_requests",
			Help: "Current number of in-flight HTTP requests",
		},
	)

	HTTPRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedforge_http_rate_limit_hits_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
		[]string{"endpoint"},
	)

	AuthFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedforge_auth_failures_total",
			Help: "Total number of rejected authentications",
		},
		[]string{"reason"}, // "missing_credentials", "invalid_credentials", "expired_token", "unavailable"
	)

	// Process metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "feedforge_app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "feedforge_app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

var startTime = time.Now()

// Init publishes build information and stamps the process start time.
// Call once from main before serving traffic.
func Init(version string) {
	AppInfo.WithLabelValues(version, runtime.Version()).Set(1)
	startTime = time.Now()
	AppUptime.Set(0)
}

// RecordHTTPRequest records one completed request. The endpoint label must
// be the route pattern, not the raw path, or playlist and item identifiers
// explode the label cardinality.
func RecordHTTPRequest(method, endpoint, statusCode string, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks in-flight requests.
func TrackActiveRequest(inc bool) {
	if inc {
		HTTPActiveRequests.Inc()
	} else {
		HTTPActiveRequests.Dec()
	}
}

// RecordRateLimitHit records a request rejected with 429.
func RecordRateLimitHit(endpoint string) {
	HTTPRateLimitHits.WithLabelValues(endpoint).Inc()
}

// RecordAuthFailure records a rejected authentication attempt.
func RecordAuthFailure(reason string) {
	AuthFailures.WithLabelValues(reason).Inc()
}

// UpdateUptime refreshes the uptime gauge. The supervisor calls this on a
// ticker so the value moves without a scrape-time collector.
func UpdateUptime() {
	AppUptime.Set(time.Since(startTime).Seconds())
}
