// FeedForge - DP-1 Feed Operator for Signed Playlists and Channels
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedforge

/*
Package metrics provides Prometheus metrics collection and export for observability.

This package holds the HTTP-surface and process-level collectors. Subsystem
packages (storage, queue, coordinator, consumer, kv) register their own
collectors next to the code they measure, so the full metric families of a
running operator span several packages; everything lands in the default
registry and is exported together.

# Metrics Endpoint

Metrics are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8787/metrics

# Available Metrics

HTTP metrics:
  - feedforge_http_requests_total: Total HTTP requests (counter)
    Labels: method, endpoint, status_code
  - feedforge_http_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - feedforge_http_active_requests: In-flight requests (gauge)
  - feedforge_http_rate_limit_hits_total: 429 rejections (counter)
    Labels: endpoint
  - feedforge_auth_failures_total: Rejected authentications (counter)
    Labels: reason

Process metrics:
  - feedforge_app_info: Version and Go runtime info (gauge, always 1)
    Labels: version, go_version
  - feedforge_app_uptime_seconds: Seconds since process start (gauge)

Subsystem metrics registered elsewhere:
  - feedforge_writes_total (coordinator): write operations by operation, mode, status
  - feedforge_storage_saves_total (storage): engine saves by entity, status
  - feedforge_resolver_resolutions_total (storage): playlist URL resolutions by mode, status
  - feedforge_queue_publishes_total (queue): queue publishes by status
  - feedforge_consumer_deliveries_total (consumer): queue deliveries by status
  - feedforge_consumer_operations_total (consumer): applied operations by operation, status
  - feedforge_kv_operations_total (kv): key-value store operations

# Usage

Setup in main:

	metrics.Init(version)
	router.Handle("/metrics", promhttp.Handler())

The router middleware records request metrics with the matched route
pattern as the endpoint label:

	metrics.RecordHTTPRequest(r.Method, pattern, strconv.Itoa(status), time.Since(start))

The endpoint label must never carry a raw URL path. Playlist, channel, and
item identifiers in paths would create one label value per resource and
grow the time series set without bound.
*/
package metrics
