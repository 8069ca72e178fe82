// FeedForge - DP-1 Feed Operator for Signed Playlists and Channels
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedforge

// Package testinfra provides container-backed infrastructure for integration tests.
//
// This package uses testcontainers-go to run a real NATS broker with
// JetStream enabled, so queue integration tests exercise actual broker
// behavior instead of mocks.
//
// # NATS Container
//
// The NATSContainer provides a disposable JetStream broker:
//
//	func TestQueueRoundTrip(t *testing.T) {
//	    ctx := context.Background()
//	    broker, err := testinfra.NewNATSContainer(ctx)
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    defer broker.Terminate(ctx)
//
//	    pub, err := queue.NewNATSPublisher(
//	        queue.DefaultPublisherConfig(broker.URL, "feedforge.writes"),
//	        queue.NewLoggerAdapter(),
//	    )
//	    // Publish and consume against the real broker
//	    // ...
//	}
//
// # Benefits Over Mocks
//
// JetStream semantics are hard to fake. Deduplication windows, durable
// consumers, ack deadlines, and redelivery all behave differently from an
// in-process channel, and a mock that models them drifts out of sync with
// the broker. Running the real server validates the queue layer against
// the behavior production sees.
//
// # CI Considerations
//
// These tests require Docker and are built only with the integration tag:
//
//	go test -tags integration ./internal/testinfra/... ./internal/queue/...
//
// They skip gracefully when Docker is unavailable. The first run may need
// to download the broker image; subsequent runs use the cached image.
package testinfra
