// FeedForge - DP-1 Feed Operator for Signed Playlists and Channels
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedforge

//go:build integration

package testinfra

import (
	"context"
	"strings"
	"testing"
	"time"

	natsgo "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// TestNATSContainer_Integration tests the full NATS container lifecycle.
// This test requires Docker and is skipped in environments without Docker.
func TestNATSContainer_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	SkipIfNoDocker(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	broker, err := NewNATSContainer(ctx,
		WithStartTimeout(90*time.Second),
	)
	if err != nil {
		t.Fatalf("Failed to create NATS container: %v", err)
	}
	defer CleanupContainer(t, ctx, broker.Container)

	t.Logf("NATS container started at: %s", broker.URL)

	if !strings.HasPrefix(broker.URL, "nats://") {
		t.Errorf("Expected nats:// URL, got %s", broker.URL)
	}

	// Verify a client can connect
	nc, err := natsgo.Connect(broker.URL)
	if err != nil {
		logs, _ := broker.Logs(ctx)
		t.Fatalf("Failed to connect to NATS: %v\nContainer logs:\n%s", err, logs)
	}
	defer nc.Close()

	// JetStream must be enabled; the write queue depends on it
	js, err := jetstream.New(nc)
	if err != nil {
		t.Fatalf("Failed to create JetStream context: %v", err)
	}

	info, err := js.AccountInfo(ctx)
	if err != nil {
		t.Fatalf("JetStream not available on the container: %v", err)
	}
	t.Logf("JetStream account: %d streams, %d consumers", info.Streams, info.Consumers)
}

// TestIsDockerAvailable tests the Docker detection function.
func TestIsDockerAvailable(t *testing.T) {
	// This test always passes - it just reports Docker availability
	available := IsDockerAvailable()
	t.Logf("Docker available: %v", available)
}

// TestContainerOptions tests the option functions.
func TestContainerOptions(t *testing.T) {
	// Test WithNATSImage
	cfg := &natsConfig{}
	WithNATSImage("nats:2.12")(cfg)
	if cfg.image != "nats:2.12" {
		t.Errorf("WithNATSImage: expected nats:2.12, got %s", cfg.image)
	}

	// Test WithStartTimeout
	cfg = &natsConfig{}
	WithStartTimeout(5 * time.Minute)(cfg)
	if cfg.startTimeout != 5*time.Minute {
		t.Errorf("WithStartTimeout: expected 5m, got %v", cfg.startTimeout)
	}
}
