// FeedForge - DP-1 Feed Operator for Signed Playlists and Channels
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedforge

// Package services wraps FeedForge's long-running components as
// suture.Service implementations for the supervisor tree.
//
// Each wrapper adapts one lifecycle shape to suture's blocking
// Serve(ctx) contract: the HTTP server's ListenAndServe/Shutdown pair,
// the embedded NATS broker's monitor-and-shutdown, and the periodic
// loops (Badger value-log GC, uptime gauge refresh). Wrappers hold
// small interfaces rather than concrete types so tests drive them with
// fakes.
package services
