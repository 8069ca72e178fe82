// FeedForge - DP-1 Feed Operator for Signed Playlists and Channels
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedforge

/*
Package supervisor provides process supervision for FeedForge using suture v4.

Every long-running component runs as a supervised service under a
hierarchical tree, giving Erlang/OTP-style restart behavior with failure
isolation between layers:

	Root ("feedforge")
	├── data-layer
	│   └── BadgerGCService (badger provider only)
	├── messaging-layer
	│   ├── EmbeddedNATSService (NATS_EMBEDDED only)
	│   └── consumer.Service (write-queue drain)
	└── api-layer
	    ├── HTTPServerService
	    └── UptimeService

The layering keeps one component's crash from taking down the others: a
consumer panic restarts the messaging layer while the HTTP server keeps
answering reads from storage, and a wedged GC pass never touches either.

Services implement suture.Service: a blocking Serve(ctx) that returns
when the context is canceled, plus String() for log identification.
Crashes restart with exponential backoff; when a service exceeds the
failure threshold the owning supervisor backs off as a whole. Suture's
own lifecycle events are logged through sutureslog into the process-wide
zerolog stream.

Construction order in main is: build the tree, add services to their
layers, then Serve. The tree does not support dynamic reconfiguration;
FeedForge's service set is fixed at startup by the provider selection in
the configuration.
*/
package supervisor
