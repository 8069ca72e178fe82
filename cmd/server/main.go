// FeedForge - DP-1 Feed Operator for Signed Playlists and Channels
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedforge

// Package main is the entry point for the FeedForge server.
//
// FeedForge is a self-hosted DP-1 feed operator: it stores, signs, and
// serves playlists and channels for blockchain-native digital art
// displays. Every write is validated, canonicalized, signed with the
// operator's Ed25519 key, and applied through a durable write queue;
// reads serve the signed documents directly from the key-value store.
//
// # Application Architecture
//
// The process runs under a Suture v4 supervision tree:
//
//	RootSupervisor ("feedforge")
//	├── DataSupervisor ("data-layer")
//	│   └── Badger value-log GC (persistent storage only)
//	├── MessagingSupervisor ("messaging-layer")
//	│   ├── Embedded NATS server (NATS_EMBEDDED=true)
//	│   └── Write-queue consumer
//	└── APISupervisor ("api-layer")
//	    ├── HTTP server (REST API with Swagger documentation)
//	    └── Uptime metric ticker
//
// Component initialization order:
//
//  1. Configuration: Koanf v2 with environment variables and config files
//  2. Storage: BadgerDB key-value store (or in-memory for ephemeral runs)
//  3. Queue: NATS JetStream write queue (or in-process channel queue)
//  4. Signing: Ed25519 playlist signer from the operator key
//  5. HTTP server: REST API with bearer-gated writes and public reads
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins): environment variables, config.yaml, built-in defaults.
//
// Minimal production environment:
//
//	export API_SECRET=$(openssl rand -hex 32)
//	export ED25519_PRIVATE_KEY=$(openssl rand -hex 32)
//	export SELF_HOSTED_DOMAINS=feed.example.com
//	export STORAGE_PROVIDER=badger
//	export BADGER_PATH=/data/kv
//	export QUEUE_PROVIDER=jetstream
//	export NATS_EMBEDDED=true
//	export NATS_STORE_DIR=/data/nats
//	./feedforge
//
// Ephemeral development run:
//
//	export API_SECRET=dev-secret
//	export ED25519_PRIVATE_KEY=$(openssl rand -hex 32)
//	export STORAGE_PROVIDER=memory
//	export QUEUE_PROVIDER=memory
//	export LOG_FORMAT=console
//	./feedforge
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM: the HTTP
// listener drains in-flight requests, the queue consumer finishes
// buffered deliveries, and the embedded broker flushes JetStream state,
// each bounded by the supervisor's shutdown timeout.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	natsgo "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	_ "github.com/tomtom215/feedforge/docs" // generated swagger spec
	"github.com/tomtom215/feedforge/internal/api"
	"github.com/tomtom215/feedforge/internal/auth"
	"github.com/tomtom215/feedforge/internal/canonical"
	"github.com/tomtom215/feedforge/internal/config"
	"github.com/tomtom215/feedforge/internal/consumer"
	"github.com/tomtom215/feedforge/internal/coordinator"
	"github.com/tomtom215/feedforge/internal/kv"
	"github.com/tomtom215/feedforge/internal/logging"
	"github.com/tomtom215/feedforge/internal/metrics"
	"github.com/tomtom215/feedforge/internal/queue"
	"github.com/tomtom215/feedforge/internal/storage"
	"github.com/tomtom215/feedforge/internal/supervisor"
	"github.com/tomtom215/feedforge/internal/supervisor/services"
)

// version is stamped at build time:
//
//	go build -ldflags "-X main.version=v1.2.3" ./cmd/server
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	logging.Info().
		Str("version", version).
		Str("storage_provider", cfg.Storage.Provider).
		Str("queue_provider", cfg.Queue.Provider).
		Int("self_hosted_domains", len(cfg.Feed.SelfHostedDomains)).
		Msg("Starting FeedForge")

	metrics.Init(version)

	// Root context canceled by SIGINT/SIGTERM.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})

	// === STORAGE LAYER ===

	store, badgerStore, err := openStore(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open key-value store")
	}
	defer func() {
		if err := store.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing key-value store")
		}
	}()

	if badgerStore != nil {
		tree.AddDataService(services.NewBadgerGCService(badgerStore, cfg.Storage.GCInterval))
		logging.Info().
			Str("path", cfg.Storage.Path).
			Dur("gc_interval", cfg.Storage.GCInterval).
			Msg("BadgerDB store opened")
	} else {
		logging.Warn().Msg("In-memory store selected; data is lost on restart")
	}

	// === MESSAGING LAYER ===

	// The embedded broker starts here rather than under the supervisor
	// because the queue wiring below needs its client URL. The
	// supervisor still owns its lifecycle through the monitor service.
	natsURL := cfg.Queue.URL
	var embedded *queue.EmbeddedServer
	if cfg.Queue.Embedded {
		embedded, err = queue.NewEmbeddedServer(queue.DefaultServerConfig(cfg.Queue.StoreDir))
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to start embedded NATS server")
		}
		natsURL = embedded.ClientURL()
		tree.AddMessagingService(services.NewEmbeddedNATSService(embedded, 5*time.Second, 10*time.Second))
		logging.Info().Str("url", natsURL).Msg("Embedded NATS server started")
	}

	publisher, subscriber, err := openQueue(ctx, cfg, natsURL)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open write queue")
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing queue publisher")
		}
		if err := subscriber.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing queue subscriber")
		}
	}()

	// === WRITE PIPELINE ===

	if cfg.Signing.Ed25519PrivateKey == "" {
		logging.Warn().Msg("ED25519_PRIVATE_KEY is not set; reads work but every write will fail at signing")
	}
	signer := canonical.NewSigner(cfg.Signing.Ed25519PrivateKey)

	engine := storage.NewEngine(store, storage.ResolverConfig{
		SelfHostedDomains: cfg.Feed.SelfHostedDomains,
		FetchTimeout:      cfg.Feed.FetchTimeout,
		RequestsPerSecond: cfg.Feed.FetchRatePerSecond,
		FetchBurst:        cfg.Feed.FetchBurst,
	})

	coord := coordinator.New(engine, signer, publisher)
	processor := consumer.NewProcessor(engine)
	tree.AddMessagingService(consumer.NewService(subscriber, processor))

	// === API LAYER ===

	authenticator, err := buildAuthenticator(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to configure write authentication")
	}
	if cfg.Security.APISecret == "" {
		logging.Warn().Msg("API_SECRET is not set; static bearer writes are disabled")
	}

	handler := api.NewHandler(engine, coord, processor, version, cfg.Feed.MinDPVersion)
	chiMW := api.NewChiMiddleware(&api.ChiMiddlewareConfig{
		RateLimitRequests: cfg.Security.RateLimitRequests,
		RateLimitWrites:   cfg.Security.RateLimitWrites,
		RateLimitWindow:   time.Minute,
		RateLimitDisabled: cfg.Security.RateLimitDisabled,
	})
	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (RATE_LIMIT_DISABLED=true)")
	}

	router := api.NewRouter(handler, chiMW, authenticator)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	tree.AddAPIService(services.NewUptimeService(15 * time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	// === START SUPERVISOR TREE ===

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("FeedForge stopped gracefully")
}

// openStore builds the configured key-value store. The second return is
// non-nil only for the Badger provider, whose value-log GC needs
// supervising.
func openStore(cfg *config.Config) (kv.Store, *kv.BadgerStore, error) {
	switch cfg.Storage.Provider {
	case "badger":
		badgerStore, err := kv.NewBadgerStore(kv.DefaultBadgerConfig(cfg.Storage.Path))
		if err != nil {
			return nil, nil, fmt.Errorf("open badger at %s: %w", cfg.Storage.Path, err)
		}
		return badgerStore, badgerStore, nil

	case "memory":
		return kv.NewMemoryStore(), nil, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage provider %q", cfg.Storage.Provider)
	}
}

// openQueue builds the configured write queue. For JetStream the stream
// is created or updated first so the publisher and subscriber bind to
// known configuration.
func openQueue(ctx context.Context, cfg *config.Config, natsURL string) (queue.Publisher, queue.Subscriber, error) {
	wmLogger := queue.NewLoggerAdapter()

	switch cfg.Queue.Provider {
	case "jetstream":
		if err := ensureStream(ctx, cfg, natsURL); err != nil {
			return nil, nil, err
		}

		publisher, err := queue.NewNATSPublisher(queue.DefaultPublisherConfig(natsURL, cfg.Queue.Subject), wmLogger)
		if err != nil {
			return nil, nil, fmt.Errorf("create publisher: %w", err)
		}
		publisher.SetCircuitBreaker(queue.NewCircuitBreaker(queue.DefaultCircuitBreakerConfig()))

		subscriber, err := queue.NewNATSSubscriber(
			queue.DefaultSubscriberConfig(natsURL, cfg.Queue.Subject, cfg.Queue.Stream), wmLogger)
		if err != nil {
			return nil, nil, fmt.Errorf("create subscriber: %w", err)
		}

		logging.Info().
			Str("url", natsURL).
			Str("stream", cfg.Queue.Stream).
			Str("subject", cfg.Queue.Subject).
			Msg("JetStream write queue ready")
		return publisher, subscriber, nil

	case "memory":
		mq := queue.NewMemoryQueue(cfg.Queue.Subject, wmLogger)
		logging.Info().Str("subject", cfg.Queue.Subject).Msg("In-process write queue ready")
		return mq, mq, nil

	default:
		return nil, nil, fmt.Errorf("unknown queue provider %q", cfg.Queue.Provider)
	}
}

// ensureStream creates or updates the write-queue stream over a
// short-lived connection. The publisher and subscriber dial their own.
func ensureStream(ctx context.Context, cfg *config.Config, natsURL string) error {
	nc, err := natsgo.Connect(natsURL,
		natsgo.RetryOnFailedConnect(true),
		natsgo.MaxReconnects(5),
		natsgo.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return fmt.Errorf("connect to NATS at %s: %w", natsURL, err)
	}
	defer nc.Close()

	js, err := jetstream.New(nc)
	if err != nil {
		return fmt.Errorf("create JetStream context: %w", err)
	}

	initializer, err := queue.NewStreamInitializer(js, queue.DefaultStreamConfig(cfg.Queue.Stream, cfg.Queue.Subject))
	if err != nil {
		return fmt.Errorf("configure stream: %w", err)
	}

	initCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if _, err := initializer.EnsureStream(initCtx); err != nil {
		return fmt.Errorf("ensure stream: %w", err)
	}
	return nil
}

// buildAuthenticator assembles the write-route authenticator: the
// static bearer secret, plus JWT validation when a public key or JWKS
// endpoint is configured.
func buildAuthenticator(cfg *config.Config) (auth.Authenticator, error) {
	authenticators := []auth.Authenticator{
		auth.NewSecretAuthenticator(cfg.Security.APISecret),
	}

	if cfg.Security.JWTPublicKey != "" || cfg.Security.JWTJWKSURL != "" {
		jwtAuth, err := auth.NewJWTAuthenticator(auth.JWTConfig{
			PublicKeyPEM: cfg.Security.JWTPublicKey,
			JWKSURL:      cfg.Security.JWTJWKSURL,
			Issuer:       cfg.Security.JWTIssuer,
			Audience:     cfg.Security.JWTAudience,
		})
		if err != nil {
			return nil, err
		}
		authenticators = append(authenticators, jwtAuth)
		logging.Info().
			Bool("jwks", cfg.Security.JWTJWKSURL != "").
			Msg("JWT write authentication enabled")
	}

	return auth.NewMultiAuthenticator(authenticators...), nil
}
