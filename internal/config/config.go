// FeedForge - DP-1 Feed Operator for Signed Playlists and Channels
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedforge

package config

import (
	"time"
)

// Config is the root configuration for the FeedForge server, organized
// by component. Values are loaded from defaults, an optional YAML file,
// and environment variables, in that order of priority.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Logging  LoggingConfig  `koanf:"logging"`
	Storage  StorageConfig  `koanf:"storage"`
	Queue    QueueConfig    `koanf:"queue"`
	Feed     FeedConfig     `koanf:"feed"`
	Signing  SigningConfig  `koanf:"signing"`
	Security SecurityConfig `koanf:"security"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the bind address (SERVER_HOST).
	Host string `koanf:"host"`

	// Port is the listen port (SERVER_PORT).
	Port int `koanf:"port"`

	// ReadTimeout bounds reading an entire request, including the body.
	ReadTimeout time.Duration `koanf:"read_timeout"`

	// WriteTimeout bounds writing a response.
	WriteTimeout time.Duration `koanf:"write_timeout"`

	// IdleTimeout closes idle keep-alive connections.
	IdleTimeout time.Duration `koanf:"idle_timeout"`

	// ShutdownTimeout bounds graceful drain on SIGTERM.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// LoggingConfig holds zerolog settings.
type LoggingConfig struct {
	// Level is one of trace, debug, info, warn, error (LOG_LEVEL).
	Level string `koanf:"level"`

	// Format is "json" for machine-readable output or "console" for
	// human-readable development output (LOG_FORMAT).
	Format string `koanf:"format"`
}

// StorageConfig selects and tunes the key-value store backing
// playlists and channels.
type StorageConfig struct {
	// Provider is "badger" for the persistent store or "memory" for
	// an ephemeral in-process store (STORAGE_PROVIDER).
	Provider string `koanf:"provider"`

	// Path is the BadgerDB directory (BADGER_PATH). Ignored for the
	// memory provider.
	Path string `koanf:"path"`

	// GCInterval is how often the Badger value-log garbage collector
	// runs (BADGER_GC_INTERVAL).
	GCInterval time.Duration `koanf:"gc_interval"`
}

// QueueConfig selects and tunes the write-operation queue.
type QueueConfig struct {
	// Provider is "jetstream" for NATS JetStream or "memory" for the
	// in-process channel queue (QUEUE_PROVIDER).
	Provider string `koanf:"provider"`

	// URL is the NATS endpoint (NATS_URL). Ignored when Embedded is
	// true, in which case the embedded server's client URL is used.
	URL string `koanf:"url"`

	// Embedded runs a NATS server inside the FeedForge process
	// (NATS_EMBEDDED).
	Embedded bool `koanf:"embedded"`

	// StoreDir is the embedded server's JetStream storage directory
	// (NATS_STORE_DIR).
	StoreDir string `koanf:"store_dir"`

	// Stream is the JetStream stream name (NATS_STREAM).
	Stream string `koanf:"stream"`

	// Subject is the write-operations subject (NATS_SUBJECT).
	Subject string `koanf:"subject"`
}

// FeedConfig holds DP-1 feed behavior settings.
type FeedConfig struct {
	// SelfHostedDomains lists host or host:port entries served by this
	// operator (SELF_HOSTED_DOMAINS, comma-separated). Playlist URLs on
	// these hosts resolve against local storage instead of HTTP.
	SelfHostedDomains []string `koanf:"self_hosted_domains"`

	// MinDPVersion is the minimum dpVersion accepted on ingest
	// (MIN_DP_VERSION).
	MinDPVersion string `koanf:"min_dp_version"`

	// FetchTimeout bounds a single external playlist fetch
	// (FETCH_TIMEOUT).
	FetchTimeout time.Duration `koanf:"fetch_timeout"`

	// FetchRatePerSecond paces external playlist fetches
	// (FETCH_RATE_PER_SECOND).
	FetchRatePerSecond float64 `koanf:"fetch_rate_per_second"`

	// FetchBurst is the limiter burst for external fetches
	// (FETCH_BURST).
	FetchBurst int `koanf:"fetch_burst"`
}

// SigningConfig holds the operator's playlist signing identity.
type SigningConfig struct {
	// Ed25519PrivateKey is the signing key (ED25519_PRIVATE_KEY) as a
	// PKCS#8 PEM block, an OpenSSH private key PEM, or a 64-char hex
	// seed. Empty is allowed so read-only deployments start, but every
	// write fails at signing until it is set.
	Ed25519PrivateKey string `koanf:"ed25519_private_key"`
}

// SecurityConfig holds write authentication and rate limit settings.
type SecurityConfig struct {
	// APISecret is the static bearer secret for write routes
	// (API_SECRET). Empty rejects all writes until configured.
	APISecret string `koanf:"api_secret"`

	// JWTPublicKey is a PEM-encoded Ed25519 or RSA public key enabling
	// JWT bearer authentication (JWT_PUBLIC_KEY).
	JWTPublicKey string `koanf:"jwt_public_key"`

	// JWTJWKSURL is a JWKS endpoint enabling JWT bearer authentication
	// with key rotation (JWT_JWKS_URL).
	JWTJWKSURL string `koanf:"jwt_jwks_url"`

	// JWTIssuer, when set, must match the token's iss claim
	// (JWT_ISSUER).
	JWTIssuer string `koanf:"jwt_issuer"`

	// JWTAudience, when set, must appear in the token's aud claim
	// (JWT_AUDIENCE).
	JWTAudience string `koanf:"jwt_audience"`

	// RateLimitRequests is the per-IP request budget per minute for
	// read routes (RATE_LIMIT_REQUESTS).
	RateLimitRequests int `koanf:"rate_limit_requests"`

	// RateLimitWrites is the per-IP request budget per minute for
	// write routes (RATE_LIMIT_WRITES).
	RateLimitWrites int `koanf:"rate_limit_writes"`

	// RateLimitDisabled turns rate limiting off entirely, for tests
	// and trusted private deployments (RATE_LIMIT_DISABLED).
	RateLimitDisabled bool `koanf:"rate_limit_disabled"`
}

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by the config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8787,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 15 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Storage: StorageConfig{
			Provider:   "badger",
			Path:       "./data/kv",
			GCInterval: 5 * time.Minute,
		},
		Queue: QueueConfig{
			Provider: "memory",
			URL:      "nats://127.0.0.1:4222",
			Embedded: false,
			StoreDir: "./data/nats",
			Stream:   "FEEDFORGE",
			Subject:  "feedforge.writes",
		},
		Feed: FeedConfig{
			SelfHostedDomains:  []string{},
			MinDPVersion:       "1.0.0",
			FetchTimeout:       10 * time.Second,
			FetchRatePerSecond: 5,
			FetchBurst:         10,
		},
		Signing: SigningConfig{
			Ed25519PrivateKey: "",
		},
		Security: SecurityConfig{
			APISecret:         "",
			JWTPublicKey:      "",
			JWTJWKSURL:        "",
			JWTIssuer:         "",
			JWTAudience:       "",
			RateLimitRequests: 100,
			RateLimitWrites:   30,
			RateLimitDisabled: false,
		},
	}
}
