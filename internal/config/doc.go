// FeedForge - DP-1 Feed Operator for Signed Playlists and Channels
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedforge

/*
Package config provides centralized configuration management for
FeedForge.

Configuration merges three layers, each overriding the one before:

  - Struct defaults (defaultConfig)
  - An optional YAML config file (CONFIG_PATH or the default search
    paths: config.yaml, config.yml, /etc/feedforge/config.yaml)
  - Environment variables

Only the environment variables listed below are read; everything else
in the process environment is ignored.

# HTTP Server (ServerConfig)

  - SERVER_HOST: Bind address (default: 0.0.0.0)
  - SERVER_PORT: Listen port (default: 8787)
  - SERVER_READ_TIMEOUT: Request read timeout (default: 30s)
  - SERVER_WRITE_TIMEOUT: Response write timeout (default: 30s)
  - SERVER_IDLE_TIMEOUT: Keep-alive idle timeout (default: 120s)
  - SERVER_SHUTDOWN_TIMEOUT: Graceful drain bound (default: 15s)

# Logging (LoggingConfig)

  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json or console (default: json)

# Storage (StorageConfig)

  - STORAGE_PROVIDER: badger or memory (default: badger)
  - BADGER_PATH: KV store directory (default: ./data/kv)
  - BADGER_GC_INTERVAL: Value-log GC interval (default: 5m)

# Queue (QueueConfig)

  - QUEUE_PROVIDER: jetstream or memory (default: memory)
  - NATS_URL: JetStream endpoint (default: nats://127.0.0.1:4222)
  - NATS_EMBEDDED: Run NATS inside this process (default: false)
  - NATS_STORE_DIR: Embedded JetStream directory (default: ./data/nats)
  - NATS_STREAM: Stream name (default: FEEDFORGE)
  - NATS_SUBJECT: Write-operations subject (default: feedforge.writes)

# Feed (FeedConfig)

  - SELF_HOSTED_DOMAINS: Comma-separated host[:port] list treated as
    served by this operator (default: empty)
  - MIN_DP_VERSION: Minimum accepted dpVersion (default: 1.0.0)
  - FETCH_TIMEOUT: External playlist fetch timeout (default: 10s)
  - FETCH_RATE_PER_SECOND: External fetch pacing (default: 5)
  - FETCH_BURST: External fetch limiter burst (default: 10)

# Signing (SigningConfig)

  - ED25519_PRIVATE_KEY: Playlist signing key as PKCS#8 PEM, OpenSSH
    PEM, or 64-char hex seed (default: empty, writes fail at signing)

# Security (SecurityConfig)

  - API_SECRET: Static bearer secret for write routes (default: empty,
    writes rejected)
  - JWT_PUBLIC_KEY: PEM public key enabling JWT bearer mode
  - JWT_JWKS_URL: JWKS endpoint enabling JWT bearer mode
  - JWT_ISSUER / JWT_AUDIENCE: Claim checks when JWT mode is on
  - RATE_LIMIT_REQUESTS: Per-IP reads per minute (default: 100)
  - RATE_LIMIT_WRITES: Per-IP writes per minute (default: 30)
  - RATE_LIMIT_DISABLED: Turn off rate limiting (default: false)

# Usage

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Configuration error")
	}
	fmt.Println(cfg.Server.Port)

Load validates the merged result and returns an error naming the
offending environment variable, so misconfiguration fails at startup
rather than at first use.
*/
package config
