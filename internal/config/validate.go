// FeedForge - DP-1 Feed Operator for Signed Playlists and Channels
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedforge

package config

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// validLogLevels are the zerolog levels FeedForge accepts.
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats are the supported log output formats.
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// Validate checks that the configuration is internally consistent.
// Error messages name the environment variable to fix.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateStorage(); err != nil {
		return err
	}

	if err := c.validateQueue(); err != nil {
		return err
	}

	if err := c.validateFeed(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	return c.validateLogging()
}

// validateServer validates HTTP server configuration
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535")
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server read and write timeouts must be positive")
	}
	return nil
}

// validateStorage validates the KV store selection
func (c *Config) validateStorage() error {
	switch c.Storage.Provider {
	case "badger":
		if c.Storage.Path == "" {
			return fmt.Errorf("BADGER_PATH is required when STORAGE_PROVIDER=badger")
		}
	case "memory":
	default:
		return fmt.Errorf("STORAGE_PROVIDER must be \"badger\" or \"memory\", got %q", c.Storage.Provider)
	}
	return nil
}

// validateQueue validates the write queue selection
func (c *Config) validateQueue() error {
	switch c.Queue.Provider {
	case "jetstream":
		if c.Queue.URL == "" && !c.Queue.Embedded {
			return fmt.Errorf("NATS_URL is required when QUEUE_PROVIDER=jetstream and NATS_EMBEDDED=false")
		}
		if c.Queue.Stream == "" {
			return fmt.Errorf("NATS_STREAM must not be empty when QUEUE_PROVIDER=jetstream")
		}
		if c.Queue.Subject == "" {
			return fmt.Errorf("NATS_SUBJECT must not be empty when QUEUE_PROVIDER=jetstream")
		}
	case "memory":
		if c.Queue.Subject == "" {
			return fmt.Errorf("NATS_SUBJECT must not be empty")
		}
	default:
		return fmt.Errorf("QUEUE_PROVIDER must be \"jetstream\" or \"memory\", got %q", c.Queue.Provider)
	}
	return nil
}

// validateFeed validates DP-1 feed behavior configuration
func (c *Config) validateFeed() error {
	if _, err := semver.NewVersion(c.Feed.MinDPVersion); err != nil {
		return fmt.Errorf("MIN_DP_VERSION %q is not a valid semantic version: %w", c.Feed.MinDPVersion, err)
	}
	if c.Feed.FetchTimeout <= 0 {
		return fmt.Errorf("FETCH_TIMEOUT must be positive")
	}
	if c.Feed.FetchRatePerSecond <= 0 {
		return fmt.Errorf("FETCH_RATE_PER_SECOND must be positive")
	}
	if c.Feed.FetchBurst < 1 {
		return fmt.Errorf("FETCH_BURST must be at least 1")
	}
	return nil
}

// validateSecurity validates write authentication configuration
func (c *Config) validateSecurity() error {
	if c.Security.JWTPublicKey != "" && c.Security.JWTJWKSURL != "" {
		return fmt.Errorf("JWT_PUBLIC_KEY and JWT_JWKS_URL are mutually exclusive; set one")
	}
	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitRequests < 1 {
			return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1")
		}
		if c.Security.RateLimitWrites < 1 {
			return fmt.Errorf("RATE_LIMIT_WRITES must be at least 1")
		}
	}
	return nil
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}
