// FeedForge - DP-1 Feed Operator for Signed Playlists and Channels
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedforge

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/feedforge/config.yaml",
	"/etc/feedforge/config.yml",
}

// ConfigPathEnvVar overrides the config file search path.
const ConfigPathEnvVar = "CONFIG_PATH"

// Load builds the effective configuration from three layers:
//
//  1. Struct defaults (defaultConfig)
//  2. An optional YAML config file (findConfigFile)
//  3. Environment variables (highest priority)
//
// The merged result is unmarshaled into Config and validated.
func Load() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: config file (optional)
	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: environment variables. envTransformFunc maps the flat
	// names (API_SECRET, NATS_URL, ...) onto koanf paths and drops
	// everything it does not recognize.
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Comma-separated env strings become slices for known slice fields.
	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first config file that exists, checking
// the CONFIG_PATH override before the default search paths. Empty
// string means no file, which is a normal env-only deployment.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// envKeyMap maps lowercased environment variable names onto koanf
// config paths. Variables not listed here are ignored, so unrelated
// process env never leaks into the configuration.
var envKeyMap = map[string]string{
	// Server
	"server_host":             "server.host",
	"server_port":             "server.port",
	"server_read_timeout":     "server.read_timeout",
	"server_write_timeout":    "server.write_timeout",
	"server_idle_timeout":     "server.idle_timeout",
	"server_shutdown_timeout": "server.shutdown_timeout",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",

	// Storage
	"storage_provider":   "storage.provider",
	"badger_path":        "storage.path",
	"badger_gc_interval": "storage.gc_interval",

	// Queue
	"queue_provider": "queue.provider",
	"nats_url":       "queue.url",
	"nats_embedded":  "queue.embedded",
	"nats_store_dir": "queue.store_dir",
	"nats_stream":    "queue.stream",
	"nats_subject":   "queue.subject",

	// Feed
	"self_hosted_domains":   "feed.self_hosted_domains",
	"min_dp_version":        "feed.min_dp_version",
	"fetch_timeout":         "feed.fetch_timeout",
	"fetch_rate_per_second": "feed.fetch_rate_per_second",
	"fetch_burst":           "feed.fetch_burst",

	// Signing
	"ed25519_private_key": "signing.ed25519_private_key",

	// Security
	"api_secret":          "security.api_secret",
	"jwt_public_key":      "security.jwt_public_key",
	"jwt_jwks_url":        "security.jwt_jwks_url",
	"jwt_issuer":          "security.jwt_issuer",
	"jwt_audience":        "security.jwt_audience",
	"rate_limit_requests": "security.rate_limit_requests",
	"rate_limit_writes":   "security.rate_limit_writes",
	"rate_limit_disabled": "security.rate_limit_disabled",
}

// envTransformFunc maps an environment variable name to its koanf
// path. Returning "" tells the env provider to skip the variable.
func envTransformFunc(key string) string {
	return envKeyMap[strings.ToLower(key)]
}

// sliceConfigPaths lists config paths parsed as comma-separated slices
// when they arrive as strings from the environment.
var sliceConfigPaths = []string{
	"feed.self_hosted_domains",
}

// processSliceFields converts comma-separated string values to slices
// for known slice fields. YAML files provide real slices and are left
// untouched; only env-sourced strings need splitting.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// WatchConfigFile invokes callback whenever the config file at path
// changes. FeedForge treats config as immutable at runtime, so the
// usual callback logs that a restart is needed to apply the change.
func WatchConfigFile(path string, callback func()) error {
	provider := file.Provider(path)

	return provider.Watch(func(event interface{}, err error) {
		if err != nil {
			return
		}
		callback()
	})
}
