// FeedForge - DP-1 Feed Operator for Signed Playlists and Channels
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedforge

// Package logging provides centralized zerolog-based logging for FeedForge.
//
// All packages log through the package-level functions here so the process
// carries a single configuration:
//
//   - Zero-allocation structured logging
//   - JSON output for production, console output for development
//   - Request-ID propagation through context
//   - Global configuration from the config package at startup
//
// # Quick Start
//
//	import "github.com/tomtom215/feedforge/internal/logging"
//
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	logging.Info().Str("playlist_id", id).Msg("playlist saved")
//	logging.Error().Err(err).Msg("queue publish failed")
//
// Always terminate log chains with .Msg() or .Send(); an unterminated chain
// is never emitted.
package logging

import (
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// Config holds logging configuration.
type Config struct {
	// Level is the minimum log level: trace, debug, info, warn, error,
	// fatal, panic. Unknown or empty values fall back to info.
	Level string

	// Format selects json or console output. Empty means json.
	Format string

	// Caller adds the file:line of the call site to each event.
	Caller bool

	// Timestamp adds a timestamp to each event.
	Timestamp bool

	// Output is the destination writer, os.Stderr when nil.
	Output io.Writer
}

// DefaultConfig returns the default logging configuration.
func DefaultConfig() Config {
	return Config{
		Level:     "info",
		Format:    "json",
		Timestamp: true,
		Output:    os.Stderr,
	}
}

// root holds the process-wide logger. Swapped atomically so Init can be
// called while other goroutines log.
var root atomic.Pointer[zerolog.Logger]

//nolint:gochecknoinits // the package must be usable before Init runs
func init() {
	logger := build(DefaultConfig())
	root.Store(&logger)
}

// Init configures the global logger. Call it once from main after the
// configuration loads; calling it again reconfigures in place.
func Init(cfg Config) {
	logger := build(cfg)
	root.Store(&logger)
}

// build assembles a logger from the configuration, filling defaults for
// zero values.
func build(cfg Config) zerolog.Logger {
	if cfg.Level == "" {
		cfg.Level = "info"
	}
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}

	zerolog.SetGlobalLevel(parseLevel(cfg.Level))

	w := cfg.Output
	if cfg.Format == "console" {
		w = zerolog.ConsoleWriter{
			Out:        cfg.Output,
			TimeFormat: "15:04:05",
		}
	}

	lc := zerolog.New(w).With()
	if cfg.Timestamp {
		lc = lc.Timestamp()
	}
	if cfg.Caller {
		lc = lc.Caller()
	}
	return lc.Logger()
}

// levelNames maps configuration strings to zerolog levels.
var levelNames = map[string]zerolog.Level{
	"trace":    zerolog.TraceLevel,
	"debug":    zerolog.DebugLevel,
	"info":     zerolog.InfoLevel,
	"warn":     zerolog.WarnLevel,
	"warning":  zerolog.WarnLevel,
	"error":    zerolog.ErrorLevel,
	"fatal":    zerolog.FatalLevel,
	"panic":    zerolog.PanicLevel,
	"disabled": zerolog.Disabled,
}

// parseLevel converts a level string to a zerolog.Level, defaulting to
// info for anything unrecognized.
func parseLevel(level string) zerolog.Level {
	if lvl, ok := levelNames[strings.ToLower(level)]; ok {
		return lvl
	}
	return zerolog.InfoLevel
}

// Logger returns a copy of the global logger for direct zerolog use.
func Logger() zerolog.Logger {
	return *root.Load()
}

// SetLogger replaces the global logger. Tests use this to capture
// output.
//
//nolint:gocritic // zerolog loggers are value types
func SetLogger(l zerolog.Logger) {
	root.Store(&l)
}

// With opens a child logger context on the global logger.
//
//	storageLogger := logging.With().Str("component", "storage").Logger()
func With() zerolog.Context {
	return root.Load().With()
}

// Trace starts a trace-level event.
func Trace() *zerolog.Event {
	return root.Load().Trace()
}

// Debug starts a debug-level event.
func Debug() *zerolog.Event {
	return root.Load().Debug()
}

// Info starts an info-level event.
func Info() *zerolog.Event {
	return root.Load().Info()
}

// Warn starts a warn-level event.
func Warn() *zerolog.Event {
	return root.Load().Warn()
}

// Error starts an error-level event.
func Error() *zerolog.Event {
	return root.Load().Error()
}

// Fatal starts a fatal-level event. The process exits after the event
// is written.
func Fatal() *zerolog.Event {
	return root.Load().Fatal()
}

// NewTestLogger returns a logger writing to w, for capturing output in
// tests.
//
//	var buf bytes.Buffer
//	logger := logging.NewTestLogger(&buf)
func NewTestLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}
