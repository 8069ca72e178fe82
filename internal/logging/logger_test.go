// FeedForge - DP-1 Feed Operator for Signed Playlists and Channels
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedforge

package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if cfg.Level != "info" || cfg.Format != "json" {
		t.Errorf("unexpected defaults: level=%q format=%q", cfg.Level, cfg.Format)
	}
	if cfg.Caller {
		t.Error("expected caller disabled by default")
	}
	if !cfg.Timestamp {
		t.Error("expected timestamp enabled by default")
	}
}

func TestInitEmitsJSON(t *testing.T) {
	var buf bytes.Buffer

	Init(Config{Level: "debug", Timestamp: true, Output: &buf})
	Info().Msg("test message")

	output := buf.String()
	if !strings.Contains(output, "test message") {
		t.Errorf("expected message in output: %s", output)
	}
	if !strings.Contains(output, `"level":"info"`) {
		t.Errorf("expected level field in output: %s", output)
	}
}

func TestInitReconfigures(t *testing.T) {
	var first, second bytes.Buffer

	Init(Config{Output: &first})
	Info().Msg("one")

	Init(Config{Output: &second})
	Info().Msg("two")

	if strings.Contains(first.String(), "two") {
		t.Error("second message landed in the first writer")
	}
	if !strings.Contains(second.String(), "two") {
		t.Errorf("expected 'two' in second writer: %s", second.String())
	}
}

func TestInitConsoleFormat(t *testing.T) {
	var buf bytes.Buffer

	Init(Config{Format: "console", Timestamp: true, Output: &buf})
	Info().Msg("console message")

	output := buf.String()
	if strings.HasPrefix(strings.TrimSpace(output), "{") {
		t.Errorf("console format produced JSON: %s", output)
	}
	if !strings.Contains(output, "console message") {
		t.Errorf("expected message in output: %s", output)
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"INFO", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"panic", zerolog.PanicLevel},
		{"disabled", zerolog.Disabled},
		{"bogus", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestEventLevels(t *testing.T) {
	var buf bytes.Buffer

	SetLogger(zerolog.New(&buf).With().Timestamp().Logger())
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	starters := map[string]func() *zerolog.Event{
		"trace": Trace,
		"debug": Debug,
		"info":  Info,
		"warn":  Warn,
		"error": Error,
	}

	for level, start := range starters {
		t.Run(level, func(t *testing.T) {
			buf.Reset()
			start().Msg("leveled")
			if !strings.Contains(buf.String(), `"level":"`+level+`"`) {
				t.Errorf("expected level %q in output: %s", level, buf.String())
			}
		})
	}
}

func TestCtxAddsRequestID(t *testing.T) {
	var buf bytes.Buffer

	SetLogger(zerolog.New(&buf).With().Timestamp().Logger())
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	ctx := ContextWithRequestID(context.Background(), "req-123")
	Ctx(ctx).Info().Msg("with request id")

	if !strings.Contains(buf.String(), `"request_id":"req-123"`) {
		t.Errorf("expected request_id field in output: %s", buf.String())
	}
}

func TestCtxWithoutRequestID(t *testing.T) {
	var buf bytes.Buffer

	SetLogger(zerolog.New(&buf).With().Timestamp().Logger())
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	Ctx(context.Background()).Info().Msg("plain")

	if strings.Contains(buf.String(), "request_id") {
		t.Errorf("did not expect request_id field in output: %s", buf.String())
	}
}

func TestRequestIDFromContext(t *testing.T) {
	t.Parallel()

	if got := RequestIDFromContext(context.Background()); got != "" {
		t.Errorf("expected empty request id, got %q", got)
	}

	ctx := ContextWithRequestID(context.Background(), "abc")
	if got := RequestIDFromContext(ctx); got != "abc" {
		t.Errorf("expected 'abc', got %q", got)
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer

	SetLogger(zerolog.New(&buf).With().Timestamp().Logger())
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	logger := WithComponent("storage")
	logger.Info().Msg("component log")

	if !strings.Contains(buf.String(), `"component":"storage"`) {
		t.Errorf("expected component field in output: %s", buf.String())
	}
}
