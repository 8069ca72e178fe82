// FeedForge - DP-1 Feed Operator for Signed Playlists and Channels
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedforge

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/goccy/go-json"

	"github.com/tomtom215/feedforge/internal/logging"
	"github.com/tomtom215/feedforge/internal/metrics"
	"github.com/tomtom215/feedforge/internal/models"
)

// ChiMiddlewareConfig holds configuration for the router's middleware
// factories.
type ChiMiddlewareConfig struct {
	// RateLimitRequests is the per-IP budget for read routes per window.
	RateLimitRequests int

	// RateLimitWrites is the per-IP budget for write routes per window.
	RateLimitWrites int

	// RateLimitWindow is the limiter window for both budgets.
	RateLimitWindow time.Duration

	// RateLimitDisabled turns all limiters into no-ops.
	RateLimitDisabled bool
}

// DefaultChiMiddlewareConfig returns the production limits: 100 reads
// and 30 writes per IP per minute.
func DefaultChiMiddlewareConfig() *ChiMiddlewareConfig {
	return &ChiMiddlewareConfig{
		RateLimitRequests: 100,
		RateLimitWrites:   30,
		RateLimitWindow:   time.Minute,
		RateLimitDisabled: false,
	}
}

// ChiMiddleware provides chi-compatible middleware factories built from
// the go-chi ecosystem (cors, httprate).
type ChiMiddleware struct {
	config *ChiMiddlewareConfig
	cors   func(http.Handler) http.Handler
}

// NewChiMiddleware creates a middleware factory with the given
// configuration. DP-1 feeds are public documents, so CORS is wildcard
// with the full method set; writes are still gated by bearer auth.
func NewChiMiddleware(config *ChiMiddlewareConfig) *ChiMiddleware {
	if config == nil {
		config = DefaultChiMiddlewareConfig()
	}

	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization", "Prefer"},
		ExposedHeaders: []string{},
		MaxAge:         86400,
	})

	return &ChiMiddleware{
		config: config,
		cors:   corsHandler,
	}
}

// CORS returns the wildcard CORS middleware, including OPTIONS
// preflight handling. The cors library answers preflights with 200;
// the API contract promises 204, so the status is rewritten on that
// path.
func (m *ChiMiddleware) CORS() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		h := m.cors(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				h.ServeHTTP(&preflightWriter{ResponseWriter: w}, r)
				return
			}
			h.ServeHTTP(w, r)
		})
	}
}

type preflightWriter struct{ http.ResponseWriter }

func (p *preflightWriter) WriteHeader(status int) {
	if status == http.StatusOK {
		status = http.StatusNoContent
	}
	p.ResponseWriter.WriteHeader(status)
}

// RateLimit returns the per-IP limiter for read routes.
func (m *ChiMiddleware) RateLimit() func(http.Handler) http.Handler {
	return m.limit(m.config.RateLimitRequests)
}

// RateLimitWrite returns the stricter per-IP limiter for write routes.
func (m *ChiMiddleware) RateLimitWrite() func(http.Handler) http.Handler {
	return m.limit(m.config.RateLimitWrites)
}

func (m *ChiMiddleware) limit(requests int) func(http.Handler) http.Handler {
	if m.config.RateLimitDisabled {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	return httprate.Limit(
		requests,
		m.config.RateLimitWindow,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(rateLimitExceeded),
	)
}

// rateLimitExceeded answers 429 in the flat error format and counts the
// hit against the matched route.
func rateLimitExceeded(w http.ResponseWriter, r *http.Request) {
	endpoint := "unmatched"
	if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
		endpoint = rctx.RoutePattern()
	}
	metrics.RecordRateLimitHit(endpoint)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)
	if err := json.NewEncoder(w).Encode(models.ErrorResponse{
		Error:   "rate_limited",
		Message: "Too many requests, slow down",
	}); err != nil {
		logging.Error().Err(err).Msg("Failed to write rate limit response")
	}
}

// APISecurityHeaders adds defensive headers to API responses. CSP is
// omitted since every response is JSON, not HTML. HSTS is set only when
// the request arrived over TLS or a TLS-terminating proxy.
func APISecurityHeaders() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

			if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
				w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequestIDWithLogging wraps chi's RequestID middleware and threads the
// request ID into the zerolog context so every log line inside the
// request carries it.
func RequestIDWithLogging() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		chiRequestID := chimiddleware.RequestID(next)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				// chi would generate one, but we need it for the logging
				// context, so generate ours and let chi adopt it.
				requestID = logging.GenerateRequestID()
				r.Header.Set("X-Request-ID", requestID)
			}
			w.Header().Set("X-Request-ID", requestID)

			ctx := logging.ContextWithRequestID(r.Context(), requestID)
			chiRequestID.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
