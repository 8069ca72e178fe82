// FeedForge - DP-1 Feed Operator for Signed Playlists and Channels
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedforge

package auth

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/feedforge/internal/logging"
	"github.com/tomtom215/feedforge/internal/metrics"
	"github.com/tomtom215/feedforge/internal/models"
)

// Middleware returns HTTP middleware that rejects unauthenticated requests
// with 401. The router applies it to write routes only; reads stay public.
func Middleware(authenticator Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			subject, err := authenticator.Authenticate(r.Context(), r)
			if err != nil {
				reason := failureReason(err)
				metrics.RecordAuthFailure(reason)
				logging.Ctx(r.Context()).Warn().
					Str("reason", reason).
					Str("path", r.URL.Path).
					Msg("Rejected unauthenticated write")

				w.Header().Set("WWW-Authenticate", `Bearer realm="feedforge"`)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(models.ErrorResponse{
					Error:   "unauthorized",
					Message: unauthorizedMessage(err),
				})
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithSubject(r.Context(), subject)))
		})
	}
}

// failureReason maps an authentication error to a metric label.
func failureReason(err error) string {
	switch {
	case errors.Is(err, ErrNoCredentials):
		return "missing_credentials"
	case errors.Is(err, ErrExpiredCredentials):
		return "expired_token"
	case errors.Is(err, ErrAuthenticatorUnavailable):
		return "unavailable"
	default:
		return "invalid_credentials"
	}
}

// unauthorizedMessage keeps 401 bodies terse. The response never says
// whether a secret or a key rejected the caller.
func unauthorizedMessage(err error) string {
	switch {
	case errors.Is(err, ErrNoCredentials):
		return "Authorization required"
	case errors.Is(err, ErrExpiredCredentials):
		return "Token expired"
	default:
		return "Invalid authorization"
	}
}
