// FeedForge - DP-1 Feed Operator for Signed Playlists and Channels
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedforge

// Package auth guards the write surface. Reads are public; every mutating
// route requires a bearer credential, either the configured API secret or
// a JWT verified against a static public key or a JWKS endpoint.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// AuthMode identifies how a request authenticated.
type AuthMode string

const (
	// AuthModeSecret is the shared API secret.
	AuthModeSecret AuthMode = "secret"

	// AuthModeJWT is a verified JWT bearer token.
	AuthModeJWT AuthMode = "jwt"

	// AuthModeMulti tries secret first, then JWT.
	AuthModeMulti AuthMode = "multi"
)

// String returns the string representation of AuthMode.
func (m AuthMode) String() string {
	return string(m)
}

// Standard authentication errors.
var (
	// ErrNoCredentials indicates the request carried no credentials this
	// authenticator handles. The chain moves on to the next one.
	ErrNoCredentials = errors.New("no credentials provided")

	// ErrInvalidCredentials indicates credentials were presented and failed.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrExpiredCredentials indicates the token was valid once.
	ErrExpiredCredentials = errors.New("credentials expired")

	// ErrAuthenticatorUnavailable indicates the authenticator cannot decide,
	// because it is unconfigured or its key source is unreachable.
	ErrAuthenticatorUnavailable = errors.New("authenticator unavailable")
)

// Authenticator validates request credentials.
type Authenticator interface {
	// Authenticate extracts and validates credentials from the request.
	Authenticate(ctx context.Context, r *http.Request) (*Subject, error)

	// Name returns the authenticator's name for logging.
	Name() string

	// Priority orders authenticators in multi mode. Lower runs first.
	Priority() int
}

// Subject is the authenticated caller of a write. Feed operators have no
// user accounts; the subject exists so write audit logs can say which
// credential acted.
type Subject struct {
	// ID is "operator" for the shared secret, the token's sub claim for JWT.
	ID string `json:"id"`

	// Issuer is "local" for the shared secret, the iss claim for JWT.
	Issuer string `json:"issuer,omitempty"`

	// Method indicates how the subject was authenticated.
	Method AuthMode `json:"method"`

	// IssuedAt and ExpiresAt are Unix seconds, zero when the credential
	// carries no lifetime.
	IssuedAt  int64 `json:"issued_at,omitempty"`
	ExpiresAt int64 `json:"expires_at,omitempty"`
}

// extractBearerToken pulls the token out of the Authorization header.
// Returns "" when the header is absent or not a Bearer scheme.
func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// looksLikeJWT reports whether the token has the three-segment JWS shape.
// The secret and JWT authenticators share the Bearer scheme, so this is how
// each one recognizes credentials meant for the other.
func looksLikeJWT(token string) bool {
	return strings.Count(token, ".") == 2
}

type contextKey struct{}

// ContextWithSubject attaches the authenticated subject to the context.
func ContextWithSubject(ctx context.Context, subject *Subject) context.Context {
	return context.WithValue(ctx, contextKey{}, subject)
}

// SubjectFromContext returns the authenticated subject, or nil on
// unauthenticated (read) requests.
func SubjectFromContext(ctx context.Context) *Subject {
	subject, _ := ctx.Value(contextKey{}).(*Subject)
	return subject
}
