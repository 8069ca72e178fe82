// FeedForge - DP-1 Feed Operator for Signed Playlists and Channels
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedforge

package auth

import (
	"context"
	"crypto/subtle"
	"net/http"
)

// SecretAuthenticator compares the bearer token against the configured API
// secret in constant time. Tokens with the three-segment JWS shape are left
// for the JWT authenticator, so an operator secret must be an opaque string,
// not something containing two dots.
type SecretAuthenticator struct {
	secret []byte
}

// NewSecretAuthenticator creates a shared-secret authenticator. An empty
// secret yields an authenticator that never matches, which is how a server
// without API_SECRET rejects every write.
func NewSecretAuthenticator(secret string) *SecretAuthenticator {
	return &SecretAuthenticator{secret: []byte(secret)}
}

// Authenticate validates the bearer token against the secret.
func (a *SecretAuthenticator) Authenticate(ctx context.Context, r *http.Request) (*Subject, error) {
	token := extractBearerToken(r)
	if token == "" {
		return nil, ErrNoCredentials
	}
	if looksLikeJWT(token) {
		return nil, ErrNoCredentials
	}

	if len(a.secret) == 0 {
		return nil, ErrAuthenticatorUnavailable
	}

	if subtle.ConstantTimeCompare([]byte(token), a.secret) != 1 {
		return nil, ErrInvalidCredentials
	}

	return &Subject{
		ID:     "operator",
		Issuer: "local",
		Method: AuthModeSecret,
	}, nil
}

// Name returns the authenticator name.
func (a *SecretAuthenticator) Name() string {
	return string(AuthModeSecret)
}

// Priority returns the authenticator priority (lower = higher priority).
// The secret check is cheap, so it runs before JWT at 20.
func (a *SecretAuthenticator) Priority() int {
	return 10
}
