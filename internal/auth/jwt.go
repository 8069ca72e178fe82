// FeedForge - DP-1 Feed Operator for Signed Playlists and Channels
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedforge

package auth

import (
	"context"
	"crypto"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTConfig configures JWT bearer validation. Exactly one of PublicKeyPEM
// and JWKSURL must be set.
type JWTConfig struct {
	// PublicKeyPEM is a static Ed25519 or RSA public key in PEM form.
	PublicKeyPEM string

	// JWKSURL enables key discovery with kid matching.
	JWKSURL string

	// Issuer and Audience are enforced when non-empty.
	Issuer   string
	Audience string

	// JWKSCacheTTL bounds how long fetched keys are reused. Zero means the
	// cache default.
	JWKSCacheTTL time.Duration
}

// JWTAuthenticator validates JWT bearer tokens against a static public key
// or a JWKS endpoint.
type JWTAuthenticator struct {
	key      crypto.PublicKey
	jwks     *JWKSCache
	issuer   string
	audience string
	methods  []string
}

// NewJWTAuthenticator creates a JWT authenticator from the config.
func NewJWTAuthenticator(cfg JWTConfig) (*JWTAuthenticator, error) {
	a := &JWTAuthenticator{
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
	}

	switch {
	case cfg.PublicKeyPEM != "":
		key, methods, err := parsePublicKeyPEM(cfg.PublicKeyPEM)
		if err != nil {
			return nil, err
		}
		a.key = key
		a.methods = methods

	case cfg.JWKSURL != "":
		a.jwks = NewJWKSCache(cfg.JWKSURL, nil, cfg.JWKSCacheTTL)
		a.methods = []string{"EdDSA", "RS256", "RS384", "RS512"}

	default:
		return nil, errors.New("jwt authenticator requires a public key or a JWKS URL")
	}

	return a, nil
}

// parsePublicKeyPEM accepts Ed25519 or RSA public keys and returns the key
// with the signing methods it can verify.
func parsePublicKeyPEM(pemData string) (crypto.PublicKey, []string, error) {
	if key, err := jwt.ParseEdPublicKeyFromPEM([]byte(pemData)); err == nil {
		return key, []string{"EdDSA"}, nil
	}
	if key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(pemData)); err == nil {
		return key, []string{"RS256", "RS384", "RS512"}, nil
	}
	return nil, nil, errors.New("JWT_PUBLIC_KEY is neither an Ed25519 nor an RSA public key")
}

// Authenticate validates the JWT from the Authorization header.
func (a *JWTAuthenticator) Authenticate(ctx context.Context, r *http.Request) (*Subject, error) {
	tokenStr := extractBearerToken(r)
	if tokenStr == "" || !looksLikeJWT(tokenStr) {
		return nil, ErrNoCredentials
	}

	opts := []jwt.ParserOption{jwt.WithValidMethods(a.methods)}
	if a.issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.issuer))
	}
	if a.audience != "" {
		opts = append(opts, jwt.WithAudience(a.audience))
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, a.keyfunc(ctx), opts...)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpiredCredentials
		case errors.Is(err, ErrAuthenticatorUnavailable):
			return nil, fmt.Errorf("%w: %v", ErrAuthenticatorUnavailable, err)
		default:
			return nil, ErrInvalidCredentials
		}
	}
	if !token.Valid {
		return nil, ErrInvalidCredentials
	}

	subject := &Subject{
		ID:     claims.Subject,
		Issuer: claims.Issuer,
		Method: AuthModeJWT,
	}
	if claims.IssuedAt != nil {
		subject.IssuedAt = claims.IssuedAt.Unix()
	}
	if claims.ExpiresAt != nil {
		subject.ExpiresAt = claims.ExpiresAt.Unix()
	}
	return subject, nil
}

// keyfunc resolves the verification key for a parsed token header.
func (a *JWTAuthenticator) keyfunc(ctx context.Context) jwt.Keyfunc {
	return func(token *jwt.Token) (interface{}, error) {
		if a.key != nil {
			return a.key, nil
		}

		kid, _ := token.Header["kid"].(string)
		if kid == "" {
			return nil, errors.New("token has no key id")
		}

		key, err := a.jwks.GetKey(ctx, kid)
		if err != nil {
			if errors.Is(err, errKeyNotFound) {
				return nil, err
			}
			// An unreachable key source reads as unavailable, not as a
			// bad token.
			return nil, fmt.Errorf("%w: %v", ErrAuthenticatorUnavailable, err)
		}
		return key, nil
	}
}

// Name returns the authenticator name.
func (a *JWTAuthenticator) Name() string {
	return string(AuthModeJWT)
}

// Priority returns the authenticator priority (lower = higher priority).
func (a *JWTAuthenticator) Priority() int {
	return 20
}
