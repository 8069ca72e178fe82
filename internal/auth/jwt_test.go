// FeedForge - DP-1 Feed Operator for Signed Playlists and Channels
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedforge

package auth

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type testKeypair struct {
	private ed25519.PrivateKey
	public  ed25519.PublicKey
	pem     string
}

func newTestKeypair(t *testing.T) testKeypair {
	t.Helper()

	public, private, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generate keypair: %v", err)
	}

	der, err := x509.MarshalPKIXPublicKey(public)
	if err != nil {
		t.Fatalf("marshal public key: %v", err)
	}
	pemBytes := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})

	return testKeypair{private: private, public: public, pem: string(pemBytes)}
}

// signToken issues a token with the given claims, optionally stamping a kid
// header for JWKS tests.
func signToken(t *testing.T, key ed25519.PrivateKey, claims jwt.RegisteredClaims, kid string) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	if kid != "" {
		token.Header["kid"] = kid
	}
	signed, err := token.SignedString(key)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func freshClaims() jwt.RegisteredClaims {
	now := time.Now()
	return jwt.RegisteredClaims{
		Subject:   "ops@example.com",
		Issuer:    "https://issuer.example.com",
		Audience:  jwt.ClaimStrings{"feedforge"},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}
}

func TestJWTAuthenticatorStaticKey(t *testing.T) {
	t.Parallel()

	kp := newTestKeypair(t)
	auth, err := NewJWTAuthenticator(JWTConfig{PublicKeyPEM: kp.pem})
	if err != nil {
		t.Fatalf("NewJWTAuthenticator() error = %v", err)
	}

	token := signToken(t, kp.private, freshClaims(), "")
	subject, err := auth.Authenticate(context.Background(), requestWithAuth("Bearer "+token))
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if subject.ID != "ops@example.com" {
		t.Errorf("subject ID = %q, want sub claim", subject.ID)
	}
	if subject.Issuer != "https://issuer.example.com" {
		t.Errorf("subject issuer = %q", subject.Issuer)
	}
	if subject.Method != AuthModeJWT {
		t.Errorf("subject method = %q, want jwt", subject.Method)
	}
	if subject.ExpiresAt == 0 || subject.IssuedAt == 0 {
		t.Errorf("subject timestamps not populated: %+v", subject)
	}
}

func TestJWTAuthenticatorRejections(t *testing.T) {
	t.Parallel()

	kp := newTestKeypair(t)
	otherKp := newTestKeypair(t)

	expired := freshClaims()
	expired.IssuedAt = jwt.NewNumericDate(time.Now().Add(-2 * time.Hour))
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))

	tests := []struct {
		name    string
		cfg     JWTConfig
		header  string
		wantErr error
	}{
		{
			name:    "no token",
			cfg:     JWTConfig{PublicKeyPEM: kp.pem},
			header:  "",
			wantErr: ErrNoCredentials,
		},
		{
			name:    "opaque token is not a jwt",
			cfg:     JWTConfig{PublicKeyPEM: kp.pem},
			header:  "Bearer opaque-secret",
			wantErr: ErrNoCredentials,
		},
		{
			name:    "expired token",
			cfg:     JWTConfig{PublicKeyPEM: kp.pem},
			header:  "Bearer " + signToken(t, kp.private, expired, ""),
			wantErr: ErrExpiredCredentials,
		},
		{
			name:    "signed with another key",
			cfg:     JWTConfig{PublicKeyPEM: kp.pem},
			header:  "Bearer " + signToken(t, otherKp.private, freshClaims(), ""),
			wantErr: ErrInvalidCredentials,
		},
		{
			name:    "issuer mismatch",
			cfg:     JWTConfig{PublicKeyPEM: kp.pem, Issuer: "https://other-issuer.example.com"},
			header:  "Bearer " + signToken(t, kp.private, freshClaims(), ""),
			wantErr: ErrInvalidCredentials,
		},
		{
			name:    "audience mismatch",
			cfg:     JWTConfig{PublicKeyPEM: kp.pem, Audience: "other-service"},
			header:  "Bearer " + signToken(t, kp.private, freshClaims(), ""),
			wantErr: ErrInvalidCredentials,
		},
		{
			name:    "garbage with jwt shape",
			cfg:     JWTConfig{PublicKeyPEM: kp.pem},
			header:  "Bearer aaa.bbb.ccc",
			wantErr: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			auth, err := NewJWTAuthenticator(tt.cfg)
			if err != nil {
				t.Fatalf("NewJWTAuthenticator() error = %v", err)
			}
			_, err = auth.Authenticate(context.Background(), requestWithAuth(tt.header))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Authenticate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestJWTAuthenticatorIssuerAudienceEnforced(t *testing.T) {
	t.Parallel()

	kp := newTestKeypair(t)
	auth, err := NewJWTAuthenticator(JWTConfig{
		PublicKeyPEM: kp.pem,
		Issuer:       "https://issuer.example.com",
		Audience:     "feedforge",
	})
	if err != nil {
		t.Fatalf("NewJWTAuthenticator() error = %v", err)
	}

	token := signToken(t, kp.private, freshClaims(), "")
	if _, err := auth.Authenticate(context.Background(), requestWithAuth("Bearer "+token)); err != nil {
		t.Errorf("Authenticate() with matching iss/aud error = %v", err)
	}
}

func TestJWTAuthenticatorRequiresConfig(t *testing.T) {
	t.Parallel()

	if _, err := NewJWTAuthenticator(JWTConfig{}); err == nil {
		t.Error("expected error for empty config")
	}
	if _, err := NewJWTAuthenticator(JWTConfig{PublicKeyPEM: "not a pem"}); err == nil {
		t.Error("expected error for malformed PEM")
	}
}

// jwksServer serves a one-key Ed25519 JWKS document and counts fetches.
func jwksServer(t *testing.T, kid string, public ed25519.PublicKey) *httptest.Server {
	t.Helper()

	x := base64.RawURLEncoding.EncodeToString(public)
	body := fmt.Sprintf(`{"keys":[{"kty":"OKP","crv":"Ed25519","kid":%q,"x":%q}]}`, kid, x)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestJWTAuthenticatorJWKS(t *testing.T) {
	t.Parallel()

	kp := newTestKeypair(t)
	server := jwksServer(t, "feed-key-1", kp.public)

	auth, err := NewJWTAuthenticator(JWTConfig{JWKSURL: server.URL})
	if err != nil {
		t.Fatalf("NewJWTAuthenticator() error = %v", err)
	}

	token := signToken(t, kp.private, freshClaims(), "feed-key-1")
	subject, err := auth.Authenticate(context.Background(), requestWithAuth("Bearer "+token))
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if subject.ID != "ops@example.com" {
		t.Errorf("subject ID = %q", subject.ID)
	}

	// A token pointing at a kid the endpoint does not publish is invalid,
	// not an outage.
	stranger := signToken(t, kp.private, freshClaims(), "unknown-kid")
	if _, err := auth.Authenticate(context.Background(), requestWithAuth("Bearer "+stranger)); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown kid error = %v, want ErrInvalidCredentials", err)
	}

	// A token with no kid cannot be matched against the key set.
	anonymous := signToken(t, kp.private, freshClaims(), "")
	if _, err := auth.Authenticate(context.Background(), requestWithAuth("Bearer "+anonymous)); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("missing kid error = %v, want ErrInvalidCredentials", err)
	}
}

func TestJWTAuthenticatorJWKSUnreachable(t *testing.T) {
	t.Parallel()

	kp := newTestKeypair(t)
	server := jwksServer(t, "feed-key-1", kp.public)
	uri := server.URL
	server.Close()

	auth, err := NewJWTAuthenticator(JWTConfig{JWKSURL: uri})
	if err != nil {
		t.Fatalf("NewJWTAuthenticator() error = %v", err)
	}

	token := signToken(t, kp.private, freshClaims(), "feed-key-1")
	if _, err := auth.Authenticate(context.Background(), requestWithAuth("Bearer "+token)); !errors.Is(err, ErrAuthenticatorUnavailable) {
		t.Errorf("Authenticate() error = %v, want ErrAuthenticatorUnavailable", err)
	}
}

func TestJWKSCacheServesStaleOnFailure(t *testing.T) {
	t.Parallel()

	kp := newTestKeypair(t)
	x := base64.RawURLEncoding.EncodeToString(kp.public)
	body := fmt.Sprintf(`{"keys":[{"kty":"OKP","crv":"Ed25519","kid":"k1","x":%q}]}`, x)

	var healthy atomic.Bool
	healthy.Store(true)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !healthy.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	cache := NewJWKSCache(server.URL, nil, time.Millisecond)
	ctx := context.Background()

	if _, err := cache.GetKey(ctx, "k1"); err != nil {
		t.Fatalf("initial GetKey() error = %v", err)
	}

	// Endpoint breaks and the TTL lapses; the cached key still serves.
	healthy.Store(false)
	time.Sleep(5 * time.Millisecond)
	if _, err := cache.GetKey(ctx, "k1"); err != nil {
		t.Errorf("stale GetKey() error = %v, want cached key", err)
	}
}
