// FeedForge - DP-1 Feed Operator for Signed Playlists and Channels
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedforge

package canonical

import (
	"crypto/ed25519"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/tomtom215/feedforge/internal/logging"
)

// SignaturePrefix starts every playlist signature value.
const SignaturePrefix = "ed25519:0x"

// ErrKeyUnavailable indicates the signing key could not be produced from the
// configured material. Every Sign, Verify, and PublicKeyHex error wraps it.
var ErrKeyUnavailable = errors.New("signing key unavailable")

// Signer holds the operator's Ed25519 identity and produces playlist
// signatures over canonical bytes.
//
// Key material is resolved lazily on first use and cached for the process
// lifetime. A signer built without material fails every signing attempt;
// the process starts fine, reads keep working, and only writes surface the
// missing key.
type Signer struct {
	material string

	once sync.Once
	priv ed25519.PrivateKey
	pub  ed25519.PublicKey
	err  error
}

// NewSigner returns a Signer backed by the given key material, PEM or hex
// per ParsePrivateKey. The key is not parsed until the first Sign, Verify,
// or PublicKeyHex call.
func NewSigner(material string) *Signer {
	return &Signer{material: material}
}

func (s *Signer) init() {
	s.once.Do(func() {
		if s.material == "" {
			s.err = fmt.Errorf("%w: no signing key configured", ErrKeyUnavailable)
			logging.Error().
				Str("component", "signer").
				Msg("Signing attempted without a configured key; the write cannot be signed")
			return
		}

		s.priv, s.err = ParsePrivateKey(s.material)
		if s.err != nil {
			s.err = fmt.Errorf("%w: %w", ErrKeyUnavailable, s.err)
			return
		}
		s.pub = s.priv.Public().(ed25519.PublicKey)
	})
}

// Sign signs canonical bytes and returns the wire form
// "ed25519:0x<hex signature>".
func (s *Signer) Sign(canonical []byte) (string, error) {
	s.init()
	if s.err != nil {
		return "", s.err
	}
	sig := ed25519.Sign(s.priv, canonical)
	return SignaturePrefix + hex.EncodeToString(sig), nil
}

// Verify checks a wire-form signature against canonical bytes using the
// signer's own public key.
func (s *Signer) Verify(canonical []byte, signature string) error {
	s.init()
	if s.err != nil {
		return s.err
	}
	return VerifyWithKey(s.pub, canonical, signature)
}

// PublicKeyHex returns the signer's public key as lowercase hex.
func (s *Signer) PublicKeyHex() (string, error) {
	s.init()
	if s.err != nil {
		return "", s.err
	}
	return hex.EncodeToString(s.pub), nil
}

// VerifyWithKey checks a wire-form signature against canonical bytes using
// an explicit public key.
func VerifyWithKey(pub ed25519.PublicKey, canonical []byte, signature string) error {
	hexSig, ok := strings.CutPrefix(signature, SignaturePrefix)
	if !ok {
		return fmt.Errorf("signature must start with %q", SignaturePrefix)
	}

	sig, err := hex.DecodeString(hexSig)
	if err != nil {
		return fmt.Errorf("decoding signature hex: %w", err)
	}
	if len(sig) != ed25519.SignatureSize {
		return fmt.Errorf("signature must be %d bytes, got %d", ed25519.SignatureSize, len(sig))
	}

	if !ed25519.Verify(pub, canonical, sig) {
		return fmt.Errorf("signature does not match canonical content")
	}
	return nil
}
