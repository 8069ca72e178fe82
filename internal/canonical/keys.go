// FeedForge - DP-1 Feed Operator for Signed Playlists and Channels
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedforge

package canonical

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/ssh"
)

// ParsePrivateKey loads an Ed25519 private key from operator-supplied
// material. Three encodings are accepted:
//
//   - PEM, either PKCS#8 ("BEGIN PRIVATE KEY") or OpenSSH
//     ("BEGIN OPENSSH PRIVATE KEY")
//   - 64 hex characters: the 32-byte seed
//   - 128 hex characters: the full 64-byte private key
//
// Hex input may carry an optional 0x prefix. PEM delivered through an
// environment variable may use literal \n sequences in place of newlines.
func ParsePrivateKey(material string) (ed25519.PrivateKey, error) {
	material = strings.TrimSpace(material)
	if material == "" {
		return nil, fmt.Errorf("empty key material")
	}

	if strings.Contains(material, "BEGIN") {
		return parsePEM(material)
	}
	return parseHex(material)
}

func parsePEM(material string) (ed25519.PrivateKey, error) {
	// Env vars cannot hold raw newlines in some deployment tooling.
	material = strings.ReplaceAll(material, `\n`, "\n")

	parsed, err := ssh.ParseRawPrivateKey([]byte(material))
	if err != nil {
		return nil, fmt.Errorf("parsing PEM private key: %w", err)
	}

	switch key := parsed.(type) {
	case ed25519.PrivateKey:
		return key, nil
	case *ed25519.PrivateKey:
		return *key, nil
	default:
		return nil, fmt.Errorf("unsupported private key type %T, need Ed25519", parsed)
	}
}

func parseHex(material string) (ed25519.PrivateKey, error) {
	material = strings.TrimPrefix(material, "0x")

	raw, err := hex.DecodeString(material)
	if err != nil {
		return nil, fmt.Errorf("decoding hex private key: %w", err)
	}

	switch len(raw) {
	case ed25519.SeedSize:
		return ed25519.NewKeyFromSeed(raw), nil
	case ed25519.PrivateKeySize:
		return ed25519.PrivateKey(raw), nil
	default:
		return nil, fmt.Errorf("hex private key must be %d or %d bytes, got %d",
			ed25519.SeedSize, ed25519.PrivateKeySize, len(raw))
	}
}
