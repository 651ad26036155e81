// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 Keyfold Authors

package scheme

import (
	"crypto/ed25519"
	"fmt"

	"filippo.io/edwards25519"

	"github.com/keyfold/keyfold/internal/ss58"
)

type ed25519Scheme struct{}

func (s *ed25519Scheme) Name() string       { return "ed25519" }
func (s *ed25519Scheme) SeedSize() int      { return ed25519.SeedSize }
func (s *ed25519Scheme) PublicKeySize() int { return ed25519.PublicKeySize }

type ed25519Keypair struct {
	priv ed25519.PrivateKey
}

func (k *ed25519Keypair) Public() []byte {
	pub := make([]byte, ed25519.PublicKeySize)
	copy(pub, k.priv[ed25519.SeedSize:])
	return pub
}

func (k *ed25519Keypair) Sign(msg []byte) ([]byte, error) {
	return ed25519.Sign(k.priv, msg), nil
}

func (s *ed25519Scheme) FromSeed(seed []byte) (Keypair, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("ed25519 seed must be %d bytes, got %d", ed25519.SeedSize, len(seed))
	}
	return &ed25519Keypair{priv: ed25519.NewKeyFromSeed(seed)}, nil
}

func (s *ed25519Scheme) FromPhrase(phrase, password string) (Keypair, []byte, error) {
	return phraseKeypair(s, phrase, password)
}

func (s *ed25519Scheme) FromURI(uri, password string) (Keypair, []byte, error) {
	return seedChainURI(s, ed25519HDKDTag, uri, password)
}

func (s *ed25519Scheme) ParsePublicKey(text string) ([]byte, ss58.NetworkVersion, bool, error) {
	return parsePublicKey(s, text, validateEd25519Point)
}

// validateEd25519Point rejects key bytes that do not decode to a
// canonical curve point, so a later address round trip cannot silently
// change the key.
func validateEd25519Point(pub []byte) error {
	if _, err := new(edwards25519.Point).SetBytes(pub); err != nil {
		return fmt.Errorf("not a canonical ed25519 public key: %w", err)
	}
	return nil
}

func (s *ed25519Scheme) AccountID(pub []byte) []byte {
	id := make([]byte, len(pub))
	copy(id, pub)
	return id
}

func (s *ed25519Scheme) SS58Address(pub []byte, version ss58.NetworkVersion) (string, error) {
	return ss58.Encode(pub, version)
}

func (s *ed25519Scheme) Verify(pub, msg, sig []byte) (bool, error) {
	if len(pub) != ed25519.PublicKeySize {
		return false, fmt.Errorf("ed25519 public key must be %d bytes, got %d", ed25519.PublicKeySize, len(pub))
	}
	if len(sig) != ed25519.SignatureSize {
		return false, fmt.Errorf("ed25519 signature must be %d bytes, got %d", ed25519.SignatureSize, len(sig))
	}
	return ed25519.Verify(ed25519.PublicKey(pub), msg, sig), nil
}
