// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 Keyfold Authors

package scheme

import (
	"bytes"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	secpecdsa "github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"golang.org/x/crypto/blake2b"

	"github.com/keyfold/keyfold/internal/ss58"
)

const (
	ecdsaSeedSize      = 32
	ecdsaPublicKeySize = 33 // compressed secp256k1 point
)

type ecdsaScheme struct{}

func (s *ecdsaScheme) Name() string       { return "ecdsa" }
func (s *ecdsaScheme) SeedSize() int      { return ecdsaSeedSize }
func (s *ecdsaScheme) PublicKeySize() int { return ecdsaPublicKeySize }

type ecdsaKeypair struct {
	priv *secp256k1.PrivateKey
}

func (k *ecdsaKeypair) Public() []byte {
	return k.priv.PubKey().SerializeCompressed()
}

// Sign signs blake2b-256 of the message and returns a 65-byte compact
// recoverable signature.
func (k *ecdsaKeypair) Sign(msg []byte) ([]byte, error) {
	digest := blake2b.Sum256(msg)
	return secpecdsa.SignCompact(k.priv, digest[:], true), nil
}

func (s *ecdsaScheme) FromSeed(seed []byte) (Keypair, error) {
	if len(seed) != ecdsaSeedSize {
		return nil, fmt.Errorf("ecdsa seed must be %d bytes, got %d", ecdsaSeedSize, len(seed))
	}
	priv := secp256k1.PrivKeyFromBytes(seed)
	if priv.Key.IsZero() {
		return nil, fmt.Errorf("ecdsa seed reduces to the zero scalar")
	}
	return &ecdsaKeypair{priv: priv}, nil
}

func (s *ecdsaScheme) FromPhrase(phrase, password string) (Keypair, []byte, error) {
	return phraseKeypair(s, phrase, password)
}

func (s *ecdsaScheme) FromURI(uri, password string) (Keypair, []byte, error) {
	return seedChainURI(s, secp256k1HDKDTag, uri, password)
}

func (s *ecdsaScheme) ParsePublicKey(text string) ([]byte, ss58.NetworkVersion, bool, error) {
	return parsePublicKey(s, text, validateSecp256k1Point)
}

func validateSecp256k1Point(pub []byte) error {
	if _, err := secp256k1.ParsePubKey(pub); err != nil {
		return fmt.Errorf("not a valid secp256k1 public key: %w", err)
	}
	return nil
}

// AccountID hashes the compressed key down to 32 bytes so account ids
// share one length across schemes.
func (s *ecdsaScheme) AccountID(pub []byte) []byte {
	id := blake2b.Sum256(pub)
	return id[:]
}

func (s *ecdsaScheme) SS58Address(pub []byte, version ss58.NetworkVersion) (string, error) {
	return ss58.Encode(pub, version)
}

// Verify recovers the signer from the compact signature and compares it
// to the expected public key.
func (s *ecdsaScheme) Verify(pub, msg, sig []byte) (bool, error) {
	if err := validateSecp256k1Point(pub); err != nil {
		return false, err
	}
	digest := blake2b.Sum256(msg)
	recovered, _, err := secpecdsa.RecoverCompact(sig, digest[:])
	if err != nil {
		return false, fmt.Errorf("recovering ecdsa signer: %w", err)
	}
	return bytes.Equal(recovered.SerializeCompressed(), pub), nil
}
