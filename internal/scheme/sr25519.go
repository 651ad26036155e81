// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 Keyfold Authors

package scheme

import (
	"fmt"

	"github.com/ChainSafe/go-schnorrkel"

	"github.com/keyfold/keyfold/internal/secure"
	"github.com/keyfold/keyfold/internal/ss58"
	"github.com/keyfold/keyfold/internal/suri"
)

const (
	sr25519SeedSize      = 32
	sr25519PublicKeySize = 32
	sr25519SignatureSize = 64
)

// signingContext is the domain-separation label for schnorrkel
// signatures; verifiers must use the same label.
var signingContext = []byte("substrate")

type sr25519Scheme struct{}

func (s *sr25519Scheme) Name() string       { return "sr25519" }
func (s *sr25519Scheme) SeedSize() int      { return sr25519SeedSize }
func (s *sr25519Scheme) PublicKeySize() int { return sr25519PublicKeySize }

type sr25519Keypair struct {
	secret *schnorrkel.SecretKey
}

func (k *sr25519Keypair) Public() []byte {
	pub, err := k.secret.Public()
	if err != nil {
		// A secret produced by expansion or derivation always has a
		// well-formed public counterpart.
		panic(fmt.Sprintf("sr25519: deriving public key: %v", err))
	}
	enc := pub.Encode()
	return enc[:]
}

func (k *sr25519Keypair) Sign(msg []byte) ([]byte, error) {
	t := schnorrkel.NewSigningContext(signingContext, msg)
	sig, err := k.secret.Sign(t)
	if err != nil {
		return nil, fmt.Errorf("sr25519 signing: %w", err)
	}
	enc := sig.Encode()
	return enc[:], nil
}

func (s *sr25519Scheme) FromSeed(seed []byte) (Keypair, error) {
	mini, err := miniFromSeed(seed)
	if err != nil {
		return nil, err
	}
	return &sr25519Keypair{secret: mini.ExpandEd25519()}, nil
}

func (s *sr25519Scheme) FromPhrase(phrase, password string) (Keypair, []byte, error) {
	return phraseKeypair(s, phrase, password)
}

// FromURI supports both junction kinds: hard junctions derive a fresh
// mini secret (the seed stays recoverable), soft junctions derive a
// related expanded key whose seed is gone for good.
func (s *sr25519Scheme) FromURI(uri, password string) (Keypair, []byte, error) {
	u, err := suri.Parse(uri)
	if err != nil {
		return nil, nil, err
	}
	seed, err := rootSeed(u, password, sr25519SeedSize)
	if err != nil {
		return nil, nil, err
	}
	mini, err := miniFromSeed(seed)
	if err != nil {
		secure.Zero(seed)
		return nil, nil, err
	}
	secret := mini.ExpandEd25519()

	for _, j := range u.Junctions {
		if j.Hard {
			nextMini, _, err := secret.HardDeriveMiniSecretKey(nil, j.ChainCode)
			if err != nil {
				secure.Zero(seed)
				return nil, nil, fmt.Errorf("sr25519 hard derivation: %w", err)
			}
			enc := nextMini.Encode()
			secure.Zero(seed)
			seed = make([]byte, sr25519SeedSize)
			copy(seed, enc[:])
			secure.Zero(enc[:])
			secret = nextMini.ExpandEd25519()
		} else {
			ext, err := schnorrkel.DeriveKeySimple(secret, nil, j.ChainCode)
			if err != nil {
				secure.Zero(seed)
				return nil, nil, fmt.Errorf("sr25519 soft derivation: %w", err)
			}
			secret, err = ext.Secret()
			if err != nil {
				secure.Zero(seed)
				return nil, nil, fmt.Errorf("sr25519 soft derivation: %w", err)
			}
			// A soft junction loses the seed; report its absence
			// explicitly rather than a placeholder.
			secure.Zero(seed)
			seed = nil
		}
	}
	return &sr25519Keypair{secret: secret}, seed, nil
}

func (s *sr25519Scheme) ParsePublicKey(text string) ([]byte, ss58.NetworkVersion, bool, error) {
	return parsePublicKey(s, text, validateRistrettoPoint)
}

// validateRistrettoPoint rejects bytes that do not decode to a
// ristretto point.
func validateRistrettoPoint(pub []byte) error {
	if _, err := decodeSr25519Public(pub); err != nil {
		return err
	}
	return nil
}

func (s *sr25519Scheme) AccountID(pub []byte) []byte {
	id := make([]byte, len(pub))
	copy(id, pub)
	return id
}

func (s *sr25519Scheme) SS58Address(pub []byte, version ss58.NetworkVersion) (string, error) {
	return ss58.Encode(pub, version)
}

func (s *sr25519Scheme) Verify(pub, msg, sig []byte) (bool, error) {
	pk, err := decodeSr25519Public(pub)
	if err != nil {
		return false, err
	}
	if len(sig) != sr25519SignatureSize {
		return false, fmt.Errorf("sr25519 signature must be %d bytes, got %d", sr25519SignatureSize, len(sig))
	}
	var raw [64]byte
	copy(raw[:], sig)
	signature := &schnorrkel.Signature{}
	if err := signature.Decode(raw); err != nil {
		return false, fmt.Errorf("decoding sr25519 signature: %w", err)
	}
	t := schnorrkel.NewSigningContext(signingContext, msg)
	ok, err := pk.Verify(signature, t)
	if err != nil {
		return false, fmt.Errorf("sr25519 verification: %w", err)
	}
	return ok, nil
}

func miniFromSeed(seed []byte) (*schnorrkel.MiniSecretKey, error) {
	if len(seed) != sr25519SeedSize {
		return nil, fmt.Errorf("sr25519 seed must be %d bytes, got %d", sr25519SeedSize, len(seed))
	}
	var raw [32]byte
	copy(raw[:], seed)
	mini, err := schnorrkel.NewMiniSecretKeyFromRaw(raw)
	secure.Zero(raw[:])
	if err != nil {
		return nil, fmt.Errorf("expanding sr25519 seed: %w", err)
	}
	return mini, nil
}

func decodeSr25519Public(pub []byte) (*schnorrkel.PublicKey, error) {
	if len(pub) != sr25519PublicKeySize {
		return nil, fmt.Errorf("sr25519 public key must be %d bytes, got %d", sr25519PublicKeySize, len(pub))
	}
	var raw [32]byte
	copy(raw[:], pub)
	pk := &schnorrkel.PublicKey{}
	if err := pk.Decode(raw); err != nil {
		return nil, fmt.Errorf("not a valid ristretto point: %w", err)
	}
	return pk, nil
}
