// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 Keyfold Authors

// Package scheme defines the signature-scheme capability set and its
// three concrete implementations: ecdsa (secp256k1), sr25519 and
// ed25519. Callers select an implementation through For; adding a
// scheme means implementing Scheme, not editing call sites.
package scheme

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/keyfold/keyfold/internal/secure"
	"github.com/keyfold/keyfold/internal/ss58"
	"github.com/keyfold/keyfold/internal/suri"
)

// CryptoScheme is the closed enumeration of supported schemes.
type CryptoScheme int

const (
	Ecdsa CryptoScheme = iota
	Sr25519
	Ed25519
)

// String returns the canonical lowercase name of the scheme.
func (c CryptoScheme) String() string {
	switch c {
	case Ecdsa:
		return "ecdsa"
	case Sr25519:
		return "sr25519"
	case Ed25519:
		return "ed25519"
	default:
		return fmt.Sprintf("scheme(%d)", int(c))
	}
}

// ParseScheme maps a scheme name to its CryptoScheme value.
func ParseScheme(s string) (CryptoScheme, error) {
	switch strings.ToLower(s) {
	case "ecdsa", "secp256k1":
		return Ecdsa, nil
	case "sr25519":
		return Sr25519, nil
	case "ed25519":
		return Ed25519, nil
	default:
		return 0, fmt.Errorf("unknown crypto scheme %q (want ecdsa, sr25519 or ed25519)", s)
	}
}

// Keypair is a derived signing key.
type Keypair interface {
	// Public returns the public key bytes (scheme-specific length).
	Public() []byte

	// Sign signs an arbitrary message.
	Sign(msg []byte) ([]byte, error)
}

// Scheme is the capability set a signature scheme must provide to
// participate in identity resolution.
type Scheme interface {
	// Name returns the canonical scheme name.
	Name() string

	// SeedSize returns the secret seed length in bytes.
	SeedSize() int

	// PublicKeySize returns the public key length in bytes.
	PublicKeySize() int

	// FromSeed builds a keypair from a raw seed.
	FromSeed(seed []byte) (Keypair, error)

	// FromPhrase derives a keypair from a bare mnemonic phrase. The
	// returned seed is always present. The password is folded into
	// derivation, never verified.
	FromPhrase(phrase, password string) (Keypair, []byte, error)

	// FromURI derives a keypair from a secret URI (hex seed or phrase,
	// optional derivation path and password). The returned seed is nil
	// when the path makes it unrecoverable.
	FromURI(uri, password string) (Keypair, []byte, error)

	// ParsePublicKey parses a bare public key: a checksummed address or
	// a 0x-prefixed hex string. embedded reports whether the returned
	// version was carried by the input (hex strings carry none).
	ParsePublicKey(s string) (pub []byte, version ss58.NetworkVersion, embedded bool, err error)

	// AccountID derives the account identifier from a public key.
	AccountID(pub []byte) []byte

	// SS58Address renders a public key as a checksummed address.
	SS58Address(pub []byte, version ss58.NetworkVersion) (string, error)

	// Verify checks a signature produced by Keypair.Sign.
	Verify(pub, msg, sig []byte) (bool, error)
}

var (
	ecdsaImpl   = &ecdsaScheme{}
	sr25519Impl = &sr25519Scheme{}
	ed25519Impl = &ed25519Scheme{}
)

// For returns the concrete implementation for a scheme tag. Exactly one
// implementation exists per tag; they hold no mutable state.
func For(c CryptoScheme) Scheme {
	switch c {
	case Ecdsa:
		return ecdsaImpl
	case Sr25519:
		return sr25519Impl
	case Ed25519:
		return ed25519Impl
	default:
		panic(fmt.Sprintf("scheme.For: invalid scheme %d", int(c)))
	}
}

var errSoftJunction = errors.New("soft junction requires sr25519")

// effectivePassword applies the precedence rule: an explicitly passed
// password wins over the ///-suffix inside the URI.
func effectivePassword(u *suri.SURI, password string) string {
	if password != "" {
		return password
	}
	if u.HasPassword {
		return u.Password
	}
	return ""
}

// hexSeed interprets s as an optionally 0x-prefixed hex seed of exactly
// size bytes.
func hexSeed(s string, size int) ([]byte, bool) {
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil || len(b) != size {
		return nil, false
	}
	return b, true
}

// rootSeed resolves the phrase component of a parsed URI: a hex seed is
// used verbatim, anything else must be a valid mnemonic.
func rootSeed(u *suri.SURI, password string, size int) ([]byte, error) {
	if b, ok := hexSeed(u.Phrase, size); ok {
		return b, nil
	}
	return suri.SeedFromPhrase(u.Phrase, effectivePassword(u, password))
}

// phraseKeypair implements FromPhrase identically for every scheme: the
// whole identifier must be a mnemonic, junctions are not accepted here.
func phraseKeypair(s Scheme, phrase, password string) (Keypair, []byte, error) {
	seed, err := suri.SeedFromPhrase(phrase, password)
	if err != nil {
		return nil, nil, err
	}
	kp, err := s.FromSeed(seed)
	if err != nil {
		secure.Zero(seed)
		return nil, nil, err
	}
	return kp, seed, nil
}

// seedChainURI implements FromURI for schemes whose derivation is a
// chain of hard junctions over the seed itself (ed25519, ecdsa). Each
// junction replaces the seed with blake2b-256 of the tagged parent seed
// and chain code; intermediate seeds are zeroed.
func seedChainURI(s Scheme, hdkdTag, uri, password string) (Keypair, []byte, error) {
	u, err := suri.Parse(uri)
	if err != nil {
		return nil, nil, err
	}
	seed, err := rootSeed(u, password, s.SeedSize())
	if err != nil {
		return nil, nil, err
	}
	for _, j := range u.Junctions {
		if !j.Hard {
			secure.Zero(seed)
			return nil, nil, errSoftJunction
		}
		next := hdkdSeed(hdkdTag, seed, j.ChainCode)
		secure.Zero(seed)
		seed = next
	}
	kp, err := s.FromSeed(seed)
	if err != nil {
		secure.Zero(seed)
		return nil, nil, err
	}
	return kp, seed, nil
}

// parsePublicKey implements ParsePublicKey for any scheme given a
// validity check for the raw key bytes.
func parsePublicKey(s Scheme, text string, validate func([]byte) error) ([]byte, ss58.NetworkVersion, bool, error) {
	if strings.HasPrefix(text, "0x") {
		pub, err := hex.DecodeString(text[2:])
		if err != nil {
			return nil, 0, false, fmt.Errorf("decoding public key hex: %w", err)
		}
		if len(pub) != s.PublicKeySize() {
			return nil, 0, false, fmt.Errorf("public key must be %d bytes, got %d", s.PublicKeySize(), len(pub))
		}
		if err := validate(pub); err != nil {
			return nil, 0, false, err
		}
		return pub, ss58.DefaultVersion, false, nil
	}
	pub, version, err := ss58.Decode(text, s.PublicKeySize())
	if err != nil {
		return nil, 0, false, err
	}
	if err := validate(pub); err != nil {
		return nil, 0, false, err
	}
	return pub, version, true, nil
}
