// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 Keyfold Authors

// Package suri parses secret URIs: a seed phrase or hex seed, followed
// by an optional hierarchical derivation path and an optional password.
//
//	phrase-or-seed [/soft-junction | //hard-junction]* [///password]
//
// A URI that starts with a junction (e.g. "//Alice") derives from the
// well-known development phrase.
package suri

import (
	"crypto/rand"
	"crypto/sha512"
	"encoding/binary"
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/tyler-smith/go-bip39"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/pbkdf2"
)

// DevPhrase is the well-known development seed phrase substituted when
// a URI carries a derivation path but no phrase of its own.
const DevPhrase = "bottom drive obey lake curtain smoke basket hold race lonely fit walk"

// SeedSize is the byte length of the seed recovered from a phrase.
const SeedSize = 32

// phraseSeedRounds is the PBKDF2 iteration count fixed by the phrase
// derivation scheme.
const phraseSeedRounds = 2048

var (
	ErrInvalidURI    = errors.New("invalid secret URI")
	ErrInvalidPhrase = errors.New("invalid seed phrase")
)

var (
	secretURIRe = regexp.MustCompile(`^(?P<phrase>[\d\w ]+)?(?P<path>(//?[^/]+)*)(///(?P<password>.*))?$`)
	junctionRe  = regexp.MustCompile(`/(/?[^/]+)`)
)

// Junction is one component of a derivation path with its 32-byte
// chain code. Hard junctions derive a fresh secret; soft junctions
// (sr25519 only) derive related keys whose seed is unrecoverable.
type Junction struct {
	Hard      bool
	ChainCode [32]byte
}

// SURI is the parsed form of a secret URI.
type SURI struct {
	// Phrase is the seed phrase or hex seed component; DevPhrase when
	// the URI had none.
	Phrase string

	// Junctions is the derivation path, outermost first.
	Junctions []Junction

	// Password is the ///-suffix password. HasPassword distinguishes an
	// empty password from an absent one.
	Password    string
	HasPassword bool
}

// Parse splits a secret URI into phrase, derivation path and password.
// It performs no key derivation and does not validate the phrase.
func Parse(s string) (*SURI, error) {
	m := secretURIRe.FindStringSubmatch(s)
	if m == nil {
		return nil, fmt.Errorf("%w: %q does not match the URI grammar", ErrInvalidURI, redact(s))
	}
	names := secretURIRe.SubexpNames()
	var phrase, path, password string
	hasPassword := false
	for i, name := range names {
		switch name {
		case "phrase":
			phrase = m[i]
		case "path":
			path = m[i]
		case "password":
			password = m[i]
			// The password group only participates when the /// marker
			// is present; group 4 is the marker plus password.
			hasPassword = m[i-1] != ""
		}
	}
	if phrase == "" {
		phrase = DevPhrase
	}

	var junctions []Junction
	for _, jm := range junctionRe.FindAllStringSubmatch(path, -1) {
		component := jm[1]
		hard := false
		if len(component) > 0 && component[0] == '/' {
			hard = true
			component = component[1:]
		}
		junctions = append(junctions, Junction{
			Hard:      hard,
			ChainCode: chainCode(component),
		})
	}

	return &SURI{
		Phrase:      phrase,
		Junctions:   junctions,
		Password:    password,
		HasPassword: hasPassword,
	}, nil
}

// chainCode encodes a junction component into its 32-byte chain code.
// A component that parses as a decimal u64 is encoded as 8 little-endian
// bytes; anything else as a length-prefixed string. Encodings longer
// than 32 bytes are hashed down with blake2b-256.
func chainCode(component string) [32]byte {
	var enc []byte
	if n, err := strconv.ParseUint(component, 10, 64); err == nil && component != "" {
		enc = make([]byte, 8)
		binary.LittleEndian.PutUint64(enc, n)
	} else {
		enc = ScaleString(component)
	}
	var cc [32]byte
	if len(enc) > 32 {
		cc = blake2b.Sum256(enc)
	} else {
		copy(cc[:], enc)
	}
	return cc
}

// ScaleString encodes s as a SCALE byte string: compact length followed
// by the raw bytes.
func ScaleString(s string) []byte {
	return append(compactUint(uint64(len(s))), s...)
}

// compactUint encodes v in the SCALE compact integer format.
func compactUint(v uint64) []byte {
	switch {
	case v < 1<<6:
		return []byte{byte(v) << 2}
	case v < 1<<14:
		buf := make([]byte, 2)
		binary.LittleEndian.PutUint16(buf, uint16(v)<<2|0b01)
		return buf
	case v < 1<<30:
		buf := make([]byte, 4)
		binary.LittleEndian.PutUint32(buf, uint32(v)<<2|0b10)
		return buf
	default:
		n := 0
		for tmp := v; tmp > 0; tmp >>= 8 {
			n++
		}
		buf := make([]byte, 1+n)
		buf[0] = byte(n-4)<<2 | 0b11
		for i := 0; i < n; i++ {
			buf[1+i] = byte(v >> (8 * i))
		}
		return buf
	}
}

// SeedFromPhrase derives the 32-byte seed from a validated mnemonic
// phrase and an optional password. The password is stretched into the
// PBKDF2 salt; it is never verified, a different password simply yields
// a different seed.
func SeedFromPhrase(phrase, password string) ([]byte, error) {
	if !bip39.IsMnemonicValid(phrase) {
		return nil, ErrInvalidPhrase
	}
	entropy, err := bip39.EntropyFromMnemonic(phrase)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPhrase, err)
	}
	salt := append([]byte("mnemonic"), password...)
	seed := pbkdf2.Key(entropy, salt, phraseSeedRounds, 64, sha512.New)
	return seed[:SeedSize], nil
}

// NewPhrase generates a fresh mnemonic of the given word count
// (12, 15, 18, 21 or 24).
func NewPhrase(words int) (string, error) {
	bits := 0
	switch words {
	case 12, 15, 18, 21, 24:
		bits = words * 32 / 3
	default:
		return "", fmt.Errorf("phrase must have 12, 15, 18, 21 or 24 words, not %d", words)
	}
	entropy := make([]byte, bits/8)
	if _, err := rand.Read(entropy); err != nil {
		return "", fmt.Errorf("gathering entropy: %w", err)
	}
	return bip39.NewMnemonic(entropy)
}

// redact truncates an identifier for inclusion in error text so that a
// full secret never lands in a message.
func redact(s string) string {
	if len(s) <= 8 {
		return s
	}
	return s[:8] + "..."
}
