// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 Keyfold Authors

// Package resolve turns a key identifier (seed phrase, secret URI or
// bare public key) into a fully formed account identity and renders it
// for humans or scripts.
package resolve

import (
	"encoding/hex"
	"errors"

	"github.com/keyfold/keyfold/internal/scheme"
	"github.com/keyfold/keyfold/internal/secure"
	"github.com/keyfold/keyfold/internal/ss58"
)

// ErrInvalidIdentifier is reported when no resolution stage matches.
// It is a normal, reportable outcome, not a program fault.
var ErrInvalidIdentifier = errors.New("invalid phrase/URI")

// Stage records which resolution stage produced an identity. The stage
// decides the output field set, so callers can tell how an identifier
// was interpreted without a separate tag.
type Stage int

const (
	// StagePhrase: the identifier was a bare seed phrase.
	StagePhrase Stage = iota
	// StageURI: the identifier was a secret URI (hex seed or phrase
	// plus derivation path).
	StageURI
	// StagePublic: the identifier was a bare public key.
	StagePublic
)

// ResolvedIdentity is the resolved account identity. SeedHex is empty
// when the seed is unrecoverable (soft derivation, public-key input).
type ResolvedIdentity struct {
	Identifier   string
	Stage        Stage
	Scheme       scheme.CryptoScheme
	SeedHex      string
	PublicKeyHex string
	AccountIDHex string
	Address      string
	Network      ss58.NetworkVersion
}

// Identity resolves an identifier under the given scheme. Stages are
// attempted in fixed order (phrase, then secret URI, then public key)
// and the first success wins. A stage's internal error counts as a non-match;
// detail is only reported when every stage fails, as ErrInvalidIdentifier.
//
// networkOverride, when non-nil, selects the address network; otherwise
// a version embedded in a public-key identifier applies, and the
// default network as a last resort.
//
// The password stays inside its zeroing container; derivation sees it
// only through a scoped callback. A nil or destroyed secret means no
// password.
func Identity(identifier string, password *secure.Secret, cs scheme.CryptoScheme, networkOverride *ss58.NetworkVersion) (*ResolvedIdentity, error) {
	var id *ResolvedIdentity
	err := withPassword(password, func(pw string) error {
		var err error
		id, err = identity(identifier, pw, cs, networkOverride)
		return err
	})
	if err != nil {
		return nil, err
	}
	return id, nil
}

func identity(identifier, password string, cs scheme.CryptoScheme, networkOverride *ss58.NetworkVersion) (*ResolvedIdentity, error) {
	sch := scheme.For(cs)

	version := ss58.DefaultVersion
	if networkOverride != nil {
		version = *networkOverride
	}

	if kp, seed, err := sch.FromPhrase(identifier, password); err == nil {
		return fromKeypair(identifier, StagePhrase, cs, sch, kp.Public(), seed, version)
	}

	if kp, seed, err := sch.FromURI(identifier, password); err == nil {
		return fromKeypair(identifier, StageURI, cs, sch, kp.Public(), seed, version)
	}

	if pub, embeddedVersion, embedded, err := sch.ParsePublicKey(identifier); err == nil {
		v := embeddedVersion
		if networkOverride != nil {
			v = *networkOverride
		} else if !embedded {
			v = ss58.DefaultVersion
		}
		return fromKeypair(identifier, StagePublic, cs, sch, pub, nil, v)
	}

	return nil, ErrInvalidIdentifier
}

func fromKeypair(identifier string, stage Stage, cs scheme.CryptoScheme, sch scheme.Scheme, pub, seed []byte, version ss58.NetworkVersion) (*ResolvedIdentity, error) {
	address, err := sch.SS58Address(pub, version)
	if err != nil {
		return nil, err
	}
	id := &ResolvedIdentity{
		Identifier:   identifier,
		Stage:        stage,
		Scheme:       cs,
		PublicKeyHex: hexify(pub),
		AccountIDHex: hexify(sch.AccountID(pub)),
		Address:      address,
		Network:      version,
	}
	if seed != nil {
		id.SeedHex = hexify(seed)
	}
	return id, nil
}

// Pair derives a signing keypair from a secret identifier (phrase, hex
// seed or derivation URI). Public-key identifiers cannot sign and are
// rejected here.
func Pair(identifier string, password *secure.Secret, cs scheme.CryptoScheme) (scheme.Keypair, error) {
	var kp scheme.Keypair
	err := withPassword(password, func(pw string) error {
		var err error
		kp, _, err = scheme.For(cs).FromURI(identifier, pw)
		return err
	})
	if err != nil {
		return nil, ErrInvalidIdentifier
	}
	return kp, nil
}

// withPassword gives fn scoped access to the password. A nil secret
// stands for no password.
func withPassword(password *secure.Secret, fn func(string) error) error {
	if password == nil {
		return fn("")
	}
	return password.WithString(fn)
}

func hexify(b []byte) string {
	return "0x" + hex.EncodeToString(b)
}
