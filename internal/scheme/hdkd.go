// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 Keyfold Authors

package scheme

import (
	"golang.org/x/crypto/blake2b"

	"github.com/keyfold/keyfold/internal/secure"
	"github.com/keyfold/keyfold/internal/suri"
)

// HDKD domain-separation tags. The tag fixes the scheme so the same
// path under different schemes yields unrelated keys.
const (
	ed25519HDKDTag   = "Ed25519HDKD"
	secp256k1HDKDTag = "Secp256k1HDKD"
)

// hdkdSeed derives a child seed for one hard junction:
// blake2b-256 over the length-prefixed tag, the parent seed and the
// junction chain code.
func hdkdSeed(tag string, seed []byte, cc [32]byte) []byte {
	buf := make([]byte, 0, len(tag)+2+len(seed)+len(cc))
	buf = append(buf, suri.ScaleString(tag)...)
	buf = append(buf, seed...)
	buf = append(buf, cc[:]...)
	sum := blake2b.Sum256(buf)
	secure.Zero(buf)
	out := make([]byte, 32)
	copy(out, sum[:])
	return out
}
