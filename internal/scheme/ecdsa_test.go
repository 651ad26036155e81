// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 Keyfold Authors

package scheme

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"

	"golang.org/x/crypto/blake2b"
)

// TestEcdsaSizes verifies the advertised seed and public key sizes.
func TestEcdsaSizes(t *testing.T) {
	s := For(Ecdsa)
	if s.SeedSize() != 32 {
		t.Errorf("SeedSize = %d, want 32", s.SeedSize())
	}
	if s.PublicKeySize() != 33 {
		t.Errorf("PublicKeySize = %d, want 33", s.PublicKeySize())
	}
	kp, _, err := s.FromURI("//Alice", "")
	if err != nil {
		t.Fatalf("FromURI failed: %v", err)
	}
	if got := len(kp.Public()); got != 33 {
		t.Errorf("public key length = %d, want 33 (compressed point)", got)
	}
}

// TestEcdsaFromSeedDeterministic verifies seed derivation and zero-seed
// rejection.
func TestEcdsaFromSeedDeterministic(t *testing.T) {
	s := For(Ecdsa)
	seed := bytes.Repeat([]byte{0x42}, 32)
	kp1, err := s.FromSeed(seed)
	if err != nil {
		t.Fatalf("FromSeed failed: %v", err)
	}
	kp2, err := s.FromSeed(seed)
	if err != nil {
		t.Fatalf("FromSeed second run failed: %v", err)
	}
	if !bytes.Equal(kp1.Public(), kp2.Public()) {
		t.Error("derivation is not deterministic")
	}
	if _, err := s.FromSeed(make([]byte, 32)); err == nil {
		t.Error("FromSeed(zero scalar) should fail")
	}
	if _, err := s.FromSeed(make([]byte, 16)); err == nil {
		t.Error("FromSeed(16 bytes) should fail")
	}
}

// TestEcdsaHardJunction verifies hard junctions replace the seed and the
// key while soft junctions are refused.
func TestEcdsaHardJunction(t *testing.T) {
	s := For(Ecdsa)
	root, rootSeed, err := s.FromURI("//Alice", "")
	if err != nil {
		t.Fatalf("FromURI failed: %v", err)
	}
	child, childSeed, err := s.FromURI("//Alice//child", "")
	if err != nil {
		t.Fatalf("FromURI(child) failed: %v", err)
	}
	if bytes.Equal(rootSeed, childSeed) {
		t.Error("hard junction should replace the seed")
	}
	if bytes.Equal(root.Public(), child.Public()) {
		t.Error("hard junction should change the public key")
	}
	if _, _, err := s.FromURI("//Alice/soft", ""); !errors.Is(err, errSoftJunction) {
		t.Errorf("FromURI(soft) = %v, want errSoftJunction", err)
	}
}

// TestEcdsaSignVerify round-trips a compact recoverable signature.
func TestEcdsaSignVerify(t *testing.T) {
	s := For(Ecdsa)
	kp, _, err := s.FromURI("//Alice", "")
	if err != nil {
		t.Fatalf("FromURI failed: %v", err)
	}
	msg := []byte("attack at dawn")
	sig, err := kp.Sign(msg)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	if len(sig) != 65 {
		t.Errorf("signature length = %d, want 65", len(sig))
	}
	ok, err := s.Verify(kp.Public(), msg, sig)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if !ok {
		t.Error("signature should verify")
	}
	ok, err = s.Verify(kp.Public(), []byte("attack at dusk"), sig)
	if err == nil && ok {
		t.Error("tampered message should not verify")
	}
}

// TestEcdsaAccountID verifies the account id is the blake2b-256 hash of
// the compressed public key.
func TestEcdsaAccountID(t *testing.T) {
	s := For(Ecdsa)
	kp, _, err := s.FromURI("//Alice", "")
	if err != nil {
		t.Fatalf("FromURI failed: %v", err)
	}
	pub := kp.Public()
	want := blake2b.Sum256(pub)
	if got := s.AccountID(pub); !bytes.Equal(got, want[:]) {
		t.Errorf("AccountID = %x, want %x", got, want)
	}
	if len(s.AccountID(pub)) != 32 {
		t.Error("account id should be 32 bytes")
	}
}

// TestEcdsaParsePublicKeyRoundTrip verifies the compressed key survives
// an address round trip and invalid points are rejected.
func TestEcdsaParsePublicKeyRoundTrip(t *testing.T) {
	s := For(Ecdsa)
	kp, _, err := s.FromURI("//Alice", "")
	if err != nil {
		t.Fatalf("FromURI failed: %v", err)
	}
	pub := kp.Public()

	addr, err := s.SS58Address(pub, 42)
	if err != nil {
		t.Fatalf("SS58Address failed: %v", err)
	}
	parsed, version, embedded, err := s.ParsePublicKey(addr)
	if err != nil {
		t.Fatalf("ParsePublicKey(address) failed: %v", err)
	}
	if !embedded || version != 42 {
		t.Errorf("address version = (%d, embedded=%v), want (42, true)", version, embedded)
	}
	if !bytes.Equal(parsed, pub) {
		t.Error("address round trip changed the key")
	}

	bogus := "0x" + hex.EncodeToString(bytes.Repeat([]byte{0x07}, 33))
	if _, _, _, err := s.ParsePublicKey(bogus); err == nil {
		t.Error("ParsePublicKey should reject an invalid curve point")
	}
}
