// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 Keyfold Authors

package ss58

import (
	"bytes"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// alicePubHex / aliceAddr is a well-known sr25519 development key and
// its version-42 address.
const (
	alicePubHex = "d43593c715fdd31c61141abd04a99fd6822c8558854ccde39a5684e7a56da27d"
	aliceAddr   = "5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY"
)

// TestEncodeKnownVector checks the codec against a published address.
func TestEncodeKnownVector(t *testing.T) {
	pub, err := hex.DecodeString(alicePubHex)
	if err != nil {
		t.Fatalf("bad test fixture: %v", err)
	}
	addr, err := Encode(pub, 42)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if addr != aliceAddr {
		t.Errorf("Encode = %s, want %s", addr, aliceAddr)
	}
}

// TestDecodeRoundTrip verifies Encode/Decode invert each other across
// several versions.
func TestDecodeRoundTrip(t *testing.T) {
	payload := bytes.Repeat([]byte{0xab}, 32)
	for _, version := range []NetworkVersion{0, 2, 42, 63} {
		addr, err := Encode(payload, version)
		if err != nil {
			t.Fatalf("Encode(version=%d) failed: %v", version, err)
		}
		got, gotVersion, err := Decode(addr, 32)
		if err != nil {
			t.Fatalf("Decode(version=%d) failed: %v", version, err)
		}
		if !bytes.Equal(got, payload) {
			t.Errorf("version %d: payload mismatch", version)
		}
		if gotVersion != version {
			t.Errorf("version = %d, want %d", gotVersion, version)
		}
	}
}

// TestEncodeVersionRange verifies versions above the one-byte range are
// rejected.
func TestEncodeVersionRange(t *testing.T) {
	if _, err := Encode(make([]byte, 32), 64); !errors.Is(err, ErrVersionRange) {
		t.Errorf("Encode(version=64) = %v, want ErrVersionRange", err)
	}
}

// TestDecodeBadChecksum verifies a corrupted address fails checksum
// verification.
func TestDecodeBadChecksum(t *testing.T) {
	addr, err := Encode(bytes.Repeat([]byte{0x11}, 32), 42)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	// Swap a middle character for a different base58 digit.
	b := []byte(addr)
	mid := len(b) / 2
	if b[mid] == '2' {
		b[mid] = '3'
	} else {
		b[mid] = '2'
	}
	if _, _, err := Decode(string(b), 32); !errors.Is(err, ErrChecksum) {
		t.Errorf("Decode(corrupted) = %v, want ErrChecksum", err)
	}
}

// TestDecodeWrongLength verifies payload length is enforced.
func TestDecodeWrongLength(t *testing.T) {
	addr, err := Encode(make([]byte, 32), 42)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if _, _, err := Decode(addr, 33); !errors.Is(err, ErrLength) {
		t.Errorf("Decode(payloadLen=33) = %v, want ErrLength", err)
	}
}

// TestDecodeNotBase58 verifies garbage input reports a decode error.
func TestDecodeNotBase58(t *testing.T) {
	if _, _, err := Decode("0OIl not base58", 32); err == nil {
		t.Error("Decode should fail on non-base58 input")
	}
}

// TestLookup exercises name and decimal resolution.
func TestLookup(t *testing.T) {
	tests := []struct {
		network string
		want    NetworkVersion
		wantErr bool
	}{
		{"polkadot", 0, false},
		{"kusama", 2, false},
		{"substrate", 42, false},
		{"7", 7, false},
		{"63", 63, false},
		{"64", 0, true},
		{"atlantis", 0, true},
	}
	for _, tc := range tests {
		got, err := Lookup(tc.network)
		if tc.wantErr {
			if err == nil {
				t.Errorf("Lookup(%q) should fail", tc.network)
			}
			continue
		}
		if err != nil {
			t.Errorf("Lookup(%q) failed: %v", tc.network, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Lookup(%q) = %d, want %d", tc.network, got, tc.want)
		}
	}
}

// TestName verifies registered versions map back to names and
// unregistered ones fall back to decimal.
func TestName(t *testing.T) {
	if got := Name(0); got != "polkadot" {
		t.Errorf("Name(0) = %q, want polkadot", got)
	}
	if got := Name(37); got != "37" {
		t.Errorf("Name(37) = %q, want 37", got)
	}
}

// TestLoadNetworks merges a custom registry file and verifies lookups
// see the new entry.
func TestLoadNetworks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "networks.yaml")
	data := "networks:\n  - name: mychain\n    version: 11\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	if err := LoadNetworks(path); err != nil {
		t.Fatalf("LoadNetworks failed: %v", err)
	}
	v, err := Lookup("mychain")
	if err != nil {
		t.Fatalf("Lookup(mychain) failed: %v", err)
	}
	if v != 11 {
		t.Errorf("Lookup(mychain) = %d, want 11", v)
	}
	if got := Name(11); got != "mychain" {
		t.Errorf("Name(11) = %q, want mychain", got)
	}
}

// TestLoadNetworksRejectedWhole verifies a file with a bad entry leaves
// the registry untouched, including its earlier valid entries.
func TestLoadNetworksRejectedWhole(t *testing.T) {
	path := filepath.Join(t.TempDir(), "networks.yaml")
	data := "networks:\n" +
		"  - name: firstchain\n    version: 21\n" +
		"  - name: secondchain\n    version: 22\n" +
		"  - name: badchain\n    version: 99\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	if err := LoadNetworks(path); err == nil {
		t.Fatal("LoadNetworks should fail on the invalid entry")
	}
	if _, err := Lookup("firstchain"); err == nil {
		t.Error("a rejected file must not merge its earlier entries")
	}
	if _, err := Lookup("secondchain"); err == nil {
		t.Error("a rejected file must not merge its earlier entries")
	}
}

// TestLoadNetworksRejectsBadEntries verifies invalid registry files are
// refused.
func TestLoadNetworksRejectsBadEntries(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		data string
	}{
		{"empty-name", "networks:\n  - name: \"\"\n    version: 5\n"},
		{"version-range", "networks:\n  - name: big\n    version: 99\n"},
		{"bad-yaml", "networks: [unterminated\n"},
	}
	for _, tc := range tests {
		path := filepath.Join(dir, tc.name+".yaml")
		if err := os.WriteFile(path, []byte(tc.data), 0o600); err != nil {
			t.Fatalf("writing fixture: %v", err)
		}
		if err := LoadNetworks(path); err == nil {
			t.Errorf("%s: LoadNetworks should fail", tc.name)
		}
	}
}
