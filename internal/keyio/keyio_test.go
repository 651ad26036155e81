// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 Keyfold Authors

package keyio

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestDecodeHex exercises the prefix handling and error cases of the
// hex decoder.
func TestDecodeHex(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    []byte
		wantErr bool
	}{
		{"prefixed", "0x0a0b", []byte{0x0a, 0x0b}, false},
		{"bare", "0a0b", []byte{0x0a, 0x0b}, false},
		{"empty", "", []byte{}, false},
		{"prefix-only", "0x", []byte{}, false},
		{"bad-digits", "0xzz", nil, true},
		{"odd-length", "abc", nil, true},
	}
	for _, tc := range tests {
		got, err := DecodeHex([]byte(tc.in))
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidHex) {
				t.Errorf("%s: DecodeHex = %v, want ErrInvalidHex", tc.name, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: DecodeHex failed: %v", tc.name, err)
			continue
		}
		if !bytes.Equal(got, tc.want) {
			t.Errorf("%s: DecodeHex = %x, want %x", tc.name, got, tc.want)
		}
	}
}

// TestReadMessageArgument verifies a message argument is always treated
// as hex text regardless of the stdin decode flag.
func TestReadMessageArgument(t *testing.T) {
	for _, decode := range []bool{true, false} {
		got, err := ReadMessage("0x0a0b", decode)
		if err != nil {
			t.Fatalf("ReadMessage(decode=%v) failed: %v", decode, err)
		}
		if !bytes.Equal(got, []byte{0x0a, 0x0b}) {
			t.Errorf("ReadMessage(decode=%v) = %x, want 0a0b", decode, got)
		}
	}
	if _, err := ReadMessage("0xzz", false); !errors.Is(err, ErrInvalidHex) {
		t.Errorf("ReadMessage(bad hex) = %v, want ErrInvalidHex", err)
	}
}

// TestReadMessageFromStream verifies stdin payloads are raw bytes unless
// decoding was requested.
func TestReadMessageFromStream(t *testing.T) {
	got, err := readMessageFrom(strings.NewReader("0x0a0b"), true)
	if err != nil {
		t.Fatalf("readMessageFrom(decode) failed: %v", err)
	}
	if !bytes.Equal(got, []byte{0x0a, 0x0b}) {
		t.Errorf("decoded stream = %x, want 0a0b", got)
	}

	got, err = readMessageFrom(strings.NewReader("0x0a0b"), false)
	if err != nil {
		t.Fatalf("readMessageFrom(raw) failed: %v", err)
	}
	if !bytes.Equal(got, []byte("0x0a0b")) {
		t.Errorf("raw stream = %q, want the literal text", got)
	}

	if _, err := readMessageFrom(strings.NewReader("not hex"), true); !errors.Is(err, ErrInvalidHex) {
		t.Errorf("readMessageFrom(bad hex) = %v, want ErrInvalidHex", err)
	}
}

// TestReadIdentifierFile verifies file contents win over the literal
// argument and trailing whitespace is stripped.
func TestReadIdentifierFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suri")
	if err := os.WriteFile(path, []byte("//Alice///pw \n"), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	got, err := ReadIdentifier(path)
	if err != nil {
		t.Fatalf("ReadIdentifier failed: %v", err)
	}
	if got != "//Alice///pw" {
		t.Errorf("ReadIdentifier = %q, want %q", got, "//Alice///pw")
	}
}

// TestReadIdentifierLiteral verifies a non-file argument passes through
// unchanged.
func TestReadIdentifierLiteral(t *testing.T) {
	got, err := ReadIdentifier("//Alice")
	if err != nil {
		t.Fatalf("ReadIdentifier failed: %v", err)
	}
	if got != "//Alice" {
		t.Errorf("ReadIdentifier = %q, want %q", got, "//Alice")
	}
}

// TestReadIdentifierDirectory verifies a directory path is treated as a
// literal identifier, not opened.
func TestReadIdentifierDirectory(t *testing.T) {
	dir := t.TempDir()
	got, err := ReadIdentifier(dir)
	if err != nil {
		t.Fatalf("ReadIdentifier failed: %v", err)
	}
	if got != dir {
		t.Errorf("ReadIdentifier = %q, want the literal path", got)
	}
}
