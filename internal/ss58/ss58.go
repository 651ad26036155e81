// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 Keyfold Authors

// Package ss58 implements the SS58 address codec: a base58 text encoding
// of a public key prefixed with a one-byte network version and suffixed
// with a truncated blake2b checksum.
package ss58

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/blake2b"
)

// NetworkVersion identifies the address-checksum namespace (mainnet,
// testnet, custom). Only the simple one-byte range is supported.
type NetworkVersion uint16

// checksumPrefix is hashed together with the versioned payload. It is
// fixed by the SS58 specification and must never change.
const checksumPrefix = "SS58PRE"

// maxSimpleVersion is the largest version expressible in the one-byte
// address format.
const maxSimpleVersion = 63

var (
	ErrVersionRange = errors.New("network version out of one-byte range")
	ErrChecksum     = errors.New("address checksum mismatch")
	ErrLength       = errors.New("address payload has unexpected length")
)

// Encode renders payload (a public key or account id) as a checksummed
// address under the given network version.
func Encode(payload []byte, version NetworkVersion) (string, error) {
	if version > maxSimpleVersion {
		return "", fmt.Errorf("%w: %d", ErrVersionRange, version)
	}
	body := make([]byte, 0, 1+len(payload)+2)
	body = append(body, byte(version))
	body = append(body, payload...)
	sum := checksum(body)
	body = append(body, sum[:2]...)
	return base58.Encode(body), nil
}

// Decode parses a checksummed address, verifying the checksum and that
// the payload is exactly payloadLen bytes. It returns the payload and
// the embedded network version.
func Decode(s string, payloadLen int) ([]byte, NetworkVersion, error) {
	raw, err := base58.Decode(s)
	if err != nil {
		return nil, 0, fmt.Errorf("decoding base58: %w", err)
	}
	if len(raw) != 1+payloadLen+2 {
		return nil, 0, fmt.Errorf("%w: got %d bytes", ErrLength, len(raw))
	}
	if raw[0] > maxSimpleVersion {
		return nil, 0, fmt.Errorf("%w: %d", ErrVersionRange, raw[0])
	}
	body := raw[:1+payloadLen]
	sum := checksum(body)
	if !bytes.Equal(sum[:2], raw[1+payloadLen:]) {
		return nil, 0, ErrChecksum
	}
	payload := make([]byte, payloadLen)
	copy(payload, body[1:])
	return payload, NetworkVersion(raw[0]), nil
}

func checksum(body []byte) [64]byte {
	input := make([]byte, 0, len(checksumPrefix)+len(body))
	input = append(input, checksumPrefix...)
	input = append(input, body...)
	return blake2b.Sum512(input)
}
