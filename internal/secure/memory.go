// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 Keyfold Authors

// Package secure provides zeroing containers for key material and
// passwords. Nothing in this package ever logs or formats its contents.
package secure

import (
	"crypto/subtle"
	"runtime"
	"sync"
)

// Zero overwrites a byte slice with zeros.
// Uses constant-time operation to prevent compiler optimization.
func Zero(b []byte) {
	if len(b) == 0 {
		return
	}
	subtle.ConstantTimeCopy(1, b, make([]byte, len(b)))
	runtime.KeepAlive(b)
}

// Secret holds sensitive bytes (a password, a seed) with explicit
// destruction. The zero value is an empty, destroyed secret.
type Secret struct {
	mu   sync.RWMutex
	data []byte
}

// NewSecret copies b into a fresh Secret. The caller may zero the
// original immediately afterwards.
func NewSecret(b []byte) *Secret {
	if len(b) == 0 {
		return &Secret{}
	}
	data := make([]byte, len(b))
	copy(data, b)
	return &Secret{data: data}
}

// NewSecretString wraps a string. The string itself cannot be zeroed;
// callers that can obtain bytes instead should prefer NewSecret.
func NewSecretString(s string) *Secret {
	return NewSecret([]byte(s))
}

// WithBytes gives fn scoped access to the underlying bytes without
// making a copy. The slice must not be retained past the callback.
func (s *Secret) WithBytes(fn func([]byte) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.data)
}

// WithString gives fn scoped access to the secret as a string. The
// conversion makes one transient copy that the runtime owns; use only
// where an API demands a string.
func (s *Secret) WithString(fn func(string) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(string(s.data))
}

// Destroy zeros the secret. The Secret must not be used afterwards.
func (s *Secret) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()
	Zero(s.data)
	s.data = nil
}

// Empty reports whether the secret holds no bytes.
func (s *Secret) Empty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data) == 0
}
