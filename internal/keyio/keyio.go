// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 Keyfold Authors

// Package keyio obtains identifiers and message payloads from the
// places a command line offers them: arguments, files, stdin and an
// echo-suppressed terminal prompt.
package keyio

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"
)

var (
	// ErrInvalidHex marks a malformed hex payload; the wrapped error
	// carries the decoder's diagnostic.
	ErrInvalidHex = errors.New("invalid hex")

	// ErrNoTerminal is returned when an identifier must be prompted for
	// but stdin is not a terminal.
	ErrNoTerminal = errors.New("no terminal available for secret prompt")
)

// ReadIdentifier returns the effective identifier for an optional
// argument: the contents of arg when it names an existing regular file
// (trailing whitespace stripped), arg itself otherwise, or an
// echo-suppressed prompt when arg is empty.
func ReadIdentifier(arg string) (string, error) {
	if arg != "" {
		if st, err := os.Stat(arg); err == nil && st.Mode().IsRegular() {
			data, err := os.ReadFile(arg)
			if err != nil {
				return "", fmt.Errorf("reading identifier file: %w", err)
			}
			return strings.TrimRight(string(data), " \t\r\n"), nil
		}
		return arg, nil
	}
	return promptSecret("URI: ")
}

// promptSecret reads one line from the terminal with echo suppressed.
// The prompt goes to stderr so stdout stays clean for scripted output.
func promptSecret(prompt string) (string, error) {
	fd := int(syscall.Stdin)
	if !term.IsTerminal(fd) {
		return "", ErrNoTerminal
	}
	fmt.Fprint(os.Stderr, prompt)
	line, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading secret from terminal: %w", err)
	}
	return string(line), nil
}

// ReadMessage returns the message payload. A non-empty argument is
// always treated as hex text; an empty argument reads stdin to EOF and
// hex-decodes the bytes only when decode is set.
func ReadMessage(arg string, decode bool) ([]byte, error) {
	if arg != "" {
		return DecodeHex([]byte(arg))
	}
	return readMessageFrom(os.Stdin, decode)
}

func readMessageFrom(r io.Reader, decode bool) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading message from stdin: %w", err)
	}
	if decode {
		return DecodeHex(data)
	}
	return data, nil
}

// DecodeHex decodes hex text, stripping one leading "0x" if present.
func DecodeHex(msg []byte) ([]byte, error) {
	if len(msg) >= 2 && msg[0] == '0' && msg[1] == 'x' {
		msg = msg[2:]
	}
	out := make([]byte, hex.DecodedLen(len(msg)))
	n, err := hex.Decode(out, msg)
	if err != nil {
		return nil, fmt.Errorf("%w (%v)", ErrInvalidHex, err)
	}
	return out[:n], nil
}
