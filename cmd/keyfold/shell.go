// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 Keyfold Authors

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"

	"github.com/keyfold/keyfold/internal/resolve"
	"github.com/keyfold/keyfold/internal/scheme"
	"github.com/keyfold/keyfold/internal/ss58"
)

// shellState is the REPL's mutable configuration: every non-command
// line is inspected under these settings.
type shellState struct {
	scheme   scheme.CryptoScheme
	override *ss58.NetworkVersion
	mode     resolve.OutputMode
}

func cmdShell(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("shell takes no arguments")
	}

	fmt.Println("keyfold shell — type a phrase, URI or public key to inspect it")
	fmt.Println("Commands: scheme <name>, network <name>, json, text, help, exit")

	homeDir, _ := os.UserHomeDir()
	historyFile := filepath.Join(homeDir, ".keyfold_history")

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "keyfold> ",
		HistoryFile:     historyFile,
		HistoryLimit:    500,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("initializing shell: %w", err)
	}
	defer func() {
		_ = rl.Close() // Best-effort close on exit
	}()

	state := &shellState{scheme: scheme.Sr25519, mode: resolve.OutputText}
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if done := state.execute(line); done {
			return nil
		}
	}
}

// execute runs one shell line; it returns true when the shell should
// exit.
func (s *shellState) execute(line string) bool {
	fields := strings.Fields(line)
	switch fields[0] {
	case "exit", "quit":
		return true
	case "help":
		fmt.Println("scheme <ecdsa|sr25519|ed25519>  select the crypto scheme")
		fmt.Println("network <name|version>          set the address network override")
		fmt.Println("json / text                     select the output mode")
		fmt.Println("exit                            leave the shell")
		fmt.Println("anything else is inspected as a phrase, URI or public key")
	case "scheme":
		if len(fields) != 2 {
			fmt.Println("usage: scheme <ecdsa|sr25519|ed25519>")
			return false
		}
		cs, err := scheme.ParseScheme(fields[1])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return false
		}
		s.scheme = cs
		fmt.Printf("scheme set to %s\n", cs)
	case "network":
		if len(fields) != 2 {
			fmt.Println("usage: network <name|version>")
			return false
		}
		v, err := ss58.Lookup(fields[1])
		if err != nil {
			fmt.Printf("Error: %v (known: %s)\n", err, strings.Join(ss58.Networks(), ", "))
			return false
		}
		s.override = &v
		fmt.Printf("network set to %s\n", ss58.Name(v))
	case "json":
		s.mode = resolve.OutputJSON
		fmt.Println("output mode set to json")
	case "text":
		s.mode = resolve.OutputText
		fmt.Println("output mode set to text")
	default:
		s.inspect(line)
	}
	return false
}

func (s *shellState) inspect(identifier string) {
	id, err := resolve.Identity(identifier, nil, s.scheme, s.override)
	if errors.Is(err, resolve.ErrInvalidIdentifier) {
		fmt.Println("Invalid phrase/URI given")
		return
	}
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	out, err := id.Render(s.mode)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Println(out)
}
