// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 Keyfold Authors

package main

import (
	"flag"
	"fmt"

	"github.com/keyfold/keyfold/internal/resolve"
	"github.com/keyfold/keyfold/internal/suri"
)

func cmdGenerate(args []string) error {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	var common commonFlags
	common.register(fs)
	words := fs.Int("words", 12, "seed phrase length: 12, 15, 18, 21 or 24 words")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cs, override, mode, err := common.resolveCommon()
	if err != nil {
		return err
	}

	phrase, err := suri.NewPhrase(*words)
	if err != nil {
		return err
	}

	password := common.secret()
	defer password.Destroy()

	id, err := resolve.Identity(phrase, password, cs, override)
	if err != nil {
		return fmt.Errorf("resolving generated phrase: %w", err)
	}
	out, err := id.Render(mode)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}
