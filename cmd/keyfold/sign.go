// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 Keyfold Authors

package main

import (
	"encoding/hex"
	"flag"
	"fmt"

	"github.com/keyfold/keyfold/internal/keyio"
	"github.com/keyfold/keyfold/internal/resolve"
	"github.com/keyfold/keyfold/internal/scheme"
)

func cmdSign(args []string) error {
	fs := flag.NewFlagSet("sign", flag.ExitOnError)
	var common commonFlags
	common.register(fs)
	message := fs.String("message", "", "message as hex text (default: raw bytes from stdin)")
	hexStdin := fs.Bool("hex", false, "hex-decode the message read from stdin")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cs, err := scheme.ParseScheme(common.scheme)
	if err != nil {
		return err
	}

	identifier, err := keyio.ReadIdentifier(fs.Arg(0))
	if err != nil {
		return err
	}

	msg, err := keyio.ReadMessage(*message, *hexStdin)
	if err != nil {
		return err
	}

	password := common.secret()
	defer password.Destroy()

	kp, err := resolve.Pair(identifier, password, cs)
	if err != nil {
		return err
	}
	sig, err := kp.Sign(msg)
	if err != nil {
		return err
	}
	fmt.Println(hex.EncodeToString(sig))
	return nil
}
