// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 Keyfold Authors

package main

import (
	"flag"
	"fmt"

	"github.com/keyfold/keyfold/internal/keyio"
	"github.com/keyfold/keyfold/internal/resolve"
	"github.com/keyfold/keyfold/internal/scheme"
	"github.com/keyfold/keyfold/internal/secure"
)

func cmdVerify(args []string) error {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
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
	if fs.NArg() < 1 {
		return fmt.Errorf("verify requires a signature argument")
	}

	sig, err := keyio.DecodeHex([]byte(fs.Arg(0)))
	if err != nil {
		return err
	}

	identifier, err := keyio.ReadIdentifier(fs.Arg(1))
	if err != nil {
		return err
	}

	msg, err := keyio.ReadMessage(*message, *hexStdin)
	if err != nil {
		return err
	}

	password := common.secret()
	defer password.Destroy()

	pub, err := publicKeyFor(cs, identifier, password)
	if err != nil {
		return err
	}

	ok, err := scheme.For(cs).Verify(pub, msg, sig)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("signature invalid")
	}
	fmt.Println("Signature verifies")
	return nil
}

// publicKeyFor accepts either a bare public key identifier or a secret
// URI whose keypair supplies the public key.
func publicKeyFor(cs scheme.CryptoScheme, identifier string, password *secure.Secret) ([]byte, error) {
	if pub, _, _, err := scheme.For(cs).ParsePublicKey(identifier); err == nil {
		return pub, nil
	}
	kp, err := resolve.Pair(identifier, password, cs)
	if err != nil {
		return nil, err
	}
	return kp.Public(), nil
}
