// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 Keyfold Authors

// keyfold inspects and derives account identities from seed phrases,
// secret URIs and public keys, across the ecdsa, sr25519 and ed25519
// signature schemes.
//
// Usage:
//
//	keyfold inspect [flags] [uri]
//	keyfold generate [flags]
//	keyfold sign [flags] [uri]
//	keyfold verify [flags] <signature> [uri]
//	keyfold shell
package main

import (
	"fmt"
	"os"

	"github.com/keyfold/keyfold/internal/util"
	"github.com/keyfold/keyfold/internal/version"
)

func main() {
	util.InitLogger()

	// Handle --version before subcommand dispatch
	if versionRequested(os.Args[1:]) {
		fmt.Printf("keyfold %s\n", version.String())
		os.Exit(0)
	}

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "inspect":
		err = cmdInspect(os.Args[2:])
	case "generate":
		err = cmdGenerate(os.Args[2:])
	case "sign":
		err = cmdSign(os.Args[2:])
	case "verify":
		err = cmdVerify(os.Args[2:])
	case "shell":
		err = cmdShell(os.Args[2:])
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n", os.Args[1])
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// versionRequested reports whether the first argument asks for the
// version. Only the first position counts: later arguments belong to a
// subcommand and may be positional values that merely look like the
// flag.
func versionRequested(args []string) bool {
	return len(args) > 0 && (args[0] == "--version" || args[0] == "-version")
}

func usage() {
	fmt.Fprintf(os.Stderr, "keyfold — account identity inspection and derivation\n\n")
	fmt.Fprintf(os.Stderr, "Usage:\n")
	fmt.Fprintf(os.Stderr, "  keyfold inspect [flags] [uri]          Resolve a phrase/URI/public key to an account\n")
	fmt.Fprintf(os.Stderr, "  keyfold generate [flags]               Generate a new seed phrase and show its account\n")
	fmt.Fprintf(os.Stderr, "  keyfold sign [flags] [uri]             Sign a message with the key behind a URI\n")
	fmt.Fprintf(os.Stderr, "  keyfold verify [flags] <sig> [uri]     Verify a signature against a URI or public key\n")
	fmt.Fprintf(os.Stderr, "  keyfold shell                          Interactive inspection shell\n")
	fmt.Fprintf(os.Stderr, "  keyfold --version                      Show version\n")
	fmt.Fprintf(os.Stderr, "\nIf no uri argument is given, inspect and sign prompt for one on the terminal;\n")
	fmt.Fprintf(os.Stderr, "a uri argument naming an existing file is read from that file.\n")
}
