// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 Keyfold Authors

package main

import (
	"errors"
	"flag"
	"fmt"

	"github.com/keyfold/keyfold/internal/keyio"
	"github.com/keyfold/keyfold/internal/resolve"
	"github.com/keyfold/keyfold/internal/scheme"
	"github.com/keyfold/keyfold/internal/secure"
	"github.com/keyfold/keyfold/internal/ss58"
	"github.com/keyfold/keyfold/internal/util"
)

// commonFlags carries the flags shared by the identity subcommands.
type commonFlags struct {
	scheme       string
	network      string
	password     string
	networksFile string
	json         bool
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.scheme, "scheme", "sr25519", "crypto scheme: ecdsa, sr25519 or ed25519")
	fs.StringVar(&c.network, "network", "", "network override: name or version number (default: embedded or substrate)")
	fs.StringVar(&c.password, "password", "", "derivation password (overrides a ///password in the URI)")
	fs.StringVar(&c.networksFile, "networks", "", "yaml file with custom network versions")
	fs.BoolVar(&c.json, "json", false, "structured JSON output instead of text")
}

// secret moves the password flag into a zeroing container. The caller
// owns the returned secret and must Destroy it when derivation is done.
func (c *commonFlags) secret() *secure.Secret {
	return secure.NewSecretString(c.password)
}

// resolveCommon turns the raw flag values into typed settings, loading
// the custom network registry first so -network can name its entries.
func (c *commonFlags) resolveCommon() (scheme.CryptoScheme, *ss58.NetworkVersion, resolve.OutputMode, error) {
	if c.networksFile != "" {
		if err := ss58.LoadNetworks(c.networksFile); err != nil {
			return 0, nil, 0, err
		}
	}
	cs, err := scheme.ParseScheme(c.scheme)
	if err != nil {
		return 0, nil, 0, err
	}
	var override *ss58.NetworkVersion
	if c.network != "" {
		v, err := ss58.Lookup(c.network)
		if err != nil {
			return 0, nil, 0, err
		}
		override = &v
	}
	mode := resolve.OutputText
	if c.json {
		mode = resolve.OutputJSON
	}
	return cs, override, mode, nil
}

func cmdInspect(args []string) error {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	var common commonFlags
	common.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	cs, override, mode, err := common.resolveCommon()
	if err != nil {
		return err
	}

	identifier, err := keyio.ReadIdentifier(fs.Arg(0))
	if err != nil {
		return err
	}

	password := common.secret()
	defer password.Destroy()

	id, err := resolve.Identity(identifier, password, cs, override)
	if errors.Is(err, resolve.ErrInvalidIdentifier) {
		// A non-match is a reported condition, not a failure of the
		// tool itself.
		fmt.Println("Invalid phrase/URI given")
		return nil
	}
	if err != nil {
		return err
	}
	util.Debug("resolved identifier", "stage", int(id.Stage), "scheme", id.Scheme.String(), "network", ss58.Name(id.Network))

	out, err := id.Render(mode)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}
