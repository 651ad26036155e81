// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 Keyfold Authors

package resolve

import (
	"encoding/json"
	"fmt"

	"github.com/keyfold/keyfold/internal/ss58"
)

// OutputMode selects between the human template and structured JSON.
type OutputMode int

const (
	OutputText OutputMode = iota
	OutputJSON
)

// ParseOutputMode maps an output mode name to its value.
func ParseOutputMode(s string) (OutputMode, error) {
	switch s {
	case "text":
		return OutputText, nil
	case "json":
		return OutputJSON, nil
	default:
		return 0, fmt.Errorf("unknown output mode %q (want text or json)", s)
	}
}

// seedAbsent is printed in place of a seed the derivation could not
// recover. Scripts key on this exact string.
const seedAbsent = "n/a"

// The JSON field sets are fixed per stage; the field names double as
// the indicator of which stage matched. Key order and indentation are
// part of the output contract.

type phraseJSON struct {
	SecretPhrase string `json:"secretPhrase"`
	SecretSeed   string `json:"secretSeed"`
	PublicKey    string `json:"publicKey"`
	AccountID    string `json:"accountId"`
	SS58Address  string `json:"ss58Address"`
}

type uriJSON struct {
	SecretKeyURI string `json:"secretKeyUri"`
	SecretSeed   string `json:"secretSeed"`
	PublicKey    string `json:"publicKey"`
	AccountID    string `json:"accountId"`
	SS58Address  string `json:"ss58Address"`
}

type publicJSON struct {
	PublicKeyURI string `json:"publicKeyUri"`
	NetworkID    string `json:"networkId"`
	PublicKey    string `json:"publicKey"`
	AccountID    string `json:"accountId"`
	SS58Address  string `json:"ss58Address"`
}

// Render produces the identity in the requested output mode. The text
// templates and JSON layouts are byte-stable across releases.
func (id *ResolvedIdentity) Render(mode OutputMode) (string, error) {
	switch mode {
	case OutputJSON:
		return id.renderJSON()
	case OutputText:
		return id.renderText(), nil
	default:
		return "", fmt.Errorf("unknown output mode %d", int(mode))
	}
}

func (id *ResolvedIdentity) seedOrAbsent() string {
	if id.SeedHex == "" {
		return seedAbsent
	}
	return id.SeedHex
}

func (id *ResolvedIdentity) renderJSON() (string, error) {
	var v any
	switch id.Stage {
	case StagePhrase:
		v = phraseJSON{
			SecretPhrase: id.Identifier,
			SecretSeed:   id.SeedHex,
			PublicKey:    id.PublicKeyHex,
			AccountID:    id.AccountIDHex,
			SS58Address:  id.Address,
		}
	case StageURI:
		v = uriJSON{
			SecretKeyURI: id.Identifier,
			SecretSeed:   id.seedOrAbsent(),
			PublicKey:    id.PublicKeyHex,
			AccountID:    id.AccountIDHex,
			SS58Address:  id.Address,
		}
	case StagePublic:
		v = publicJSON{
			PublicKeyURI: id.Identifier,
			NetworkID:    ss58.Name(id.Network),
			PublicKey:    id.PublicKeyHex,
			AccountID:    id.AccountIDHex,
			SS58Address:  id.Address,
		}
	default:
		return "", fmt.Errorf("unknown resolution stage %d", int(id.Stage))
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("rendering identity: %w", err)
	}
	return string(out), nil
}

func (id *ResolvedIdentity) renderText() string {
	switch id.Stage {
	case StagePhrase:
		return fmt.Sprintf("Secret phrase `%s` is account:\n"+
			"  Secret seed:      %s\n"+
			"  Public key (hex): %s\n"+
			"  Account ID:       %s\n"+
			"  SS58 Address:     %s",
			id.Identifier, id.SeedHex, id.PublicKeyHex, id.AccountIDHex, id.Address)
	case StageURI:
		return fmt.Sprintf("Secret Key URI `%s` is account:\n"+
			"  Secret seed:      %s\n"+
			"  Public key (hex): %s\n"+
			"  Account ID:       %s\n"+
			"  SS58 Address:     %s",
			id.Identifier, id.seedOrAbsent(), id.PublicKeyHex, id.AccountIDHex, id.Address)
	default:
		return fmt.Sprintf("Public Key URI `%s` is account:\n"+
			"  Network ID/version: %s\n"+
			"  Public key (hex):   %s\n"+
			"  Account ID:         %s\n"+
			"  SS58 Address:       %s",
			id.Identifier, ss58.Name(id.Network), id.PublicKeyHex, id.AccountIDHex, id.Address)
	}
}
