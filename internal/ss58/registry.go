// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 Keyfold Authors

package ss58

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"sync"

	"gopkg.in/yaml.v3"
)

// DefaultVersion is the generic development network ("substrate").
const DefaultVersion NetworkVersion = 42

// registry maps network names to versions. Built-in entries follow the
// SS58 registry; custom entries can be merged from a yaml file at
// startup. Reads vastly outnumber writes, hence the RWMutex.
type registryState struct {
	mu        sync.RWMutex
	byName    map[string]NetworkVersion
	byVersion map[NetworkVersion]string
}

var registry = newRegistry()

func newRegistry() *registryState {
	r := &registryState{
		byName:    make(map[string]NetworkVersion),
		byVersion: make(map[NetworkVersion]string),
	}
	for name, v := range map[string]NetworkVersion{
		"polkadot":  0,
		"kusama":    2,
		"edgeware":  7,
		"kulupu":    16,
		"substrate": 42,
	} {
		r.byName[name] = v
		r.byVersion[v] = name
	}
	return r
}

// Lookup resolves a network given by name ("kusama") or decimal version
// ("2") to its NetworkVersion.
func Lookup(network string) (NetworkVersion, error) {
	registry.mu.RLock()
	v, ok := registry.byName[network]
	registry.mu.RUnlock()
	if ok {
		return v, nil
	}
	if n, err := strconv.ParseUint(network, 10, 16); err == nil {
		if n > maxSimpleVersion {
			return 0, fmt.Errorf("%w: %d", ErrVersionRange, n)
		}
		return NetworkVersion(n), nil
	}
	return 0, fmt.Errorf("unknown network %q", network)
}

// Name returns the registered name for a version, or its decimal string
// when the version has no registered name.
func Name(v NetworkVersion) string {
	registry.mu.RLock()
	name, ok := registry.byVersion[v]
	registry.mu.RUnlock()
	if ok {
		return name
	}
	return strconv.Itoa(int(v))
}

// Networks returns the registered network names, sorted.
func Networks() []string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	names := make([]string, 0, len(registry.byName))
	for name := range registry.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// networkFile is the yaml shape of a custom network registry file:
//
//	networks:
//	  - name: mychain
//	    version: 11
type networkFile struct {
	Networks []struct {
		Name    string `yaml:"name"`
		Version uint16 `yaml:"version"`
	} `yaml:"networks"`
}

// LoadNetworks merges custom networks from a yaml file into the
// registry. Later entries override earlier ones of the same name. A
// file with any invalid entry is rejected whole; the registry is only
// touched once every entry has validated.
func LoadNetworks(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading network registry: %w", err)
	}
	var file networkFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parsing network registry: %w", err)
	}
	for _, n := range file.Networks {
		if n.Name == "" {
			return fmt.Errorf("network registry entry with empty name")
		}
		if n.Version > maxSimpleVersion {
			return fmt.Errorf("network %q: %w: %d", n.Name, ErrVersionRange, n.Version)
		}
	}
	registry.mu.Lock()
	defer registry.mu.Unlock()
	for _, n := range file.Networks {
		registry.byName[n.Name] = NetworkVersion(n.Version)
		registry.byVersion[NetworkVersion(n.Version)] = n.Name
	}
	return nil
}
