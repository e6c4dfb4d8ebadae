// Copyright 2026 The Chunkcodec Authors
// SPDX-License-Identifier: Apache-2.0

package inspectconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EnvVar is the environment variable chunkcodec-inspect consults when
// --config is not passed.
const EnvVar = "CHUNKCODEC_CONFIG"

// Config is the configuration for a chunkcodec-inspect run: which type
// ids a stream is allowed to declare, and what to assume about a stream
// whose own header cannot be trusted.
type Config struct {
	// Profiles maps a profile name (selected with --profile) to its
	// settings. A run with no --profile flag uses the "default" profile
	// if present, or DefaultProfile's zero-value settings otherwise.
	Profiles map[string]Profile `yaml:"profiles"`
}

// Profile names the type identifiers chunkcodec-inspect should expect
// to see as top-level stream types, plus the decode Options to assume
// when a stream header is missing or not trusted.
type Profile struct {
	// TypeIDs lists the registry type identifiers this profile
	// recognizes as valid top-level stream types. chunkcodec-inspect
	// refuses --type values outside this list when the profile
	// declares any at all; an empty list means "accept any type id
	// present in the registry".
	TypeIDs []string `yaml:"type_ids"`

	// Decode holds the Options fields chunkcodec-inspect passes to the
	// decoder. String dedup and reference tracking are still taken from
	// each stream's own header flags, which override these values.
	Decode DecodeOptions `yaml:"decode"`
}

// DecodeOptions mirrors the subset of chunkcodec.Options a config file
// can express. It stays a plain struct, independent of
// chunkcodec.Options itself, so this package never needs to import the
// root package; chunkcodec-inspect copies its fields into a
// chunkcodec.Options.
type DecodeOptions struct {
	Version              uint8 `yaml:"version"`
	StringDedup          bool  `yaml:"string_dedup"`
	RefTracking          bool  `yaml:"ref_tracking"`
	CompressHeadersAbove int   `yaml:"compress_headers_above"`
}

// DefaultProfile is used when a run selects a profile absent from the
// loaded Config, or when no config file was loaded at all.
func DefaultProfile() Profile {
	return Profile{}
}

// Load reads and parses the YAML config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("inspectconfig: reading %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("inspectconfig: parsing %s: %w", path, err)
	}
	return &cfg, nil
}

// Resolve implements chunkcodec-inspect's explicit-only discovery
// policy: flagPath wins if non-empty, otherwise the CHUNKCODEC_CONFIG
// environment variable, otherwise no config file is loaded at all and
// (nil, nil) is returned so callers fall back to DefaultProfile.
func Resolve(flagPath string) (*Config, error) {
	path := flagPath
	if path == "" {
		path = os.Getenv(EnvVar)
	}
	if path == "" {
		return nil, nil
	}
	return Load(path)
}

// Profile looks up name, falling back to DefaultProfile if cfg is nil
// or does not contain name.
func (c *Config) Profile(name string) Profile {
	if c == nil {
		return DefaultProfile()
	}
	if p, ok := c.Profiles[name]; ok {
		return p
	}
	return DefaultProfile()
}

// AllowsType reports whether typeID is a valid top-level stream type
// under this profile: true when the profile declares no TypeIDs at
// all, or when typeID appears in the declared list.
func (p Profile) AllowsType(typeID string) bool {
	if len(p.TypeIDs) == 0 {
		return true
	}
	for _, id := range p.TypeIDs {
		if id == typeID {
			return true
		}
	}
	return false
}
