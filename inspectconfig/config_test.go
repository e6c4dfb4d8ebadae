// Copyright 2026 The Chunkcodec Authors
// SPDX-License-Identifier: Apache-2.0

package inspectconfig

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleYAML = `
profiles:
  default:
    type_ids: ["example.Greeting"]
    decode:
      string_dedup: true
      ref_tracking: false
      compress_headers_above: 256
  raw:
    decode:
      version: 1
`

func writeSample(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "inspect.yaml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadParsesProfiles(t *testing.T) {
	cfg, err := Load(writeSample(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	def := cfg.Profile("default")
	if !def.AllowsType("example.Greeting") {
		t.Fatalf("default profile should allow example.Greeting")
	}
	if def.AllowsType("example.Other") {
		t.Fatalf("default profile should not allow example.Other")
	}
	if !def.Decode.StringDedup {
		t.Fatalf("default profile should have string_dedup enabled")
	}
	if def.Decode.CompressHeadersAbove != 256 {
		t.Fatalf("compress_headers_above = %d, want 256", def.Decode.CompressHeadersAbove)
	}
}

func TestProfileAllowsAnyTypeWhenUnrestricted(t *testing.T) {
	cfg, err := Load(writeSample(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	raw := cfg.Profile("raw")
	if !raw.AllowsType("anything.AtAll") {
		t.Fatalf("profile with no declared type_ids should allow any type id")
	}
}

func TestProfileFallsBackToDefaultWhenMissing(t *testing.T) {
	cfg, err := Load(writeSample(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	missing := cfg.Profile("nonexistent")
	if !missing.AllowsType("anything") {
		t.Fatalf("missing profile should fall back to the permissive DefaultProfile")
	}
}

func TestResolvePrefersFlagOverEnv(t *testing.T) {
	flagPath := writeSample(t)
	t.Setenv(EnvVar, filepath.Join(t.TempDir(), "unused.yaml"))

	cfg, err := Resolve(flagPath)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg == nil {
		t.Fatalf("Resolve returned nil Config for a valid flag path")
	}
}

func TestResolveFallsBackToEnv(t *testing.T) {
	path := writeSample(t)
	t.Setenv(EnvVar, path)

	cfg, err := Resolve("")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg == nil {
		t.Fatalf("Resolve returned nil Config when %s was set", EnvVar)
	}
}

func TestResolveWithNeitherFlagNorEnvReturnsNilConfig(t *testing.T) {
	t.Setenv(EnvVar, "")

	cfg, err := Resolve("")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg != nil {
		t.Fatalf("Resolve should return a nil Config when nothing names a file")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err == nil {
		t.Fatalf("Load should fail for a missing file")
	}
}
