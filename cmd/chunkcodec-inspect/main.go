// Copyright 2026 The Chunkcodec Authors
// SPDX-License-Identifier: Apache-2.0

// chunkcodec-inspect is a diagnostic command for chunkcodec wire
// images. It reads a file, decodes it through whatever codec is
// registered for the stream's type id, and prints the result as CBOR
// diagnostic notation (RFC 8949 §8). The type id is normally sniffed
// straight off the wire's Dynamic envelope (component G, spec.md
// §4.G); --type is only needed to override that for a bare-payload
// stream written without the envelope.
//
// It does not know about any concrete Go type. Everything it prints
// comes from a codec already registered in the process registry — in
// practice, that means chunkcodec-inspect is built as a thin wrapper
// around a program that imports its own types and registers them
// before decoding, or it is pointed at a config profile whose
// type_ids are already registered by an init() elsewhere in the same
// binary.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/chunkcodec/chunkcodec"
	"github.com/chunkcodec/chunkcodec/dump"
	"github.com/chunkcodec/chunkcodec/inspectconfig"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "chunkcodec-inspect: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var (
		configPath string
		profile    string
		typeID     string
		verbose    bool
	)

	flagSet := pflag.NewFlagSet("chunkcodec-inspect", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "path to an inspectconfig YAML file (default: $CHUNKCODEC_CONFIG)")
	flagSet.StringVar(&profile, "profile", "default", "config profile to use for the fallback decode options")
	flagSet.StringVar(&typeID, "type", "", "registry type id of the stream's top-level value (default: sniffed from the stream's Dynamic envelope)")
	flagSet.BoolVarP(&verbose, "verbose", "v", false, "log decode options and profile resolution to stderr")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			printUsage(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printUsage(flagSet)
		return nil
	}

	positional := flagSet.Args()
	if len(positional) != 1 {
		printUsage(flagSet)
		return fmt.Errorf("expected exactly one file argument, got %d", len(positional))
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := inspectconfig.Resolve(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	chosen := cfg.Profile(profile)
	logger.Debug("resolved profile", "profile", profile, "config_loaded", cfg != nil)

	if typeID != "" && !chosen.AllowsType(typeID) {
		return fmt.Errorf("profile %q does not permit type id %q", profile, typeID)
	}

	data, err := os.ReadFile(positional[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", positional[0], err)
	}

	opts := chunkcodec.Options{
		Version:              chosen.Decode.Version,
		StringDedup:          chosen.Decode.StringDedup,
		RefTracking:          chosen.Decode.RefTracking,
		CompressHeadersAbove: chosen.Decode.CompressHeadersAbove,
	}
	logger.Debug("decoding", "type_id", typeID, "bytes", len(data))

	resolvedID, text, err := dump.Stream(data, typeID, opts)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", positional[0], err)
	}
	// typeID empty means resolvedID came from the stream's own Dynamic
	// envelope rather than a flag the profile already vetted above.
	if typeID == "" && !chosen.AllowsType(resolvedID) {
		return fmt.Errorf("profile %q does not permit type id %q", profile, resolvedID)
	}

	fmt.Println(text)
	return nil
}

func printUsage(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `chunkcodec-inspect prints a chunkcodec wire image as CBOR diagnostic
notation, using whatever codec is registered for the stream's type id
(sniffed from its Dynamic envelope, or overridden with --type for a
bare-payload stream written without one).

Usage:
  chunkcodec-inspect [--type <registry-type-id>] [flags] <file>

Flags:
`)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}
