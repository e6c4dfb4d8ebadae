// Copyright 2026 The Chunkcodec Authors
// SPDX-License-Identifier: Apache-2.0

package chunkcodec

import "github.com/chunkcodec/chunkcodec/registry"

// CurrentVersion is the protocol version written by a Context that does
// not override Options.Version.
const CurrentVersion uint8 = 1

// Header flag bits, per spec.md §6.1.
const (
	flagStringDedup      = 1 << 0
	flagRefTracking      = 1 << 1
	flagHeadersMayBeGzip = 1 << 2
)

// Options configures a serialization or deserialization call. The zero
// value is a usable, conservative default: current protocol version, no
// string deduplication, no reference tracking, no header compression.
// Settings are explicit and non-magic rather than environment-sniffed.
type Options struct {
	// Version is the writer's protocol version byte. Zero means
	// CurrentVersion.
	Version uint8

	// StringDedup enables text deduplication for every string written
	// through Context.WriteText: TextCodec values, registered type
	// identifiers and the other codecs built on it.
	StringDedup bool

	// RefTracking enables identity-preserving reference serialization.
	RefTracking bool

	// CompressHeadersAbove is the minimum evolution-header size, in
	// bytes, at which the evolution engine gzip-compresses it. Zero
	// disables compression on write; a reader always accepts both
	// compressed and uncompressed headers regardless of this setting
	// (spec.md's Open Question on interop, resolved in favor of always
	// accepting either).
	CompressHeadersAbove int

	// Registry overrides the type registry a Context consults for
	// polymorphic payloads. Nil means registry.Default().
	Registry *registry.Registry
}

func (o Options) version() uint8 {
	if o.Version == 0 {
		return CurrentVersion
	}
	return o.Version
}

func (o Options) flags() uint8 {
	var f uint8
	if o.StringDedup {
		f |= flagStringDedup
	}
	if o.RefTracking {
		f |= flagRefTracking
	}
	if o.CompressHeadersAbove > 0 {
		f |= flagHeadersMayBeGzip
	}
	return f
}

func (o Options) registry() *registry.Registry {
	if o.Registry == nil {
		return registry.Default()
	}
	return o.Registry
}
