// Copyright 2026 The Chunkcodec Authors
// SPDX-License-Identifier: Apache-2.0

package chunkcodec

import (
	"unicode/utf8"

	"github.com/chunkcodec/chunkcodec/internal/wire"
	"github.com/chunkcodec/chunkcodec/refs"
	"github.com/chunkcodec/chunkcodec/registry"
)

// Context carries the per-call state a serialize or deserialize call
// threads through every codec it invokes: the writer's protocol version,
// whether string deduplication and reference tracking are active, the
// string table itself, a reference tracker, and a type registry handle.
// A Context is owned by exactly one call; it is created at the start of
// that call and discarded at the end, and it is never shared across
// goroutines (spec.md §5).
type Context struct {
	opts Options

	// write-side string table: string -> assigned id (ids start at 1).
	stringIDs   map[string]uint32
	nextStringID uint32

	// read-side string table: index i holds the string assigned id i+1.
	stringsByID []string

	// Refs is nil unless reference tracking is active.
	Refs *refs.Tracker

	// Registry is the type registry this context's polymorphic codecs
	// (chunkcodec/registry-backed dynamic dispatch) consult.
	Registry *registry.Registry
}

// NewWriterContext creates a Context for a single serialize call and
// writes the two-byte stream header (version, flags) to out, per
// spec.md §6.1.
func NewWriterContext(opts Options, out *wire.Writer) *Context {
	ctx := &Context{
		opts:      opts,
		stringIDs: make(map[string]uint32),
		Registry:  opts.registry(),
	}
	if opts.RefTracking {
		ctx.Refs = refs.New()
	}
	out.WriteByte(opts.version())
	out.WriteByte(opts.flags())
	return ctx
}

// NewReaderContext creates a Context for a single deserialize call,
// reading the two-byte stream header from in. The reader's active
// features (string dedup, reference tracking) are taken from the
// header's flags byte, not from opts, so a reader always mirrors what
// the writer actually did; opts.Registry and opts.CompressHeadersAbove
// still apply since they are not carried on the wire.
func NewReaderContext(opts Options, in *wire.Reader) (*Context, error) {
	version, err := in.ReadByte()
	if err != nil {
		return nil, WrapError(KindMalformedHeader, err, "reading version byte")
	}
	flags, err := in.ReadByte()
	if err != nil {
		return nil, WrapError(KindMalformedHeader, err, "reading flags byte")
	}
	if version > CurrentVersion {
		return nil, NewError(KindIncompatibleVersion, "stream version %d is newer than the supported version %d", version, CurrentVersion)
	}

	effective := opts
	effective.StringDedup = flags&flagStringDedup != 0
	effective.RefTracking = flags&flagRefTracking != 0

	ctx := &Context{
		opts:     effective,
		Registry: opts.registry(),
	}
	if effective.RefTracking {
		ctx.Refs = refs.New()
	}
	return ctx, nil
}

// Options returns the effective options for this context (for a reader
// context, StringDedup/RefTracking reflect the stream header, not the
// caller-supplied Options).
func (c *Context) Options() Options {
	return c.opts
}

// WriteText writes a UTF-8 string, applying deduplication when the
// context's StringDedup flag is set: the prefix encodes either the
// inline length n >= 0 followed by n UTF-8 bytes, or a negative integer
// -id referring to an already-emitted string. Field names, enum tag
// names, and registered type identifiers are always written through
// this path (they are dedup-eligible by construction); ordinary user
// text values are dedup-eligible only because this same path is used
// for them too, exactly when the flag is on (spec.md §4.C policy).
func (c *Context) WriteText(out *wire.Writer, s string) {
	if !c.opts.StringDedup {
		writeRawText(out, s)
		return
	}
	if id, ok := c.stringIDs[s]; ok {
		out.WriteInt32(-int32(id))
		return
	}
	c.nextStringID++
	id := c.nextStringID
	c.stringIDs[s] = id
	writeRawText(out, s)
}

// ReadText reads a string written by WriteText.
func (c *Context) ReadText(in *wire.Reader) (string, error) {
	if !c.opts.StringDedup {
		return readRawText(in)
	}
	n, err := in.ReadInt32()
	if err != nil {
		return "", WrapError(KindUnexpectedEndOfInput, err, "reading text length/id prefix")
	}
	if n < 0 {
		id := uint32(-n)
		if id == 0 || int(id) > len(c.stringsByID) {
			return "", NewError(KindMalformedHeader, "string back-reference id %d out of range", id)
		}
		return c.stringsByID[id-1], nil
	}
	b, err := in.ReadN(int(n))
	if err != nil {
		return "", WrapError(KindUnexpectedEndOfInput, err, "reading %d text bytes", n)
	}
	if !utf8.Valid(b) {
		return "", NewError(KindInvalidUTF8, "text payload is not valid utf-8")
	}
	s := string(b)
	c.stringsByID = append(c.stringsByID, s)
	return s, nil
}

func writeRawText(out *wire.Writer, s string) {
	out.WriteInt32(int32(len(s)))
	out.WriteBytes([]byte(s))
}

func readRawText(in *wire.Reader) (string, error) {
	n, err := in.ReadInt32()
	if err != nil {
		return "", WrapError(KindUnexpectedEndOfInput, err, "reading text length prefix")
	}
	if n < 0 {
		return "", NewError(KindMalformedHeader, "negative text length %d with string_dedup disabled", n)
	}
	b, err := in.ReadN(int(n))
	if err != nil {
		return "", WrapError(KindUnexpectedEndOfInput, err, "reading %d text bytes", n)
	}
	if !utf8.Valid(b) {
		return "", NewError(KindInvalidUTF8, "text payload is not valid utf-8")
	}
	return string(b), nil
}
