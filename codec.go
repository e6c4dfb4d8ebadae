// Copyright 2026 The Chunkcodec Authors
// SPDX-License-Identifier: Apache-2.0

package chunkcodec

import "github.com/chunkcodec/chunkcodec/internal/wire"

// Codec is the pair of write and read functions for a type T, the unit
// every combinator and the evolution engine builds on. Implementations
// must be pure with respect to Context: the only mutation they perform
// flows through the Context's tables (string table, reference tracker).
type Codec[T any] interface {
	Write(ctx *Context, out *wire.Writer, value T) error
	Read(ctx *Context, in *wire.Reader) (T, error)
}

// funcCodec adapts a pair of plain functions to Codec[T], the same shape
// every primitive and combinator codec in this package is built from.
type funcCodec[T any] struct {
	write func(ctx *Context, out *wire.Writer, value T) error
	read  func(ctx *Context, in *wire.Reader) (T, error)
}

func (f funcCodec[T]) Write(ctx *Context, out *wire.Writer, value T) error {
	return f.write(ctx, out, value)
}

func (f funcCodec[T]) Read(ctx *Context, in *wire.Reader) (T, error) {
	return f.read(ctx, in)
}

// NewCodec builds a Codec[T] from a write function and a read function.
// Most combinators in this package are expressed in terms of NewCodec
// over an element Codec[T] they wrap.
func NewCodec[T any](write func(ctx *Context, out *wire.Writer, value T) error, read func(ctx *Context, in *wire.Reader) (T, error)) Codec[T] {
	return funcCodec[T]{write: write, read: read}
}

// Marshal serializes value with codec using opts, returning the
// complete wire image (header included).
func Marshal[T any](codec Codec[T], value T, opts Options) ([]byte, error) {
	out := wire.NewWriter(64)
	ctx := NewWriterContext(opts, out)
	if err := codec.Write(ctx, out, value); err != nil {
		return nil, err
	}
	if ctx.Refs != nil {
		if unresolved := ctx.Refs.Unresolved(); len(unresolved) > 0 {
			return nil, NewError(KindUnresolvedReference, "unresolved reference ids: %v", unresolved)
		}
	}
	return out.Bytes(), nil
}

// Unmarshal deserializes data (a complete wire image, header included)
// with codec using opts. The version/dedup/ref-tracking bits of opts are
// ignored on read; the stream's own header governs those (see
// NewReaderContext).
func Unmarshal[T any](codec Codec[T], data []byte, opts Options) (T, error) {
	var zero T
	in := wire.NewReader(data)
	ctx, err := NewReaderContext(opts, in)
	if err != nil {
		return zero, err
	}
	value, err := codec.Read(ctx, in)
	if err != nil {
		return zero, err
	}
	if ctx.Refs != nil {
		if unresolved := ctx.Refs.Unresolved(); len(unresolved) > 0 {
			return zero, NewError(KindUnresolvedReference, "unresolved reference ids: %v", unresolved)
		}
	}
	return value, nil
}
