// Copyright 2026 The Chunkcodec Authors
// SPDX-License-Identifier: Apache-2.0

package chunkcodec

import (
	"github.com/chunkcodec/chunkcodec/internal/wire"
	"github.com/chunkcodec/chunkcodec/registry"
)

// anyCodecAdapter bridges a concrete Codec[T] to registry.AnyCodec,
// recovering the concrete *Context/*wire.Writer/*wire.Reader types on
// the other side of registry's any-typed parameters. This is the only
// place that crosses that erasure boundary; everything in package
// registry stays generic-free so it can be a dependency-free leaf
// package that this one imports for Context.Registry.
type anyCodecAdapter[T any] struct {
	codec       Codec[T]
	fingerprint []byte
}

func (a anyCodecAdapter[T]) Fingerprint() []byte { return a.fingerprint }

func (a anyCodecAdapter[T]) WriteAny(ctx any, out any, value any) error {
	return a.codec.Write(ctx.(*Context), out.(*wire.Writer), value.(T))
}

func (a anyCodecAdapter[T]) ReadAny(ctx any, in any) (any, error) {
	return a.codec.Read(ctx.(*Context), in.(*wire.Reader))
}

// RegisterCodec registers codec under id in reg (or the default
// registry, if reg is nil), fingerprinting it from descriptor — the
// schema's stable byte representation (field names, evolution steps,
// and constructor tags, in declaration order; evolve.RecordSchema and
// evolve.SumSchema expose this via their Descriptor method). A second
// registration under the same id with a matching descriptor is a no-op;
// a mismatched one fails with a *registry.ConflictError (component G,
// spec.md §4.G).
func RegisterCodec[T any](reg *registry.Registry, id string, codec Codec[T], descriptor []byte) error {
	if reg == nil {
		reg = registry.Default()
	}
	return reg.Register(id, anyCodecAdapter[T]{codec: codec, fingerprint: registry.Fingerprint(descriptor)})
}

// LookupCodec retrieves the codec registered under id in reg (or the
// default registry, if reg is nil) and adapts it back to Codec[any],
// for callers — chiefly chunkcodec/dump — that need to read or write a
// value whose concrete type is only known at runtime via its type id.
func LookupCodec(reg *registry.Registry, id string) (Codec[any], bool) {
	if reg == nil {
		reg = registry.Default()
	}
	anyCodec, ok := reg.Lookup(id)
	if !ok {
		return nil, false
	}
	return NewCodec(
		func(ctx *Context, out *wire.Writer, value any) error {
			return anyCodec.WriteAny(ctx, out, value)
		},
		func(ctx *Context, in *wire.Reader) (any, error) {
			return anyCodec.ReadAny(ctx, in)
		},
	), true
}
