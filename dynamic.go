// Copyright 2026 The Chunkcodec Authors
// SPDX-License-Identifier: Apache-2.0

package chunkcodec

import (
	"github.com/chunkcodec/chunkcodec/internal/wire"
	"github.com/chunkcodec/chunkcodec/registry"
)

// DynamicValue pairs a value with the type identifier its codec is
// registered under, the shape Dynamic reads and writes.
type DynamicValue struct {
	TypeID string
	Value  any
}

// Dynamic returns the component G wire envelope (spec.md §4.G): the type
// identifier, written as dedup-eligible text through the same
// Context.WriteText path field names and enum tags use, immediately
// followed by the registered codec's own output for the payload. This is
// the mechanism spec.md §4.G names for polymorphism over heterogeneous
// payloads — a slot whose concrete type cannot be determined from
// context carries its own type id inline instead of relying on the
// caller to already know it. reg is the registry consulted for both the
// write-side lookup (the codec to encode Value with) and the read-side
// lookup (the codec to decode into); nil uses registry.Default.
func Dynamic(reg *registry.Registry) Codec[DynamicValue] {
	return NewCodec(
		func(ctx *Context, out *wire.Writer, v DynamicValue) error {
			codec, ok := LookupCodec(reg, v.TypeID)
			if !ok {
				return NewError(KindTypeRegistryMiss, "no codec registered for type id %q", v.TypeID)
			}
			ctx.WriteText(out, v.TypeID)
			return codec.Write(ctx, out, v.Value)
		},
		func(ctx *Context, in *wire.Reader) (DynamicValue, error) {
			id, err := ctx.ReadText(in)
			if err != nil {
				return DynamicValue{}, err
			}
			codec, ok := LookupCodec(reg, id)
			if !ok {
				return DynamicValue{}, NewError(KindTypeRegistryMiss, "no codec registered for type id %q", id)
			}
			value, err := codec.Read(ctx, in)
			if err != nil {
				return DynamicValue{}, WithField(err, id)
			}
			return DynamicValue{TypeID: id, Value: value}, nil
		},
	)
}
