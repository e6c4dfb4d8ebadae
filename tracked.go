// Copyright 2026 The Chunkcodec Authors
// SPDX-License-Identifier: Apache-2.0

package chunkcodec

import (
	"github.com/chunkcodec/chunkcodec/internal/wire"
	"github.com/chunkcodec/chunkcodec/refs"
)

// Tracked builds a Codec for *T that encodes shared and cyclic pointers
// by identity instead of copying the payload at every occurrence
// (component F). Reference tracking is opt-in per codec — it must never
// be used for value types, only for types whose identity, not just
// structure, matters to callers. Requires Context.Refs (i.e.
// Options.RefTracking) to be active; using it without reference tracking
// enabled is a programmer error and panics, matching this package's
// convention that programmer errors, as opposed to malformed input, are
// not part of the wire-level error taxonomy.
func Tracked[T any](elem Codec[T]) Codec[*T] {
	return NewCodec(
		func(ctx *Context, out *wire.Writer, v *T) error {
			if ctx.Refs == nil {
				panic("chunkcodec: Tracked codec used without RefTracking enabled")
			}
			id, isNew := ctx.Refs.CheckWrite(v)
			if !isNew {
				out.WriteByte(byte(refs.MarkerBackReference))
				out.WriteUint32(id)
				return nil
			}
			out.WriteByte(byte(refs.MarkerNewObject))
			out.WriteUint32(id)
			return elem.Write(ctx, out, *v)
		},
		func(ctx *Context, in *wire.Reader) (*T, error) {
			if ctx.Refs == nil {
				panic("chunkcodec: Tracked codec used without RefTracking enabled")
			}
			marker, err := in.ReadByte()
			if err != nil {
				return nil, wrapEOF(err)
			}
			id, err := in.ReadUint32()
			if err != nil {
				return nil, wrapEOF(err)
			}
			switch refs.Marker(marker) {
			case refs.MarkerBackReference:
				v, ok := ctx.Refs.GetRead(id)
				if !ok {
					return nil, NewError(KindCorruptedChunkMap, "back-reference to unknown object id %d", id)
				}
				return v.(*T), nil
			case refs.MarkerNewObject:
				// Commit the pointer's identity before decoding the
				// payload: a nested back-reference to this same id
				// (a cycle) resolves to this exact pointer.
				ptr := new(T)
				ctx.Refs.ReserveRead(id, ptr)
				value, err := elem.Read(ctx, in)
				if err != nil {
					return nil, err
				}
				*ptr = value
				ctx.Refs.CompleteRead(id)
				return ptr, nil
			default:
				return nil, NewError(KindMalformedHeader, "unknown reference marker byte %d", marker)
			}
		},
	)
}
