// Copyright 2026 The Chunkcodec Authors
// SPDX-License-Identifier: Apache-2.0

package dump

import (
	"github.com/chunkcodec/chunkcodec"
	"github.com/chunkcodec/chunkcodec/internal/wire"
	"github.com/fxamacker/cbor/v2"
)

// Value decodes the next value in in and returns it alongside the type
// id it was decoded as. If typeID is non-empty, in is expected to hold a
// bare payload for that type, with no type id on the wire — the shape a
// caller who already knows the type out of band would produce, and the
// only shape available before this package's Dynamic envelope existed.
// If typeID is empty, in is expected to begin with that envelope
// (component G, spec.md §4.G): the type id itself, written as
// dedup-eligible text, immediately followed by the payload — the id is
// read off the wire rather than supplied by the caller.
func Value(ctx *chunkcodec.Context, typeID string, in *wire.Reader) (string, any, error) {
	if typeID != "" {
		codec, ok := chunkcodec.LookupCodec(ctx.Registry, typeID)
		if !ok {
			return "", nil, chunkcodec.NewError(chunkcodec.KindTypeRegistryMiss, "no codec registered for type id %q", typeID)
		}
		v, err := codec.Read(ctx, in)
		if err != nil {
			return "", nil, err
		}
		return typeID, v, nil
	}

	dv, err := chunkcodec.Dynamic(ctx.Registry).Read(ctx, in)
	if err != nil {
		return "", nil, err
	}
	return dv.TypeID, dv.Value, nil
}

// Diagnose decodes the next value in in — sniffing its type id off the
// Dynamic envelope when typeID is empty, using typeID as a bare-payload
// override otherwise — and renders it as CBOR diagnostic notation (RFC
// 8949 §8): the decoded Go value is CBOR-encoded and immediately
// re-parsed into that notation, giving a compact, deterministic text
// form for logs and inspection tools independent of chunkcodec's own
// byte layout. It returns the resolved type id alongside the text.
func Diagnose(ctx *chunkcodec.Context, typeID string, in *wire.Reader) (string, string, error) {
	resolvedID, v, err := Value(ctx, typeID, in)
	if err != nil {
		return "", "", err
	}
	encoded, err := cbor.Marshal(v)
	if err != nil {
		return "", "", chunkcodec.WrapError(chunkcodec.KindMalformedHeader, err, "cbor-encoding decoded value for diagnosis")
	}
	text, err := cbor.Diagnose(encoded)
	if err != nil {
		return "", "", chunkcodec.WrapError(chunkcodec.KindMalformedHeader, err, "rendering cbor diagnostic notation")
	}
	return resolvedID, text, nil
}

// Stream decodes a complete Marshal-produced wire image (stream header
// included) and returns its resolved type id and diagnostic text. When
// typeID is empty, the top-level value is expected to carry its own type
// id via the Dynamic envelope; a non-empty typeID instead names the bare
// payload's type directly, for streams written before that envelope
// existed. This is the entry point cmd/chunkcodec-inspect uses.
func Stream(data []byte, typeID string, opts chunkcodec.Options) (string, string, error) {
	in := wire.NewReader(data)
	ctx, err := chunkcodec.NewReaderContext(opts, in)
	if err != nil {
		return "", "", err
	}
	return Diagnose(ctx, typeID, in)
}
