// Copyright 2026 The Chunkcodec Authors
// SPDX-License-Identifier: Apache-2.0

package evolve

import (
	"bytes"
	"encoding/binary"

	"github.com/chunkcodec/chunkcodec"
	"github.com/chunkcodec/chunkcodec/internal/wire"
)

// Unit is the Codec for a constructor that carries no payload at all
// (spec.md's nullary constructors, e.g. Option's None).
var Unit = chunkcodec.NewCodec(
	func(ctx *chunkcodec.Context, out *wire.Writer, v struct{}) error { return nil },
	func(ctx *chunkcodec.Context, in *wire.Reader) (struct{}, error) { return struct{}{}, nil },
)

// SumSchema is a sum type's declared set of constructors: T is typically
// an interface every constructor's concrete Go type implements. Unlike a
// RecordSchema, a sum's compatibility comes from its constructors' tags
// being stable identifiers rather than positional indices — a schema can
// gain new constructors at any time without an evolution header, and an
// old reader that doesn't recognize a tag reports
// chunkcodec.KindUnknownConstructor rather than guessing.
type SumSchema[T any] struct {
	TypeName string
	variants []sumVariant[T]
}

type sumVariant[T any] struct {
	Name         string
	Tag          uint32
	unwrap       func(T) (any, bool)
	writePayload func(ctx *chunkcodec.Context, out *wire.Writer, payload any) error
	readPayload  func(ctx *chunkcodec.Context, in *wire.Reader) (any, error)
	wrap         func(any) T
}

// NewSum starts a schema for the sum type named typeName.
func NewSum[T any](typeName string) *SumSchema[T] {
	return &SumSchema[T]{TypeName: typeName}
}

// AddVariant declares one constructor of a sum type: tag is its stable
// wire identifier (assign these once and never reuse or renumber them —
// they, not declaration order, are what makes a sum backward and forward
// compatible). codec describes the constructor's payload — Unit for a
// nullary constructor, a Record for a record-shaped one, or any other
// Codec[C] for a single-value (transparent) one. unwrap reports whether
// v is this constructor, extracting its payload; wrap rebuilds a T from
// a decoded payload.
//
// AddVariant is a free function, not a SumSchema method, because Go
// forbids a generic method from introducing a type parameter (C) beyond
// its receiver's.
func AddVariant[T, C any](s *SumSchema[T], name string, tag uint32, codec chunkcodec.Codec[C], wrap func(C) T, unwrap func(T) (C, bool)) *SumSchema[T] {
	s.variants = append(s.variants, sumVariant[T]{
		Name: name,
		Tag:  tag,
		unwrap: func(v T) (any, bool) {
			c, ok := unwrap(v)
			if !ok {
				return nil, false
			}
			return c, true
		},
		writePayload: func(ctx *chunkcodec.Context, out *wire.Writer, payload any) error {
			return codec.Write(ctx, out, payload.(C))
		},
		readPayload: func(ctx *chunkcodec.Context, in *wire.Reader) (any, error) {
			return codec.Read(ctx, in)
		},
		wrap: func(payload any) T {
			return wrap(payload.(C))
		},
	})
	return s
}

// Descriptor returns a stable byte representation of the sum's shape —
// its type name and each constructor's name and tag, in declaration
// order — for use as input to registry.Fingerprint.
func (s *SumSchema[T]) Descriptor() []byte {
	var b bytes.Buffer
	writeDescString(&b, "sum:"+s.TypeName)
	for _, v := range s.variants {
		writeDescString(&b, v.Name)
		var tagBuf [4]byte
		binary.BigEndian.PutUint32(tagBuf[:], v.Tag)
		b.Write(tagBuf[:])
	}
	return b.Bytes()
}

// Sum builds a chunkcodec.Codec[T] from schema: a u32 constructor tag
// followed by that constructor's payload.
func Sum[T any](schema *SumSchema[T]) chunkcodec.Codec[T] {
	return chunkcodec.NewCodec(
		func(ctx *chunkcodec.Context, out *wire.Writer, v T) error {
			for _, variant := range schema.variants {
				payload, ok := variant.unwrap(v)
				if !ok {
					continue
				}
				out.WriteUint32(variant.Tag)
				if err := variant.writePayload(ctx, out, payload); err != nil {
					return chunkcodec.WithField(err, variant.Name)
				}
				return nil
			}
			return chunkcodec.NewError(chunkcodec.KindUnknownConstructor, "value does not match any declared constructor of %q", schema.TypeName)
		},
		func(ctx *chunkcodec.Context, in *wire.Reader) (T, error) {
			var zero T
			tag, err := in.ReadUint32()
			if err != nil {
				return zero, chunkcodec.WrapError(chunkcodec.KindUnexpectedEndOfInput, err, "reading sum constructor tag")
			}
			for _, variant := range schema.variants {
				if variant.Tag != tag {
					continue
				}
				payload, err := variant.readPayload(ctx, in)
				if err != nil {
					return zero, chunkcodec.WithField(err, variant.Name)
				}
				return variant.wrap(payload), nil
			}
			return zero, chunkcodec.NewError(chunkcodec.KindUnknownConstructor, "unknown constructor tag %d for %q", tag, schema.TypeName)
		},
	)
}
