// Copyright 2026 The Chunkcodec Authors
// SPDX-License-Identifier: Apache-2.0

package xtypes

import (
	"math/big"

	"github.com/chunkcodec/chunkcodec"
	"github.com/chunkcodec/chunkcodec/internal/wire"
)

// Decimal is an arbitrary-precision decimal: an integer magnitude with
// an implied decimal point Scale digits from the right, matching the
// classic "unscaled value + scale" representation of fixed-point
// decimal types across languages.
type Decimal struct {
	Unscaled *big.Int
	Scale    int32
}

// DecimalCodec encodes a Decimal as a sign byte (0 = zero or positive, 1
// = negative), the scale, and the magnitude's big-endian bytes
// length-prefixed with a u32 — the same shape BytesCodec uses for raw
// byte strings, since big.Int.Bytes() already returns an unsigned
// magnitude.
var DecimalCodec chunkcodec.Codec[Decimal] = chunkcodec.NewCodec(
	func(ctx *chunkcodec.Context, out *wire.Writer, v Decimal) error {
		if v.Unscaled == nil {
			v.Unscaled = new(big.Int)
		}
		out.WriteBool(v.Unscaled.Sign() < 0)
		out.WriteInt32(v.Scale)
		mag := v.Unscaled.Bytes()
		out.WriteUint32(uint32(len(mag)))
		out.WriteBytes(mag)
		return nil
	},
	func(ctx *chunkcodec.Context, in *wire.Reader) (Decimal, error) {
		negative, err := in.ReadBool()
		if err != nil {
			return Decimal{}, chunkcodec.WrapError(chunkcodec.KindUnexpectedEndOfInput, err, "reading decimal sign")
		}
		scale, err := in.ReadInt32()
		if err != nil {
			return Decimal{}, chunkcodec.WrapError(chunkcodec.KindUnexpectedEndOfInput, err, "reading decimal scale")
		}
		n, err := in.ReadUint32()
		if err != nil {
			return Decimal{}, chunkcodec.WrapError(chunkcodec.KindUnexpectedEndOfInput, err, "reading decimal magnitude length")
		}
		mag, err := in.ReadN(int(n))
		if err != nil {
			return Decimal{}, chunkcodec.WrapError(chunkcodec.KindUnexpectedEndOfInput, err, "reading %d decimal magnitude bytes", n)
		}
		unscaled := new(big.Int).SetBytes(mag)
		if negative {
			unscaled.Neg(unscaled)
		}
		return Decimal{Unscaled: unscaled, Scale: scale}, nil
	},
)
