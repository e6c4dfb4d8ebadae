// Copyright 2026 The Chunkcodec Authors
// SPDX-License-Identifier: Apache-2.0

package xtypes

import (
	"github.com/chunkcodec/chunkcodec"
	"github.com/chunkcodec/chunkcodec/internal/wire"
)

// BitVector is a fixed-length sequence of bits, packed 8 to a byte,
// most significant bit first within each byte.
type BitVector struct {
	Bits []bool
}

// BitVectorCodec encodes a BitVector as a u32 bit-length prefix followed
// by ceil(len/8) packed bytes.
var BitVectorCodec chunkcodec.Codec[BitVector] = chunkcodec.NewCodec(
	func(_ *chunkcodec.Context, out *wire.Writer, v BitVector) error {
		out.WriteUint32(uint32(len(v.Bits)))
		packed := make([]byte, (len(v.Bits)+7)/8)
		for i, bit := range v.Bits {
			if bit {
				packed[i/8] |= 1 << uint(7-i%8)
			}
		}
		out.WriteBytes(packed)
		return nil
	},
	func(_ *chunkcodec.Context, in *wire.Reader) (BitVector, error) {
		n, err := in.ReadUint32()
		if err != nil {
			return BitVector{}, chunkcodec.WrapError(chunkcodec.KindUnexpectedEndOfInput, err, "reading bit vector length")
		}
		packed, err := in.ReadN(int((n + 7) / 8))
		if err != nil {
			return BitVector{}, chunkcodec.WrapError(chunkcodec.KindUnexpectedEndOfInput, err, "reading packed bit vector bytes")
		}
		bits := make([]bool, n)
		for i := range bits {
			bits[i] = packed[i/8]&(1<<uint(7-i%8)) != 0
		}
		return BitVector{Bits: bits}, nil
	},
)
