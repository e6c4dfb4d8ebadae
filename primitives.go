// Copyright 2026 The Chunkcodec Authors
// SPDX-License-Identifier: Apache-2.0

package chunkcodec

import (
	"github.com/chunkcodec/chunkcodec/internal/wire"
)

// Uint8Codec encodes a uint8 as a single byte.
var Uint8Codec Codec[uint8] = NewCodec(
	func(_ *Context, out *wire.Writer, v uint8) error { out.WriteByte(v); return nil },
	func(_ *Context, in *wire.Reader) (uint8, error) {
		b, err := in.ReadByte()
		return b, wrapEOF(err)
	},
)

// Int8Codec encodes an int8 as a single byte.
var Int8Codec Codec[int8] = NewCodec(
	func(_ *Context, out *wire.Writer, v int8) error { out.WriteInt8(v); return nil },
	func(_ *Context, in *wire.Reader) (int8, error) {
		v, err := in.ReadInt8()
		return v, wrapEOF(err)
	},
)

// Uint16Codec encodes a uint16, big-endian.
var Uint16Codec Codec[uint16] = NewCodec(
	func(_ *Context, out *wire.Writer, v uint16) error { out.WriteUint16(v); return nil },
	func(_ *Context, in *wire.Reader) (uint16, error) {
		v, err := in.ReadUint16()
		return v, wrapEOF(err)
	},
)

// Int16Codec encodes an int16, big-endian.
var Int16Codec Codec[int16] = NewCodec(
	func(_ *Context, out *wire.Writer, v int16) error { out.WriteInt16(v); return nil },
	func(_ *Context, in *wire.Reader) (int16, error) {
		v, err := in.ReadInt16()
		return v, wrapEOF(err)
	},
)

// Uint32Codec encodes a uint32, big-endian.
var Uint32Codec Codec[uint32] = NewCodec(
	func(_ *Context, out *wire.Writer, v uint32) error { out.WriteUint32(v); return nil },
	func(_ *Context, in *wire.Reader) (uint32, error) {
		v, err := in.ReadUint32()
		return v, wrapEOF(err)
	},
)

// Int32Codec encodes an int32, big-endian.
var Int32Codec Codec[int32] = NewCodec(
	func(_ *Context, out *wire.Writer, v int32) error { out.WriteInt32(v); return nil },
	func(_ *Context, in *wire.Reader) (int32, error) {
		v, err := in.ReadInt32()
		return v, wrapEOF(err)
	},
)

// Uint64Codec encodes a uint64, big-endian.
var Uint64Codec Codec[uint64] = NewCodec(
	func(_ *Context, out *wire.Writer, v uint64) error { out.WriteUint64(v); return nil },
	func(_ *Context, in *wire.Reader) (uint64, error) {
		v, err := in.ReadUint64()
		return v, wrapEOF(err)
	},
)

// Int64Codec encodes an int64, big-endian.
var Int64Codec Codec[int64] = NewCodec(
	func(_ *Context, out *wire.Writer, v int64) error { out.WriteInt64(v); return nil },
	func(_ *Context, in *wire.Reader) (int64, error) {
		v, err := in.ReadInt64()
		return v, wrapEOF(err)
	},
)

// Float32Codec encodes an IEEE-754 single-precision float, big-endian.
var Float32Codec Codec[float32] = NewCodec(
	func(_ *Context, out *wire.Writer, v float32) error { out.WriteFloat32(v); return nil },
	func(_ *Context, in *wire.Reader) (float32, error) {
		v, err := in.ReadFloat32()
		return v, wrapEOF(err)
	},
)

// Float64Codec encodes an IEEE-754 double-precision float, big-endian.
var Float64Codec Codec[float64] = NewCodec(
	func(_ *Context, out *wire.Writer, v float64) error { out.WriteFloat64(v); return nil },
	func(_ *Context, in *wire.Reader) (float64, error) {
		v, err := in.ReadFloat64()
		return v, wrapEOF(err)
	},
)

// BoolCodec encodes a bool as a single 0x00/0x01 byte.
var BoolCodec Codec[bool] = NewCodec(
	func(_ *Context, out *wire.Writer, v bool) error { out.WriteBool(v); return nil },
	func(_ *Context, in *wire.Reader) (bool, error) {
		v, err := in.ReadBool()
		return v, wrapEOF(err)
	},
)

// Int128 represents a 128-bit two's-complement integer as two 64-bit
// halves, since Go has no native 128-bit integer type. Hi carries the
// sign.
type Int128 struct {
	Hi int64
	Lo uint64
}

// Int128Codec encodes an Int128 as 16 big-endian bytes, high half first.
var Int128Codec Codec[Int128] = NewCodec(
	func(_ *Context, out *wire.Writer, v Int128) error {
		out.WriteUint128(uint64(v.Hi), v.Lo)
		return nil
	},
	func(_ *Context, in *wire.Reader) (Int128, error) {
		hi, lo, err := in.ReadUint128()
		if err != nil {
			return Int128{}, wrapEOF(err)
		}
		return Int128{Hi: int64(hi), Lo: lo}, nil
	},
)

// Uint128 represents an unsigned 128-bit integer as two 64-bit halves.
type Uint128 struct {
	Hi uint64
	Lo uint64
}

// Uint128Codec encodes a Uint128 as 16 big-endian bytes, high half first.
var Uint128Codec Codec[Uint128] = NewCodec(
	func(_ *Context, out *wire.Writer, v Uint128) error {
		out.WriteUint128(v.Hi, v.Lo)
		return nil
	},
	func(_ *Context, in *wire.Reader) (Uint128, error) {
		hi, lo, err := in.ReadUint128()
		if err != nil {
			return Uint128{}, wrapEOF(err)
		}
		return Uint128{Hi: hi, Lo: lo}, nil
	},
)

// IntCodec encodes a machine-word int widened to 64 bits on the wire, so
// the format is architecture-independent. Read fails with
// KindValueOutOfRange if the decoded value does not fit int on this
// build's word size.
var IntCodec Codec[int] = NewCodec(
	func(_ *Context, out *wire.Writer, v int) error { out.WriteInt64(int64(v)); return nil },
	func(_ *Context, in *wire.Reader) (int, error) {
		v, err := in.ReadInt64()
		if err != nil {
			return 0, wrapEOF(err)
		}
		if int64(int(v)) != v {
			return 0, NewError(KindValueOutOfRange, "decoded int64 %d does not fit int on this platform", v)
		}
		return int(v), nil
	},
)

// UintCodec encodes a machine-word uint widened to 64 bits on the wire.
// Read fails with KindValueOutOfRange if the decoded value does not fit
// uint on this build's word size.
var UintCodec Codec[uint] = NewCodec(
	func(_ *Context, out *wire.Writer, v uint) error { out.WriteUint64(uint64(v)); return nil },
	func(_ *Context, in *wire.Reader) (uint, error) {
		v, err := in.ReadUint64()
		if err != nil {
			return 0, wrapEOF(err)
		}
		if uint64(uint(v)) != v {
			return 0, NewError(KindValueOutOfRange, "decoded uint64 %d does not fit uint on this platform", v)
		}
		return uint(v), nil
	},
)

const (
	charTag16 = 1
	charTag32 = 2
)

// CharCodec encodes a rune as a 1-byte tag (1 = 16-bit code unit, 2 =
// 21-bit/32-bit carrier) followed by the code unit, little-endian. Any
// surrogate or out-of-range code point fails with KindInvalidCharacter.
var CharCodec Codec[rune] = NewCodec(
	func(_ *Context, out *wire.Writer, v rune) error {
		if v < 0 || v > 0x10FFFF || (v >= 0xD800 && v <= 0xDFFF) {
			return NewError(KindInvalidCharacter, "code point %#x is a surrogate or out of range", v)
		}
		if v <= 0xFFFF {
			out.WriteByte(charTag16)
			out.WriteByte(byte(v))
			out.WriteByte(byte(v >> 8))
			return nil
		}
		out.WriteByte(charTag32)
		out.WriteByte(byte(v))
		out.WriteByte(byte(v >> 8))
		out.WriteByte(byte(v >> 16))
		out.WriteByte(byte(v >> 24))
		return nil
	},
	func(_ *Context, in *wire.Reader) (rune, error) {
		tag, err := in.ReadByte()
		if err != nil {
			return 0, wrapEOF(err)
		}
		switch tag {
		case charTag16:
			b, err := in.ReadN(2)
			if err != nil {
				return 0, wrapEOF(err)
			}
			cp := rune(uint16(b[0]) | uint16(b[1])<<8)
			if cp >= 0xD800 && cp <= 0xDFFF {
				return 0, NewError(KindInvalidCharacter, "code point %#x is a surrogate", cp)
			}
			return cp, nil
		case charTag32:
			b, err := in.ReadN(4)
			if err != nil {
				return 0, wrapEOF(err)
			}
			cp := rune(uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24)
			if cp < 0 || cp > 0x10FFFF || (cp >= 0xD800 && cp <= 0xDFFF) {
				return 0, NewError(KindInvalidCharacter, "code point %#x is a surrogate or out of range", cp)
			}
			return cp, nil
		default:
			return 0, NewError(KindInvalidCharacter, "unknown character tag byte %d", tag)
		}
	},
)

func wrapEOF(err error) error {
	if err == nil {
		return nil
	}
	return WrapError(KindUnexpectedEndOfInput, err, "reading primitive value")
}
