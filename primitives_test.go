// Copyright 2026 The Chunkcodec Authors
// SPDX-License-Identifier: Apache-2.0

package chunkcodec

import "testing"

func TestRoundtripPrimitiveIntegers(t *testing.T) {
	if got, err := roundtrip(Uint8Codec, uint8(0xAB)); err != nil || got != 0xAB {
		t.Fatalf("Uint8Codec roundtrip = %v, %v", got, err)
	}
	if got, err := roundtrip(Int8Codec, int8(-5)); err != nil || got != -5 {
		t.Fatalf("Int8Codec roundtrip = %v, %v", got, err)
	}
	if got, err := roundtrip(Uint16Codec, uint16(0x1234)); err != nil || got != 0x1234 {
		t.Fatalf("Uint16Codec roundtrip = %v, %v", got, err)
	}
	if got, err := roundtrip(Uint32Codec, uint32(100)); err != nil || got != 100 {
		t.Fatalf("Uint32Codec roundtrip = %v, %v", got, err)
	}
	if got, err := roundtrip(Int64Codec, int64(-1)); err != nil || got != -1 {
		t.Fatalf("Int64Codec roundtrip = %v, %v", got, err)
	}
	if got, err := roundtrip(Uint64Codec, uint64(1)<<40); err != nil || got != uint64(1)<<40 {
		t.Fatalf("Uint64Codec roundtrip = %v, %v", got, err)
	}
}

func TestRoundtripPrimitiveFloats(t *testing.T) {
	if got, err := roundtrip(Float32Codec, float32(3.14)); err != nil || got != float32(3.14) {
		t.Fatalf("Float32Codec roundtrip = %v, %v", got, err)
	}
	if got, err := roundtrip(Float64Codec, 2.71828); err != nil || got != 2.71828 {
		t.Fatalf("Float64Codec roundtrip = %v, %v", got, err)
	}
}

func TestRoundtripPrimitiveBool(t *testing.T) {
	for _, v := range []bool{true, false} {
		if got, err := roundtrip(BoolCodec, v); err != nil || got != v {
			t.Fatalf("BoolCodec roundtrip(%v) = %v, %v", v, got, err)
		}
	}
}

func TestRoundtripInt128AndUint128(t *testing.T) {
	want := Int128{Hi: -1, Lo: 0xDEADBEEF}
	if got, err := roundtrip(Int128Codec, want); err != nil || got != want {
		t.Fatalf("Int128Codec roundtrip = %+v, %v", got, err)
	}
	uwant := Uint128{Hi: 1, Lo: 2}
	if got, err := roundtrip(Uint128Codec, uwant); err != nil || got != uwant {
		t.Fatalf("Uint128Codec roundtrip = %+v, %v", got, err)
	}
}

func TestRoundtripIntAndUint(t *testing.T) {
	if got, err := roundtrip(IntCodec, -12345); err != nil || got != -12345 {
		t.Fatalf("IntCodec roundtrip = %v, %v", got, err)
	}
	if got, err := roundtrip(UintCodec, uint(999)); err != nil || got != 999 {
		t.Fatalf("UintCodec roundtrip = %v, %v", got, err)
	}
}

func TestCharCodecRejectsSurrogates(t *testing.T) {
	_, err := Marshal(CharCodec, rune(0xD800), Options{})
	if !IsKind(err, KindInvalidCharacter) {
		t.Fatalf("err = %v, want KindInvalidCharacter", err)
	}
}

func TestCharCodecRoundtripsAstralPlane(t *testing.T) {
	want := rune(0x1F600)
	if got, err := roundtrip(CharCodec, want); err != nil || got != want {
		t.Fatalf("CharCodec roundtrip = %v, %v", got, err)
	}
}

func TestUnexpectedEndOfInput(t *testing.T) {
	data, err := Marshal(Uint32Codec, uint32(1), Options{})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	_, err = Unmarshal(Uint32Codec, data[:len(data)-1], Options{})
	if !IsKind(err, KindUnexpectedEndOfInput) {
		t.Fatalf("err = %v, want KindUnexpectedEndOfInput", err)
	}
}

func roundtrip[T comparable](codec Codec[T], v T) (T, error) {
	data, err := Marshal(codec, v, Options{})
	if err != nil {
		var zero T
		return zero, err
	}
	return Unmarshal(codec, data, Options{})
}
