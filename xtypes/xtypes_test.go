// Copyright 2026 The Chunkcodec Authors
// SPDX-License-Identifier: Apache-2.0

package xtypes

import (
	"math/big"
	"net/netip"
	"net/url"
	"testing"
	"time"

	"github.com/chunkcodec/chunkcodec"
	"github.com/google/uuid"
)

func TestTimestampRoundtrip(t *testing.T) {
	loc := time.FixedZone("PDT", -7*3600)
	want := time.Date(2026, 8, 6, 12, 30, 0, 123456789, loc)

	data, err := chunkcodec.Marshal(TimestampCodec, want, chunkcodec.Options{})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	got, err := chunkcodec.Unmarshal(TimestampCodec, data, chunkcodec.Options{})
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if _, offset := got.Zone(); offset != -7*3600 {
		t.Fatalf("offset = %d, want %d", offset, -7*3600)
	}
}

func TestDecimalRoundtrip(t *testing.T) {
	for _, want := range []Decimal{
		{Unscaled: big.NewInt(12345), Scale: 2},
		{Unscaled: big.NewInt(-98765), Scale: 4},
		{Unscaled: big.NewInt(0), Scale: 0},
	} {
		data, err := chunkcodec.Marshal(DecimalCodec, want, chunkcodec.Options{})
		if err != nil {
			t.Fatalf("Marshal(%v): %v", want, err)
		}
		got, err := chunkcodec.Unmarshal(DecimalCodec, data, chunkcodec.Options{})
		if err != nil {
			t.Fatalf("Unmarshal(%v): %v", want, err)
		}
		if got.Scale != want.Scale || got.Unscaled.Cmp(want.Unscaled) != 0 {
			t.Fatalf("got %+v, want %+v", got, want)
		}
	}
}

func TestUUIDRoundtrip(t *testing.T) {
	want := uuid.New()
	data, err := chunkcodec.Marshal(UUIDCodec, want, chunkcodec.Options{})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	got, err := chunkcodec.Unmarshal(UUIDCodec, data, chunkcodec.Options{})
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestURLRoundtrip(t *testing.T) {
	want, err := url.Parse("https://example.com/path?query=1")
	if err != nil {
		t.Fatalf("url.Parse: %v", err)
	}
	data, err := chunkcodec.Marshal(URLCodec, want, chunkcodec.Options{})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	got, err := chunkcodec.Unmarshal(URLCodec, data, chunkcodec.Options{})
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.String() != want.String() {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestIPAddrRoundtrip(t *testing.T) {
	for _, s := range []string{"192.0.2.1", "2001:db8::1"} {
		want := netip.MustParseAddr(s)
		data, err := chunkcodec.Marshal(IPAddrCodec, want, chunkcodec.Options{})
		if err != nil {
			t.Fatalf("Marshal(%s): %v", s, err)
		}
		got, err := chunkcodec.Unmarshal(IPAddrCodec, data, chunkcodec.Options{})
		if err != nil {
			t.Fatalf("Unmarshal(%s): %v", s, err)
		}
		if got != want {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestBitVectorRoundtrip(t *testing.T) {
	want := BitVector{Bits: []bool{true, false, true, true, false, false, false, false, true}}
	data, err := chunkcodec.Marshal(BitVectorCodec, want, chunkcodec.Options{})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	got, err := chunkcodec.Unmarshal(BitVectorCodec, data, chunkcodec.Options{})
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(got.Bits) != len(want.Bits) {
		t.Fatalf("len(got.Bits) = %d, want %d", len(got.Bits), len(want.Bits))
	}
	for i := range want.Bits {
		if got.Bits[i] != want.Bits[i] {
			t.Fatalf("bit %d = %v, want %v", i, got.Bits[i], want.Bits[i])
		}
	}
}
