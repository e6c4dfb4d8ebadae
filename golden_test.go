// Copyright 2026 The Chunkcodec Authors
// SPDX-License-Identifier: Apache-2.0

package chunkcodec

import (
	"bytes"
	"testing"
)

func TestGoldenUint32(t *testing.T) {
	data, err := Marshal(Uint32Codec, uint32(100), Options{})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := []byte{CurrentVersion, 0x00, 0x00, 0x00, 0x00, 0x64}
	if !bytes.Equal(data, want) {
		t.Fatalf("uint32(100) wire image = % X, want % X", data, want)
	}
}

func TestGoldenFloat32(t *testing.T) {
	data, err := Marshal(Float32Codec, float32(3.14), Options{})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	payload := data[2:]
	want := []byte{0x40, 0x48, 0xF5, 0xC3}
	if !bytes.Equal(payload, want) {
		t.Fatalf("float32(3.14) payload = % X, want % X", payload, want)
	}
}

func TestGoldenTextNoDedup(t *testing.T) {
	data, err := Marshal(TextCodec, "hi", Options{})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	payload := data[2:]
	want := []byte{0x00, 0x00, 0x00, 0x02, 'h', 'i'}
	if !bytes.Equal(payload, want) {
		t.Fatalf(`text "hi" payload = % X, want % X`, payload, want)
	}
}

func TestGoldenBoolByte(t *testing.T) {
	data, err := Marshal(BoolCodec, true, Options{})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if data[2] != 0x01 {
		t.Fatalf("bool(true) payload byte = %#x, want 0x01", data[2])
	}
}

func TestGoldenStreamHeaderFlags(t *testing.T) {
	data, err := Marshal(Uint8Codec, uint8(0), Options{StringDedup: true, RefTracking: true})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if data[0] != CurrentVersion {
		t.Fatalf("version byte = %d, want %d", data[0], CurrentVersion)
	}
	if data[1] != flagStringDedup|flagRefTracking {
		t.Fatalf("flags byte = %#b, want dedup|reftracking", data[1])
	}
}
