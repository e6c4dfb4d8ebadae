// Copyright 2026 The Chunkcodec Authors
// SPDX-License-Identifier: Apache-2.0

package chunkcodec

import (
	"testing"

	"github.com/chunkcodec/chunkcodec/registry"
)

func TestDynamicRoundtripsTypeIDAndPayload(t *testing.T) {
	reg := registry.New()
	if err := RegisterCodec(reg, "example.Int32", Int32Codec, []byte("int32-v1")); err != nil {
		t.Fatalf("RegisterCodec: %v", err)
	}

	dyn := Dynamic(reg)
	data, err := Marshal(dyn, DynamicValue{TypeID: "example.Int32", Value: int32(7)}, Options{Registry: reg})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	got, err := Unmarshal(dyn, data, Options{Registry: reg})
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.TypeID != "example.Int32" || got.Value.(int32) != 7 {
		t.Fatalf("got %+v, want {example.Int32 7}", got)
	}
}

func TestDynamicWriteFailsForUnregisteredTypeID(t *testing.T) {
	reg := registry.New()
	dyn := Dynamic(reg)
	if _, err := Marshal(dyn, DynamicValue{TypeID: "missing", Value: int32(1)}, Options{Registry: reg}); !IsKind(err, KindTypeRegistryMiss) {
		t.Fatalf("err = %v, want KindTypeRegistryMiss", err)
	}
}

func TestDynamicReadFailsForUnregisteredTypeID(t *testing.T) {
	writeReg := registry.New()
	if err := RegisterCodec(writeReg, "example.Int32", Int32Codec, []byte("int32-v1")); err != nil {
		t.Fatalf("RegisterCodec: %v", err)
	}
	data, err := Marshal(Dynamic(writeReg), DynamicValue{TypeID: "example.Int32", Value: int32(3)}, Options{Registry: writeReg})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	readReg := registry.New()
	if _, err := Unmarshal(Dynamic(readReg), data, Options{Registry: readReg}); !IsKind(err, KindTypeRegistryMiss) {
		t.Fatalf("err = %v, want KindTypeRegistryMiss", err)
	}
}

func TestDynamicUsesTextDeduplicationWhenEnabled(t *testing.T) {
	reg := registry.New()
	if err := RegisterCodec(reg, "example.Int32", Int32Codec, []byte("int32-v1")); err != nil {
		t.Fatalf("RegisterCodec: %v", err)
	}

	pair := Slice(Dynamic(reg))
	values := []DynamicValue{
		{TypeID: "example.Int32", Value: int32(1)},
		{TypeID: "example.Int32", Value: int32(2)},
	}
	opts := Options{Registry: reg, StringDedup: true}
	data, err := Marshal(pair, values, opts)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	got, err := Unmarshal(pair, data, opts)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(got) != 2 || got[0].Value.(int32) != 1 || got[1].Value.(int32) != 2 {
		t.Fatalf("got %+v, want two example.Int32 values 1 and 2", got)
	}

	plain, err := Marshal(pair, values, Options{Registry: reg})
	if err != nil {
		t.Fatalf("Marshal without dedup: %v", err)
	}
	if len(data) >= len(plain) {
		t.Fatalf("dedup size %d, want smaller than %d without dedup", len(data), len(plain))
	}
}
