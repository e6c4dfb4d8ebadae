// Copyright 2026 The Chunkcodec Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"bytes"
	"testing"
)

func TestWriterReaderRoundtripPrimitives(t *testing.T) {
	w := NewWriter(0)
	w.WriteByte(0xAB)
	w.WriteBool(true)
	w.WriteInt8(-5)
	w.WriteUint16(0x1234)
	w.WriteUint32(100)
	w.WriteUint64(1 << 40)
	w.WriteFloat32(3.14)
	w.WriteFloat64(2.71828)

	r := NewReader(w.Bytes())

	if b, err := r.ReadByte(); err != nil || b != 0xAB {
		t.Fatalf("ReadByte = %v, %v", b, err)
	}
	if v, err := r.ReadBool(); err != nil || v != true {
		t.Fatalf("ReadBool = %v, %v", v, err)
	}
	if v, err := r.ReadInt8(); err != nil || v != -5 {
		t.Fatalf("ReadInt8 = %v, %v", v, err)
	}
	if v, err := r.ReadUint16(); err != nil || v != 0x1234 {
		t.Fatalf("ReadUint16 = %v, %v", v, err)
	}
	if v, err := r.ReadUint32(); err != nil || v != 100 {
		t.Fatalf("ReadUint32 = %v, %v", v, err)
	}
	if v, err := r.ReadUint64(); err != nil || v != 1<<40 {
		t.Fatalf("ReadUint64 = %v, %v", v, err)
	}
	if v, err := r.ReadFloat32(); err != nil || v != 3.14 {
		t.Fatalf("ReadFloat32 = %v, %v", v, err)
	}
	if v, err := r.ReadFloat64(); err != nil || v != 2.71828 {
		t.Fatalf("ReadFloat64 = %v, %v", v, err)
	}
	if r.Remaining() != 0 {
		t.Fatalf("Remaining = %d, want 0", r.Remaining())
	}
}

func TestReaderUnexpectedEndOfInput(t *testing.T) {
	r := NewReader([]byte{0x01})
	if _, err := r.ReadUint32(); err != ErrUnexpectedEndOfInput {
		t.Fatalf("err = %v, want ErrUnexpectedEndOfInput", err)
	}
}

func TestWriterReserveAndPatch(t *testing.T) {
	w := NewWriter(0)
	w.WriteByte(0xFF)
	offset := w.Reserve(4)
	w.WriteBytes([]byte("payload"))
	w.PatchUint32At(offset, uint32(len("payload")))

	want := append([]byte{0xFF}, []byte{0, 0, 0, 7}...)
	want = append(want, []byte("payload")...)
	if !bytes.Equal(w.Bytes(), want) {
		t.Fatalf("Bytes() = %x, want %x", w.Bytes(), want)
	}
}

func TestGoldenUint32Payload(t *testing.T) {
	w := NewWriter(0)
	w.WriteUint32(100)
	want := []byte{0x00, 0x00, 0x00, 0x64}
	if !bytes.Equal(w.Bytes(), want) {
		t.Fatalf("Bytes() = %x, want %x", w.Bytes(), want)
	}
}

func TestGoldenFloat32Payload(t *testing.T) {
	w := NewWriter(0)
	w.WriteFloat32(3.14)
	want := []byte{0x40, 0x48, 0xF5, 0xC3}
	if !bytes.Equal(w.Bytes(), want) {
		t.Fatalf("Bytes() = %x, want %x", w.Bytes(), want)
	}
}
