// Copyright 2026 The Chunkcodec Authors
// SPDX-License-Identifier: Apache-2.0

package registry

import "testing"

type stubCodec struct {
	fingerprint []byte
}

func (s *stubCodec) Fingerprint() []byte { return s.fingerprint }
func (s *stubCodec) WriteAny(ctx, out, value any) error {
	return nil
}
func (s *stubCodec) ReadAny(ctx, in any) (any, error) {
	return nil, nil
}

func TestRegisterAndLookup(t *testing.T) {
	r := New()
	codec := &stubCodec{fingerprint: []byte("v1")}

	if err := r.Register("example.Widget", codec); err != nil {
		t.Fatalf("Register: %v", err)
	}

	got, ok := r.Lookup("example.Widget")
	if !ok || got != codec {
		t.Fatalf("Lookup = (%v, %v), want (codec, true)", got, ok)
	}

	if _, ok := r.Lookup("example.Missing"); ok {
		t.Fatal("Lookup succeeded for unregistered id")
	}
}

func TestRegisterIdempotent(t *testing.T) {
	r := New()
	codec := &stubCodec{fingerprint: []byte("v1")}

	if err := r.Register("example.Widget", codec); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	if err := r.Register("example.Widget", codec); err != nil {
		t.Fatalf("second Register (same fingerprint): %v", err)
	}
}

func TestRegisterConflict(t *testing.T) {
	r := New()
	first := &stubCodec{fingerprint: []byte("v1")}
	second := &stubCodec{fingerprint: []byte("v2")}

	if err := r.Register("example.Widget", first); err != nil {
		t.Fatalf("first Register: %v", err)
	}

	err := r.Register("example.Widget", second)
	if err == nil {
		t.Fatal("expected ConflictError, got nil")
	}
	var conflict *ConflictError
	if _, ok := err.(*ConflictError); !ok {
		t.Fatalf("err = %v (%T), want *ConflictError", err, err)
	}
	_ = conflict
}

func TestFingerprintDeterministic(t *testing.T) {
	a := Fingerprint([]byte("schema-bytes"))
	b := Fingerprint([]byte("schema-bytes"))
	if len(a) == 0 || string(a) != string(b) {
		t.Fatalf("Fingerprint not deterministic: %x vs %x", a, b)
	}

	c := Fingerprint([]byte("different-schema-bytes"))
	if string(a) == string(c) {
		t.Fatal("different descriptors produced the same fingerprint")
	}
}
