// Copyright 2026 The Chunkcodec Authors
// SPDX-License-Identifier: Apache-2.0

package dump

import (
	"strings"
	"testing"

	"github.com/chunkcodec/chunkcodec"
	"github.com/chunkcodec/chunkcodec/evolve"
	"github.com/chunkcodec/chunkcodec/registry"
)

type greeting struct {
	Message string `cbor:"message"`
	Count   int32  `cbor:"count"`
}

func greetingCodec() chunkcodec.Codec[greeting] {
	schema := evolve.NewRecord("Greeting").
		Field(evolve.NewField("message", chunkcodec.TextCodec)).
		Field(evolve.NewField("count", chunkcodec.Int32Codec)).
		Finish()
	return evolve.Record(schema,
		func(g greeting) []any { return []any{g.Message, g.Count} },
		func(vs []any) (greeting, error) {
			return greeting{Message: vs[0].(string), Count: vs[1].(int32)}, nil
		},
	)
}

func TestDiagnoseRendersRegisteredTypeGivenBareTypeID(t *testing.T) {
	reg := registry.New()
	codec := greetingCodec()
	schema := evolve.NewRecord("Greeting").
		Field(evolve.NewField("message", chunkcodec.TextCodec)).
		Field(evolve.NewField("count", chunkcodec.Int32Codec)).
		Finish()
	if err := chunkcodec.RegisterCodec(reg, "example.Greeting", codec, schema.Descriptor()); err != nil {
		t.Fatalf("RegisterCodec: %v", err)
	}

	opts := chunkcodec.Options{Registry: reg}
	data, err := chunkcodec.Marshal(codec, greeting{Message: "hello", Count: 3}, opts)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	resolvedID, text, err := Stream(data, "example.Greeting", opts)
	if err != nil {
		t.Fatalf("Stream: %v", err)
	}
	if resolvedID != "example.Greeting" {
		t.Fatalf("resolvedID = %q, want %q", resolvedID, "example.Greeting")
	}
	if !strings.Contains(text, "hello") {
		t.Fatalf("diagnostic text %q does not mention the message field's value", text)
	}
}

func TestDiagnoseSniffsTypeIDFromDynamicEnvelope(t *testing.T) {
	reg := registry.New()
	codec := greetingCodec()
	schema := evolve.NewRecord("Greeting").
		Field(evolve.NewField("message", chunkcodec.TextCodec)).
		Field(evolve.NewField("count", chunkcodec.Int32Codec)).
		Finish()
	if err := chunkcodec.RegisterCodec(reg, "example.Greeting", codec, schema.Descriptor()); err != nil {
		t.Fatalf("RegisterCodec: %v", err)
	}

	opts := chunkcodec.Options{Registry: reg}
	dyn := chunkcodec.Dynamic(reg)
	data, err := chunkcodec.Marshal(dyn, chunkcodec.DynamicValue{
		TypeID: "example.Greeting",
		Value:  greeting{Message: "hi there", Count: 9},
	}, opts)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	resolvedID, text, err := Stream(data, "", opts)
	if err != nil {
		t.Fatalf("Stream: %v", err)
	}
	if resolvedID != "example.Greeting" {
		t.Fatalf("resolvedID = %q, want %q (sniffed from the envelope, not supplied)", resolvedID, "example.Greeting")
	}
	if !strings.Contains(text, "hi there") {
		t.Fatalf("diagnostic text %q does not mention the message field's value", text)
	}
}

func TestValueUnknownTypeID(t *testing.T) {
	reg := registry.New()
	opts := chunkcodec.Options{Registry: reg}
	_, _, err := Stream([]byte{chunkcodec.CurrentVersion, 0}, "nonexistent.Type", opts)
	if !chunkcodec.IsKind(err, chunkcodec.KindTypeRegistryMiss) {
		t.Fatalf("err = %v, want KindTypeRegistryMiss", err)
	}
}
