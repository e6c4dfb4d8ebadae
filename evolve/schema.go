// Copyright 2026 The Chunkcodec Authors
// SPDX-License-Identifier: Apache-2.0

package evolve

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/chunkcodec/chunkcodec"
	"github.com/chunkcodec/chunkcodec/internal/wire"
)

// fieldCodec is the type-erased read/write pair a Field wraps its typed
// Codec[T] in, so RecordSchema can hold a homogeneous field list while
// Record's project/construct functions still deal in concrete Go
// values via []any.
type fieldCodec interface {
	writeAny(ctx *chunkcodec.Context, out *wire.Writer, v any) error
	readAny(ctx *chunkcodec.Context, in *wire.Reader) (any, error)
}

type erasedCodec[T any] struct{ inner chunkcodec.Codec[T] }

func (e erasedCodec[T]) writeAny(ctx *chunkcodec.Context, out *wire.Writer, v any) error {
	return e.inner.Write(ctx, out, v.(T))
}

func (e erasedCodec[T]) readAny(ctx *chunkcodec.Context, in *wire.Reader) (any, error) {
	return e.inner.Read(ctx, in)
}

// Field describes one field of a record schema: its current name, its
// codec, and how it behaves under evolution and reconstruction.
type Field struct {
	Name      string
	codec     fieldCodec
	rawInner  fieldCodec
	optional  bool
	transient bool
	removed   bool
	hasDflt   bool
	dflt      func() any
}

// NewField declares a field named name whose wire representation is
// codec. Chain the returned *Field's builder methods to mark it optional,
// transient, or defaulted.
func NewField[T any](name string, codec chunkcodec.Codec[T]) *Field {
	return &Field{Name: name, codec: erasedCodec[T]{inner: codec}}
}

// OptionalField declares a field of Go type *T (present/absent) whose
// history includes, or will include, a FieldMadeOptional step. Besides
// the ordinary Option-tagged wire form, it also knows how to read the raw,
// untagged T that an older writer — one that predates the field becoming
// optional — would have written in its place; the Record codec picks between
// the two representations by comparing the writer's declared version
// against the schema's FieldMadeOptional step index.
func OptionalField[T any](name string, inner chunkcodec.Codec[T]) *Field {
	return &Field{
		Name:     name,
		codec:    erasedCodec[*T]{inner: chunkcodec.Option(inner)},
		rawInner: rawOptionalFallback[T]{inner: inner},
		optional: true,
	}
}

// rawOptionalFallback reads a field's pre-evolution, untagged
// representation and boxes it as present, matching the shape the
// Option-tagged codec's Read would have produced. It is read-only: a
// writer, describing its own schema version, never emits this form
// deliberately.
type rawOptionalFallback[T any] struct{ inner chunkcodec.Codec[T] }

func (r rawOptionalFallback[T]) writeAny(ctx *chunkcodec.Context, out *wire.Writer, v any) error {
	panic("evolve: rawOptionalFallback is read-only")
}

func (r rawOptionalFallback[T]) readAny(ctx *chunkcodec.Context, in *wire.Reader) (any, error) {
	v, err := r.inner.Read(ctx, in)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Removed declares a tombstone at the field named name's original
// declaration position, with codec matching whatever type it held
// before retirement. Pair it with a FieldRemoved step of the same name
// in Evolve.
//
// A tombstone exists to preserve chunk-relative byte order: when a
// removed field shared a chunk with another field still declared after
// it, an older writer that predates the removal wrote that field's
// bytes contiguously with its neighbors, and a reader that simply
// deleted the Field call would read its still-live neighbor's bytes
// from the wrong offset. Declaring the tombstone here keeps the slot,
// so recordCodec.read can consume (and discard) the older writer's
// bytes for it before moving on to whatever comes next in the chunk.
// It never appears in the record's project/construct values.
//
// Finish panics if a FieldRemoved step's field shares a chunk with
// another still-live field and has no matching Removed tombstone,
// since declaration order alone can no longer be trusted to recover
// its position.
func Removed[T any](name string, codec chunkcodec.Codec[T]) *Field {
	return &Field{Name: name, codec: erasedCodec[T]{inner: codec}, removed: true}
}

// Optional marks the field as declared optional in the current schema
// (as opposed to becoming optional partway through the type's history —
// see the Evolve step FieldMadeOptional for that case). codec must
// already be an Option-shaped Codec (e.g. built with chunkcodec.Option)
// for this to round-trip correctly.
func (f *Field) Optional() *Field {
	f.optional = true
	return f
}

// Transient marks the field as never written to the wire: on write it is
// skipped entirely, on read it is always reconstructed from its default
// (spec.md §4.E transient fields).
func (f *Field) Transient() *Field {
	f.transient = true
	f.hasDflt = true
	return f
}

// Default supplies the value used to fill this field when a reader's
// schema has it but the data on the wire does not (because it is
// transient, or because it was added after the writer's version).
func (f *Field) Default(v any) *Field {
	f.hasDflt = true
	f.dflt = func() any { return v }
	return f
}

// DefaultFunc is like Default but computes the value lazily, once per
// read, for defaults that must not be shared (e.g. a fresh empty slice).
func (f *Field) DefaultFunc(fn func() any) *Field {
	f.hasDflt = true
	f.dflt = fn
	return f
}

// RecordSchema is a record type's declared field list plus its evolution
// history. Build one with NewRecord, add fields with Field, declare
// history with Evolve, and finish with Finish before passing it to
// Record.
type RecordSchema struct {
	TypeName    string
	fields      []*Field
	steps       []Step
	transparent bool

	version uint8

	fieldChunk      map[string]int
	madeOptionalAt  map[string]int
	removedAtStep   map[string]int
	aliasToCanon    map[string]string
	fieldValueIndex []int
	liveFieldCount  int
}

// NewRecord starts a schema for the record type named typeName. The name
// is used only for diagnostics; it is not written to the wire.
func NewRecord(typeName string) *RecordSchema {
	return &RecordSchema{TypeName: typeName}
}

// Field appends a field to the schema, in declaration order. Declaration
// order is significant: it is also each field's positional order within
// whatever chunk it is assigned to (spec.md §4.E: "field identity within
// a chunk is positional, relying on the schema's declared order").
func (s *RecordSchema) Field(f *Field) *RecordSchema {
	s.fields = append(s.fields, f)
	return s
}

// Evolve declares the schema's full evolution history, oldest first. If
// omitted, the schema defaults to a single InitialVersion step covering
// every field added via Field.
func (s *RecordSchema) Evolve(steps ...Step) *RecordSchema {
	s.steps = steps
	return s
}

// Transparent marks the record as a single-field wrapper that contributes
// no chunk framing of its own: its wire image is exactly its one field's
// wire image (spec.md §4.E transparent records).
func (s *RecordSchema) Transparent() *RecordSchema {
	s.transparent = true
	return s
}

// Finish validates and precomputes the schema's chunk assignments. It
// must be called exactly once, after all Field and Evolve calls, before
// the schema is used by Record.
func (s *RecordSchema) Finish() *RecordSchema {
	if len(s.steps) == 0 {
		s.steps = []Step{InitialVersion(len(s.fields))}
	}

	s.fieldChunk = make(map[string]int)
	s.madeOptionalAt = make(map[string]int)
	s.removedAtStep = make(map[string]int)
	s.aliasToCanon = make(map[string]string)

	canonOf := func(name string) string {
		for {
			if c, ok := s.aliasToCanon[name]; ok && c != name {
				name = c
				continue
			}
			return name
		}
	}

	for idx, step := range s.steps {
		switch step.Kind {
		case StepFieldAdded:
			s.fieldChunk[step.Name] = idx
		case StepFieldMadeOptional:
			s.madeOptionalAt[canonOf(step.Name)] = idx
		case StepFieldRemoved:
			s.removedAtStep[canonOf(step.Name)] = idx
		case StepFieldRenamed:
			s.aliasToCanon[step.NewName] = canonOf(step.OldName)
		}
	}
	s.version = uint8(len(s.steps) - 1)

	s.fieldValueIndex = make([]int, len(s.fields))
	vi := 0
	tombstoned := make(map[string]bool)
	for i, f := range s.fields {
		if f.removed {
			s.fieldValueIndex[i] = -1
			tombstoned[f.Name] = true
			continue
		}
		s.fieldValueIndex[i] = vi
		vi++
	}
	s.liveFieldCount = vi

	for _, step := range s.steps {
		if step.Kind != StepFieldRemoved {
			continue
		}
		canon := canonOf(step.Name)
		if tombstoned[canon] {
			continue
		}
		chunk := s.chunkFor(canon)
		for _, f := range s.fields {
			if f.removed || f.transient {
				continue
			}
			if s.chunkFor(f.Name) == chunk {
				panic(fmt.Sprintf(
					"evolve: %s.%s was removed from chunk %d, which still holds live field %q; "+
						"redeclare %q via evolve.Removed to keep its byte position, or move it to a chunk of its own",
					s.TypeName, step.Name, chunk, f.Name, step.Name))
			}
		}
	}

	return s
}

func (s *RecordSchema) canonicalName(currentName string) string {
	name := currentName
	for {
		if c, ok := s.aliasToCanon[name]; ok && c != name {
			name = c
			continue
		}
		return name
	}
}

// chunkFor returns the chunk index a field (identified by its current
// name) is assigned to: 0 unless a FieldAdded step named it (under
// whatever name it had at the time).
func (s *RecordSchema) chunkFor(currentName string) int {
	if c, ok := s.fieldChunk[s.canonicalName(currentName)]; ok {
		return c
	}
	return 0
}

// madeOptionalAtStep reports the step index at which the field became
// optional, if its history includes a FieldMadeOptional step.
func (s *RecordSchema) madeOptionalAtStep(currentName string) (int, bool) {
	step, ok := s.madeOptionalAt[s.canonicalName(currentName)]
	return step, ok
}

// removedAtStepIndex reports the step index at which name (given in its
// canonical, pre-rename form) was retired, if the schema's history
// includes a FieldRemoved step for it.
func (s *RecordSchema) removedAtStepIndex(canonName string) (int, bool) {
	step, ok := s.removedAtStep[canonName]
	return step, ok
}

// chunkCount is the number of chunks this schema's wire image carries:
// one per evolution step, including tombstones for steps that never
// owned a byte range of their own.
func (s *RecordSchema) chunkCount() int {
	return len(s.steps)
}

// Descriptor returns a stable byte representation of the schema's shape
// — its type name, evolution history, and field names in declaration
// order — for use as input to registry.Fingerprint. It intentionally
// omits anything that does not affect wire compatibility (Go closures,
// default producers).
func (s *RecordSchema) Descriptor() []byte {
	var b bytes.Buffer
	writeDescString(&b, "record:"+s.TypeName)
	for _, step := range s.steps {
		writeDescStep(&b, step)
	}
	for _, f := range s.fields {
		writeDescString(&b, f.Name)
		var flags byte
		if f.optional {
			flags |= 1
		}
		if f.transient {
			flags |= 2
		}
		if f.removed {
			flags |= 4
		}
		b.WriteByte(flags)
	}
	return b.Bytes()
}

func writeDescString(b *bytes.Buffer, s string) {
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(s)))
	b.Write(lenBuf[:])
	b.WriteString(s)
}

func writeDescStep(b *bytes.Buffer, s Step) {
	b.WriteByte(byte(s.Kind))
	switch s.Kind {
	case StepInitialVersion:
		var buf [4]byte
		binary.BigEndian.PutUint32(buf[:], uint32(s.FieldCount))
		b.Write(buf[:])
	case StepFieldAdded, StepFieldMadeOptional, StepFieldRemoved:
		writeDescString(b, s.Name)
	case StepFieldRenamed:
		writeDescString(b, s.OldName)
		writeDescString(b, s.NewName)
	}
}
