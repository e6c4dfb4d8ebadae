// Copyright 2026 The Chunkcodec Authors
// SPDX-License-Identifier: Apache-2.0

package evolve

import (
	"github.com/chunkcodec/chunkcodec"
	"github.com/chunkcodec/chunkcodec/internal/wire"
)

// Record builds a chunkcodec.Codec[T] from schema, project, and
// construct: project extracts a record's field values, in schema's
// declared order, as []any; construct rebuilds a T from that same
// ordered slice, populated for every field the schema declares (using
// defaults where the wire didn't have to say). schema must have had
// Finish called on it.
func Record[T any](schema *RecordSchema, project func(T) []any, construct func([]any) (T, error)) chunkcodec.Codec[T] {
	rc := &recordCodec[T]{schema: schema, project: project, construct: construct}
	return chunkcodec.NewCodec(rc.write, rc.read)
}

type recordCodec[T any] struct {
	schema    *RecordSchema
	project   func(T) []any
	construct func([]any) (T, error)
}

func (rc *recordCodec[T]) write(ctx *chunkcodec.Context, out *wire.Writer, v T) error {
	schema := rc.schema
	values := rc.project(v)

	if schema.transparent {
		f := schema.fields[0]
		return f.codec.writeAny(ctx, out, values[0])
	}

	buckets := make([][]int, schema.chunkCount())
	for i, f := range schema.fields {
		if f.transient || f.removed {
			continue
		}
		c := schema.chunkFor(f.Name)
		buckets[c] = append(buckets[c], i)
	}

	out.WriteByte(schema.version)
	if err := writeHeader(ctx, out, schema.steps); err != nil {
		return err
	}

	lengthOffsets := make([]int, schema.chunkCount())
	for i := range lengthOffsets {
		lengthOffsets[i] = out.Reserve(4)
	}
	for chunkIdx, fieldIdxs := range buckets {
		start := out.Len()
		for _, fi := range fieldIdxs {
			f := schema.fields[fi]
			vi := schema.fieldValueIndex[fi]
			if err := f.codec.writeAny(ctx, out, values[vi]); err != nil {
				return chunkcodec.WithField(err, f.Name)
			}
		}
		out.PatchUint32At(lengthOffsets[chunkIdx], uint32(out.Len()-start))
	}
	return nil
}

func (rc *recordCodec[T]) read(ctx *chunkcodec.Context, in *wire.Reader) (T, error) {
	var zero T
	schema := rc.schema

	if schema.transparent {
		f := schema.fields[0]
		v, err := f.codec.readAny(ctx, in)
		if err != nil {
			return zero, chunkcodec.WithField(err, f.Name)
		}
		return rc.construct([]any{v})
	}

	writerVersion, err := in.ReadByte()
	if err != nil {
		return zero, chunkcodec.WrapError(chunkcodec.KindUnexpectedEndOfInput, err, "reading record schema version")
	}
	writerSteps, err := readHeader(ctx, in)
	if err != nil {
		return zero, err
	}
	numChunks := uint32(len(writerSteps))
	chunkLens := make([]uint32, numChunks)
	for i := range chunkLens {
		l, err := in.ReadUint32()
		if err != nil {
			return zero, chunkcodec.WrapError(chunkcodec.KindMalformedHeader, err, "reading chunk %d length", i)
		}
		chunkLens[i] = l
	}
	chunkReaders := make([]*wire.Reader, numChunks)
	for i, l := range chunkLens {
		b, err := in.ReadN(int(l))
		if err != nil {
			return zero, chunkcodec.WrapError(chunkcodec.KindUnexpectedEndOfInput, err, "reading chunk %d payload (%d bytes)", i, l)
		}
		chunkReaders[i] = wire.NewReader(b)
	}

	values := make([]any, schema.liveFieldCount)
	for i, f := range schema.fields {
		if f.removed {
			// A tombstone: if the writer's own history predates the
			// FieldRemoved step (it still declared and wrote this
			// field), its bytes are sitting in this chunk ahead of
			// whatever live field comes next. Consume and discard them
			// so that field reads from the correct offset; a writer
			// that already knows about the removal never wrote them.
			step, ok := schema.removedAtStepIndex(f.Name)
			chunkIdx := schema.chunkFor(f.Name)
			if ok && step >= int(numChunks) && chunkIdx < int(numChunks) {
				if _, err := f.codec.readAny(ctx, chunkReaders[chunkIdx]); err != nil {
					return zero, chunkcodec.WithField(err, f.Name)
				}
			}
			continue
		}

		vi := schema.fieldValueIndex[i]

		if f.transient {
			if f.dflt != nil {
				values[vi] = f.dflt()
			}
			continue
		}

		chunkIdx := schema.chunkFor(f.Name)
		if chunkIdx >= int(numChunks) {
			if f.hasDflt {
				values[vi] = valueOrNil(f)
				continue
			}
			return zero, chunkcodec.WithField(
				chunkcodec.NewError(chunkcodec.KindMissingField, "field %q not present in writer schema version %d and has no default", f.Name, writerVersion), f.Name)
		}

		reader := chunkReaders[chunkIdx]
		if madeOptStep, ok := schema.madeOptionalAtStep(f.Name); ok && f.rawInner != nil && int(writerVersion) < madeOptStep {
			v, err := f.rawInner.readAny(ctx, reader)
			if err != nil {
				return zero, chunkcodec.WithField(err, f.Name)
			}
			values[vi] = v
			continue
		}

		v, err := f.codec.readAny(ctx, reader)
		if err != nil {
			return zero, chunkcodec.WithField(err, f.Name)
		}
		values[vi] = v
	}

	return rc.construct(values)
}

// valueOrNil runs f's default producer, or returns nil if it has none —
// used for the "field entirely absent from the writer's schema" path,
// distinct from the transient path which always has a default by
// construction (Field.Transient sets hasDflt unconditionally).
func valueOrNil(f *Field) any {
	if f.dflt == nil {
		return nil
	}
	return f.dflt()
}
