// Copyright 2026 The Chunkcodec Authors
// SPDX-License-Identifier: Apache-2.0

package evolve

import (
	"bytes"
	"io"

	"github.com/chunkcodec/chunkcodec"
	"github.com/chunkcodec/chunkcodec/internal/wire"
	"github.com/klauspost/compress/gzip"
)

// writeStep encodes one Step. Field/constructor names go through
// ctx.WriteText so they participate in the same string table as every
// other dedup-eligible name in the stream.
func writeStep(ctx *chunkcodec.Context, out *wire.Writer, s Step) {
	out.WriteByte(byte(s.Kind))
	switch s.Kind {
	case StepInitialVersion:
		out.WriteUint32(uint32(s.FieldCount))
	case StepFieldAdded, StepFieldMadeOptional, StepFieldRemoved:
		ctx.WriteText(out, s.Name)
	case StepFieldRenamed:
		ctx.WriteText(out, s.OldName)
		ctx.WriteText(out, s.NewName)
	}
}

func readStep(ctx *chunkcodec.Context, in *wire.Reader) (Step, error) {
	kindByte, err := in.ReadByte()
	if err != nil {
		return Step{}, chunkcodec.WrapError(chunkcodec.KindMalformedHeader, err, "reading evolution step tag")
	}
	kind := StepKind(kindByte)
	switch kind {
	case StepInitialVersion:
		n, err := in.ReadUint32()
		if err != nil {
			return Step{}, chunkcodec.WrapError(chunkcodec.KindMalformedHeader, err, "reading initial field count")
		}
		return InitialVersion(int(n)), nil
	case StepFieldAdded:
		name, err := ctx.ReadText(in)
		if err != nil {
			return Step{}, err
		}
		return FieldAdded(name), nil
	case StepFieldMadeOptional:
		name, err := ctx.ReadText(in)
		if err != nil {
			return Step{}, err
		}
		return FieldMadeOptional(name), nil
	case StepFieldRemoved:
		name, err := ctx.ReadText(in)
		if err != nil {
			return Step{}, err
		}
		return FieldRemoved(name), nil
	case StepFieldRenamed:
		oldName, err := ctx.ReadText(in)
		if err != nil {
			return Step{}, err
		}
		newName, err := ctx.ReadText(in)
		if err != nil {
			return Step{}, err
		}
		return FieldRenamed(oldName, newName), nil
	default:
		return Step{}, chunkcodec.NewError(chunkcodec.KindMalformedHeader, "unknown evolution step kind %d", kindByte)
	}
}

// encodeSteps renders steps to their plain (uncompressed) wire form:
// a u32 count followed by each step in order.
func encodeSteps(ctx *chunkcodec.Context, steps []Step) []byte {
	buf := wire.NewWriter(32 * len(steps))
	buf.WriteUint32(uint32(len(steps)))
	for _, s := range steps {
		writeStep(ctx, buf, s)
	}
	return buf.Bytes()
}

func decodeSteps(ctx *chunkcodec.Context, in *wire.Reader) ([]Step, error) {
	n, err := in.ReadUint32()
	if err != nil {
		return nil, chunkcodec.WrapError(chunkcodec.KindMalformedHeader, err, "reading evolution step count")
	}
	steps := make([]Step, 0, n)
	for i := uint32(0); i < n; i++ {
		s, err := readStep(ctx, in)
		if err != nil {
			return nil, err
		}
		steps = append(steps, s)
	}
	return steps, nil
}

// writeHeader emits an evolution header: a 1-byte compression flag, a u32
// byte length, then that many header bytes (gzip-compressed when
// ctx.Options().CompressHeadersAbove is positive and the plain encoding
// meets that threshold; raw otherwise). A reader accepts either
// representation regardless of its own options, per spec.md's compression
// interop resolution.
func writeHeader(ctx *chunkcodec.Context, out *wire.Writer, steps []Step) error {
	plain := encodeSteps(ctx, steps)

	threshold := ctx.Options().CompressHeadersAbove
	if threshold <= 0 || len(plain) < threshold {
		out.WriteBool(false)
		out.WriteUint32(uint32(len(plain)))
		out.WriteBytes(plain)
		return nil
	}

	var compressed bytes.Buffer
	gz := gzip.NewWriter(&compressed)
	if _, err := gz.Write(plain); err != nil {
		return chunkcodec.WrapError(chunkcodec.KindMalformedHeader, err, "gzip-compressing evolution header")
	}
	if err := gz.Close(); err != nil {
		return chunkcodec.WrapError(chunkcodec.KindMalformedHeader, err, "closing evolution header gzip stream")
	}
	out.WriteBool(true)
	out.WriteUint32(uint32(compressed.Len()))
	out.WriteBytes(compressed.Bytes())
	return nil
}

// readHeader reads what writeHeader wrote and returns the decoded steps.
func readHeader(ctx *chunkcodec.Context, in *wire.Reader) ([]Step, error) {
	compressed, err := in.ReadBool()
	if err != nil {
		return nil, chunkcodec.WrapError(chunkcodec.KindMalformedHeader, err, "reading evolution header compression flag")
	}
	length, err := in.ReadUint32()
	if err != nil {
		return nil, chunkcodec.WrapError(chunkcodec.KindMalformedHeader, err, "reading evolution header length")
	}
	raw, err := in.ReadN(int(length))
	if err != nil {
		return nil, chunkcodec.WrapError(chunkcodec.KindUnexpectedEndOfInput, err, "reading %d evolution header bytes", length)
	}

	plain := raw
	if compressed {
		gz, err := gzip.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, chunkcodec.WrapError(chunkcodec.KindMalformedHeader, err, "opening gzip evolution header")
		}
		defer gz.Close()
		decompressed, err := io.ReadAll(gz)
		if err != nil {
			return nil, chunkcodec.WrapError(chunkcodec.KindMalformedHeader, err, "reading gzip evolution header")
		}
		plain = decompressed
	}

	return decodeSteps(ctx, wire.NewReader(plain))
}
