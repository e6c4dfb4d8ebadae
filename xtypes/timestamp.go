// Copyright 2026 The Chunkcodec Authors
// SPDX-License-Identifier: Apache-2.0

package xtypes

import (
	"time"

	"github.com/chunkcodec/chunkcodec"
	"github.com/chunkcodec/chunkcodec/internal/wire"
)

// TimestampCodec encodes a time.Time as Unix seconds, nanoseconds within
// the second, and its zone name — written through Context.WriteText so
// the (typically small) set of zone names in a stream is deduplicated
// like any other dedup-eligible text. The zone offset, not just its
// name, is carried too, since two zones can share a name across
// historical policy changes.
var TimestampCodec chunkcodec.Codec[time.Time] = chunkcodec.NewCodec(
	func(ctx *chunkcodec.Context, out *wire.Writer, v time.Time) error {
		out.WriteInt64(v.Unix())
		out.WriteInt32(int32(v.Nanosecond()))
		name, offset := v.Zone()
		ctx.WriteText(out, name)
		out.WriteInt32(int32(offset))
		return nil
	},
	func(ctx *chunkcodec.Context, in *wire.Reader) (time.Time, error) {
		sec, err := in.ReadInt64()
		if err != nil {
			return time.Time{}, chunkcodec.WrapError(chunkcodec.KindUnexpectedEndOfInput, err, "reading timestamp seconds")
		}
		nsec, err := in.ReadInt32()
		if err != nil {
			return time.Time{}, chunkcodec.WrapError(chunkcodec.KindUnexpectedEndOfInput, err, "reading timestamp nanoseconds")
		}
		name, err := ctx.ReadText(in)
		if err != nil {
			return time.Time{}, err
		}
		offset, err := in.ReadInt32()
		if err != nil {
			return time.Time{}, chunkcodec.WrapError(chunkcodec.KindUnexpectedEndOfInput, err, "reading timestamp zone offset")
		}
		loc := time.FixedZone(name, int(offset))
		return time.Unix(sec, int64(nsec)).In(loc), nil
	},
)
