// Copyright 2026 The Chunkcodec Authors
// SPDX-License-Identifier: Apache-2.0

package chunkcodec

import "github.com/chunkcodec/chunkcodec/internal/wire"

// TextCodec encodes a Go string as length-prefixed UTF-8, applying
// string deduplication when the context's StringDedup option is active
// (see Context.WriteText).
var TextCodec Codec[string] = NewCodec(
	func(ctx *Context, out *wire.Writer, v string) error {
		ctx.WriteText(out, v)
		return nil
	},
	func(ctx *Context, in *wire.Reader) (string, error) {
		return ctx.ReadText(in)
	},
)

// BytesCodec encodes a []byte as a u32 length prefix followed by the raw
// bytes. Unlike text, byte strings are never deduplicated.
var BytesCodec Codec[[]byte] = NewCodec(
	func(_ *Context, out *wire.Writer, v []byte) error {
		out.WriteUint32(uint32(len(v)))
		out.WriteBytes(v)
		return nil
	},
	func(_ *Context, in *wire.Reader) ([]byte, error) {
		n, err := in.ReadUint32()
		if err != nil {
			return nil, wrapEOF(err)
		}
		b, err := in.ReadN(int(n))
		if err != nil {
			return nil, wrapEOF(err)
		}
		out := make([]byte, len(b))
		copy(out, b)
		return out, nil
	},
)
