// Copyright 2026 The Chunkcodec Authors
// SPDX-License-Identifier: Apache-2.0

package xtypes

import (
	"github.com/chunkcodec/chunkcodec"
	"github.com/chunkcodec/chunkcodec/internal/wire"
	"github.com/google/uuid"
)

// UUIDCodec encodes a uuid.UUID as its 16 raw bytes, with no length
// prefix — the length is fixed and known to both sides.
var UUIDCodec chunkcodec.Codec[uuid.UUID] = chunkcodec.NewCodec(
	func(_ *chunkcodec.Context, out *wire.Writer, v uuid.UUID) error {
		out.WriteBytes(v[:])
		return nil
	},
	func(_ *chunkcodec.Context, in *wire.Reader) (uuid.UUID, error) {
		b, err := in.ReadN(16)
		if err != nil {
			return uuid.UUID{}, chunkcodec.WrapError(chunkcodec.KindUnexpectedEndOfInput, err, "reading uuid bytes")
		}
		var id uuid.UUID
		copy(id[:], b)
		return id, nil
	},
)
