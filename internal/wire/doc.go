// Copyright 2026 The Chunkcodec Authors
// SPDX-License-Identifier: Apache-2.0

// Package wire provides the byte-level input and output primitives the
// rest of chunkcodec is built on: a cursor over an input slice and a
// growable output buffer, with the fixed-width big-endian primitive reads
// and writes every higher-level codec composes.
//
// Nothing in this package knows about records, evolution, or the type
// registry. It is the lowest layer: component A of the wire format.
package wire
