// Copyright 2026 The Chunkcodec Authors
// SPDX-License-Identifier: Apache-2.0

// Package chunkcodec is a binary serialization core built around
// binary-compatible schema evolution: producers and consumers running
// independently versioned Go type definitions of the same logical record
// or sum type can still interoperate, subject to a documented set of
// allowed changes (field addition, field removal, field renaming, making
// a required field optional).
//
// This package holds the primitive codecs, the generic combinators, and
// the serialization context (string deduplication table, reference
// tracker handle, type registry handle, protocol version). The evolution
// engine for records and sum types lives in chunkcodec/evolve, identity
// -preserving reference tracking lives in chunkcodec/refs, and the
// process-wide type registry lives in chunkcodec/registry — all three
// build on the Context and Codec types defined here.
//
// A Codec[T] is symmetric: Write encodes a value of type T to a Writer,
// Read decodes one back. Every codec in this package and its siblings
// implements Codec[T] for some T; combinators like Option, Slice, and Map
// build new codecs out of existing ones.
package chunkcodec
