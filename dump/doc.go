// Copyright 2026 The Chunkcodec Authors
// SPDX-License-Identifier: Apache-2.0

// Package dump renders a chunkcodec wire image as human-readable
// diagnostic text, without needing the original Go type: it looks the
// stream's declared type id up in a chunkcodec/registry.Registry,
// decodes through that registered codec into a generic value, then
// re-emits it via fxamacker/cbor's diagnostic notation (RFC 8949 §8),
// the same textual form a CBOR-based diagnostic tool would produce for
// its own streams.
package dump
