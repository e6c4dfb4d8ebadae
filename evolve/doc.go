// Copyright 2026 The Chunkcodec Authors
// SPDX-License-Identifier: Apache-2.0

// Package evolve implements chunkcodec's evolution engine (component E):
// the record and sum-type on-wire schema with chunked field layout,
// old/new field resolution, transient fields, transparent wrappers, and
// per-record version negotiation.
//
// A record's wire image is a compact evolution header (the schema's
// declared history of field additions, removals, renames, and
// optionalizations) followed by a chunk map: one contiguous byte range
// per evolution step, holding the fields that step introduced. A reader
// built from a different, but compatible, schema version can locate,
// skip, or default every field it cares about using only that header —
// it never needs the writer's Go type.
package evolve
