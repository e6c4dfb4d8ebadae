// Copyright 2026 The Chunkcodec Authors
// SPDX-License-Identifier: Apache-2.0

// Package registry implements chunkcodec's process-wide type registry
// (component G): a mapping between stable type identifiers and the
// codecs registered for them, used when a value's concrete type cannot
// be determined from context (a heterogeneous payload inside an
// otherwise uniform envelope).
//
// Registration takes a mutual-exclusion lock; lookup uses a
// concurrent-reader lock, per spec.md §5. Registration is expected at
// process startup, but runtime registration is permitted.
package registry
