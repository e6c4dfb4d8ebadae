// Copyright 2026 The Chunkcodec Authors
// SPDX-License-Identifier: Apache-2.0

// Package xtypes provides Codecs for common domain value types that are
// not part of chunkcodec's core primitive set: timestamps, arbitrary
// precision decimals, UUIDs, URLs, IP addresses, and bit vectors. Each
// is built entirely out of chunkcodec's own primitives and combinators,
// the same way an application-level codec would be — nothing here needs
// access to unexported package internals.
package xtypes
