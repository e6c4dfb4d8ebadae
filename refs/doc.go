// Copyright 2026 The Chunkcodec Authors
// SPDX-License-Identifier: Apache-2.0

// Package refs implements identity-preserving serialization of shared
// sub-objects, including cyclic graphs (component F of the wire format).
//
// A Tracker is per-call state: it is created fresh by the serialization
// Context and discarded when the call ends. It is never shared across
// goroutines and carries no knowledge of any particular value's type.
package refs
