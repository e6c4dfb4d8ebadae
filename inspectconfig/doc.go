// Copyright 2026 The Chunkcodec Authors
// SPDX-License-Identifier: Apache-2.0

// Package inspectconfig loads configuration for the chunkcodec-inspect
// command.
//
// Configuration is loaded from a single file specified by:
//   - the --config flag, or
//   - the CHUNKCODEC_CONFIG environment variable.
//
// There are no fallbacks and no automatic discovery of a config file in
// well-known locations. This keeps a diagnostic run deterministic and
// auditable: the file it read is always the one named explicitly.
package inspectconfig
