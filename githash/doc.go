// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package githash provides an optional, opt-in gfs.HashFunction built
// on BLAKE3. Nothing in gfs depends on this package: callers who want
// hashed lookups choose a hash function explicitly, since the
// original C++ left the choice to the embedding application rather
// than baking one in.
package githash
