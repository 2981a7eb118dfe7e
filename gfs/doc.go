// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package gfs is the virtual file system layer built on top of
// [github.com/forgehold/gamefs/storage]: [PlatformFile] gives
// stream-like semantics over a storage.File, [Directory] and
// [Archive] are [FileSystem] implementations rooted at a disk path or
// a container archive, [ArchiveSystem] loads Archives through
// caller-registered loaders, and [StorageServer] composes a
// writable userland directory with an ordered stack of read-only
// dataland mounts.
//
// # Identity
//
// Files are looked up either by [StringIdentity] (a path component)
// or by [HashedIdentity] (a caller-computed 64-bit integer, typically
// produced by a [HashFunction] the caller supplies — this package
// never assumes a default one). [Directory] only supports string
// lookups; [StorageServer] can fall back from a string miss to a
// hashed lookup if a hash function was configured.
//
// # Composition
//
// A typical content pipeline loads a [Manifest] describing which
// directories and archives to mount, builds an [ArchiveSystem] with
// format-specific loaders, and wires the result into a
// [StorageServer] that the rest of the application treats as a
// single [FileSystem].
package gfs
