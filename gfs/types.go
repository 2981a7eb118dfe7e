// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package gfs

import "github.com/forgehold/gamefs/storage"

// StringIdentity names a file by a single path component (not a full
// path) relative to whatever FileSystem resolves it.
type StringIdentity = string

// HashedIdentity names a file by a caller-computed 64-bit integer,
// typically produced by a [HashFunction] over a [StringIdentity].
type HashedIdentity = uint64

// HashFunction maps a StringIdentity to a HashedIdentity. There is no
// default implementation in this package; see package githash for an
// optional, opt-in one built on BLAKE3.
type HashFunction func(StringIdentity) HashedIdentity

// VFSFile is the type-erased logical file handle returned by every
// [FileSystem] implementation, regardless of the concrete file type
// backing it.
type VFSFile interface {
	// Seek moves the cursor and returns its new absolute position.
	Seek(offset storage.Offset, whence storage.Seek) (storage.Size, error)
	// Tell returns the current cursor position.
	Tell() storage.Size
	// GetSize returns the current size of the underlying file.
	GetSize() (storage.Size, error)

	// Read reads at the current cursor, advancing it by the number
	// of bytes transferred.
	Read(buf []byte) (storage.Size, error)
	// ReadBytes allocates and reads up to requested bytes at the
	// current cursor.
	ReadBytes(requested storage.Size) ([]byte, error)
	// ReadFrom reads at an explicit offset without touching the
	// cursor.
	ReadFrom(offset storage.Offset, buf []byte) (storage.Size, error)

	// Write writes at the current cursor, advancing it by the
	// number of bytes transferred. Writes are flushed before
	// returning.
	Write(buf []byte) (storage.Size, error)
	// WriteTo writes at an explicit offset without touching the
	// cursor. Writes are flushed before returning.
	WriteTo(offset storage.Offset, buf []byte) (storage.Size, error)

	// Close releases the underlying storage file.
	Close() error
}

// FileSystem is the capability interface every mountable backend
// (disk directory, archive, storage server) implements. It returns a
// type-erased [VFSFile] regardless of which concrete file type the
// implementation is parameterized over.
type FileSystem interface {
	// GetPath returns the filesystem's root path, for diagnostics.
	GetPath() string
	// GetFileByName looks up a file by string identity.
	GetFileByName(identity StringIdentity, access storage.FileAccess) (VFSFile, error)
	// GetFileByHash looks up a file by hashed identity.
	GetFileByHash(identity HashedIdentity, access storage.FileAccess) (VFSFile, error)
}
