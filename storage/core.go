// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package storage is the mmap-backed storage engine: [File] owns a
// platform file handle, [View] is a mapped byte window over part of
// that file with its own read/write/seek cursor. Nothing above this
// package knows whether a file lives on POSIX or Windows.
package storage

// Offset is a signed file offset. Negative offsets are meaningful as
// deltas in Seek(Current) and Seek(End).
type Offset = int64

// Size is an unsigned byte count or absolute position.
type Size = uint64

// FileAccess is a bitwise combination of the access modes a [File]
// can be opened with. Every bit combination must be accepted by
// NewFile; only the named combinations below are given meaning
// beyond "read and/or write and/or execute".
type FileAccess uint8

const (
	// Read grants read access.
	Read FileAccess = 1 << iota
	// Write grants write access. The file is created (and its
	// parent directory made) if it does not already exist.
	Write
	// Execute grants execute access. Reserved for mapped code
	// pages; unused by the resolver stack itself.
	Execute

	// ReadWrite is the common read+write combination.
	ReadWrite = Read | Write
	// ReadExecute combines read and execute access.
	ReadExecute = Read | Execute
	// ReadWriteExecute grants every access bit.
	ReadWriteExecute = Read | Write | Execute
)

// Seek identifies the origin a [View] or PlatformFile seek is
// relative to.
type Seek uint8

const (
	// SeekSet seeks to an absolute offset.
	SeekSet Seek = iota
	// SeekCurrent seeks relative to the current cursor.
	SeekCurrent
	// SeekEnd seeks relative to the end of the file or view.
	SeekEnd

	// SeekStart is an alias for SeekSet.
	SeekStart = SeekSet
	// SeekBeginning is an alias for SeekSet.
	SeekBeginning = SeekSet
)

// AutoFullMapSize is a public policy constant for callers that want
// to decide, on their own, whether to map an entire file (below this
// threshold) in a single view rather than paging through ranges. The
// engine itself never consults this value.
const AutoFullMapSize Size = 256 * 1024 * 1024
