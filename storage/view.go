// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package storage

import (
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/forgehold/gamefs/platform"
)

// View is a memory-mapped byte window over part of a [File]. It
// exposes a read/write cursor shared by the cursor-relative methods
// (Read, Write, Seek) and offset-explicit methods that bypass the
// cursor entirely (ReadFrom, WriteTo).
//
// The OS mapping always covers a granularity-aligned superset of the
// requested [offset, offset+length) range; window is the sub-slice
// of the mapping corresponding exactly to that logical range, so
// every exported method can index window directly with 0-based
// positions without re-deriving the alignment adjustment.
//
// Cursor-relative methods take the exclusive side of mu; offset
// -explicit methods take no lock at all and may race freely against
// each other over non-overlapping ranges — it is the caller's
// responsibility not to overlap them with a concurrent cursor
// -mutating call.
type View struct {
	mu sync.RWMutex

	file       *File
	fileOffset Offset
	viewLength Size

	mapped    []byte // raw OS mapping, granularity-aligned
	window    []byte // sub-slice of mapped == [fileOffset, fileOffset+viewLength)
	mapHandle platform.Handle

	cursor Offset
}

// newView maps [offset, offset+length) of file and returns the View.
// Called only from File.GetView, which has already validated and
// (for writable files) grown the underlying file.
func newView(file *File, offset Offset, length Size) (*View, error) {
	granularity := platform.Granularity()
	alignedBase := (Size(offset) / granularity) * granularity
	mapLength := (Size(offset) - alignedBase) + length

	mapped, mapHandle, err := mapRegion(file, alignedBase, mapLength)
	if err != nil {
		return nil, err
	}

	windowStart := Size(offset) - alignedBase
	window := mapped[windowStart : windowStart+length : windowStart+length]

	return &View{
		file:       file,
		fileOffset: offset,
		viewLength: length,
		mapped:     mapped,
		window:     window,
		mapHandle:  mapHandle,
	}, nil
}

// GetSize returns the logical length of the view.
func (v *View) GetSize() Size {
	return v.viewLength
}

// FileOffset returns the file offset the view begins at.
func (v *View) FileOffset() Offset {
	return v.fileOffset
}

// Tell returns the current cursor position within the view.
func (v *View) Tell() Size {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return Size(v.cursor)
}

// Seek moves the cursor and clamps it to [0, GetSize()]. The clamp
// is applied to the resulting position, not to the sign of the
// requested delta, so a SeekCurrent with a large negative offset
// lands at 0 rather than being rejected.
func (v *View) Seek(offset Offset, whence Seek) (Size, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	cur := v.cursor
	switch whence {
	case SeekSet:
		cur = offset
	case SeekCurrent:
		cur = v.cursor + offset
	case SeekEnd:
		cur = Offset(v.viewLength) + offset
	default:
		return 0, fmt.Errorf("storage: View.Seek: invalid whence %d", whence)
	}

	if cur < 0 {
		cur = 0
	} else if Size(cur) > v.viewLength {
		cur = Offset(v.viewLength)
	}
	v.cursor = cur
	return Size(cur), nil
}

// CalculateAllowance returns the number of bytes actually usable
// starting at pos: zero if pos is at or past the end of the view,
// otherwise min(requested, GetSize()-pos). This is the contract that
// keeps every read/write inside the mapped window.
func (v *View) CalculateAllowance(pos Size, requested Size) Size {
	if pos >= v.viewLength {
		return 0
	}
	avail := v.viewLength - pos
	if requested < avail {
		return requested
	}
	return avail
}

// copyOut safely copies up to len(buf) bytes from the mapped window
// starting at pos. It guards the mmap access against SIGBUS-class
// faults from a failing backing store with debug.SetPanicOnFault,
// turning such a fault into a returned error.
func (v *View) copyOut(pos Size, buf []byte) (n Size, err error) {
	allowed := v.CalculateAllowance(pos, Size(len(buf)))
	if allowed == 0 {
		return 0, nil
	}

	old := debug.SetPanicOnFault(true)
	defer func() {
		debug.SetPanicOnFault(old)
		if r := recover(); r != nil {
			err = fmt.Errorf("storage: page fault reading view at offset %d: %v", pos, r)
		}
	}()

	n = Size(copy(buf[:allowed], v.window[pos:pos+allowed]))
	return n, nil
}

// copyIn safely copies up to len(buf) bytes into the mapped window
// starting at pos, under the same fault guard as copyOut.
func (v *View) copyIn(pos Size, buf []byte) (n Size, err error) {
	allowed := v.CalculateAllowance(pos, Size(len(buf)))
	if allowed == 0 {
		return 0, nil
	}

	old := debug.SetPanicOnFault(true)
	defer func() {
		debug.SetPanicOnFault(old)
		if r := recover(); r != nil {
			err = fmt.Errorf("storage: page fault writing view at offset %d: %v", pos, r)
		}
	}()

	n = Size(copy(v.window[pos:pos+allowed], buf[:allowed]))
	return n, nil
}

// Read reads at the current cursor, advancing it by the number of
// bytes transferred.
func (v *View) Read(buf []byte) (Size, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	n, err := v.copyOut(Size(v.cursor), buf)
	v.cursor += Offset(n)
	return n, err
}

// ReadBytes allocates and reads up to requested bytes at the current
// cursor, returning exactly as many bytes as were transferred. This
// is the dynamic-buffer counterpart to Read.
func (v *View) ReadBytes(requested Size) ([]byte, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	allowed := v.CalculateAllowance(Size(v.cursor), requested)
	buf := make([]byte, allowed)
	n, err := v.copyOut(Size(v.cursor), buf)
	v.cursor += Offset(n)
	return buf[:n], err
}

// ReadFrom reads requested bytes starting at an explicit offset
// within the view, without touching the cursor and without taking
// the exclusive lock.
func (v *View) ReadFrom(offset Offset, buf []byte) (Size, error) {
	return v.copyOut(Size(offset), buf)
}

// ReadBytesFrom is the dynamic-buffer counterpart to ReadFrom.
func (v *View) ReadBytesFrom(offset Offset, requested Size) ([]byte, error) {
	allowed := v.CalculateAllowance(Size(offset), requested)
	buf := make([]byte, allowed)
	n, err := v.copyOut(Size(offset), buf)
	return buf[:n], err
}

// Write writes at the current cursor, advancing it by the number of
// bytes transferred.
func (v *View) Write(buf []byte) (Size, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	n, err := v.copyIn(Size(v.cursor), buf)
	v.cursor += Offset(n)
	return n, err
}

// WriteTo writes at an explicit offset within the view, without
// touching the cursor and without taking the exclusive lock.
func (v *View) WriteTo(offset Offset, buf []byte) (Size, error) {
	return v.copyIn(Size(offset), buf)
}

// Flush flushes the mapped region to the underlying file. It is a
// no-op (returning nil) on a view over a read-only file.
func (v *View) Flush() error {
	if v.file.access&Write == 0 {
		return nil
	}
	return flushRegion(v)
}

// Close flushes (if writable) and unmaps the view, then releases its
// reference on the parent file. Close must be called exactly once;
// the view must not be used afterward.
func (v *View) Close() error {
	var flushErr error
	if v.file.access&Write != 0 {
		flushErr = v.Flush()
	}
	unmapErr := unmapRegion(v)
	v.file.releaseView()

	if flushErr != nil {
		return flushErr
	}
	return unmapErr
}
