// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package gfs

import (
	"fmt"
	"sync"

	"github.com/forgehold/gamefs/storage"
)

// PlatformFile adapts a storage.File to the VFSFile stream interface.
// Unlike a storage.View, which maps a fixed window once, PlatformFile
// opens a fresh view on each call and tears it down before returning.
// The view always starts at file offset 0: a read maps the whole file,
// a write maps through the end of the span it writes. This mirrors PlatformFile::read/write in
// original_source's GameFileSystem, which re-derives a view per call
// rather than holding one open across the object's lifetime. This
// keeps a PlatformFile cheap to keep around even when nothing is
// reading it, at the cost of a map/unmap pair per call.
type PlatformFile struct {
	mu     sync.Mutex
	file   *storage.File
	cursor storage.Offset
}

// NewPlatformFile opens path with access, creating it (and any
// missing parent directories) when access includes storage.Write.
func NewPlatformFile(path string, access storage.FileAccess) (*PlatformFile, error) {
	f, err := storage.NewFile(path, access)
	if err != nil {
		return nil, fmt.Errorf("gfs: NewPlatformFile %s: %w", path, err)
	}
	return &PlatformFile{file: f}, nil
}

// GetSize returns the current size of the underlying file.
func (p *PlatformFile) GetSize() (storage.Size, error) {
	return p.file.GetSize()
}

// Tell returns the current cursor position.
func (p *PlatformFile) Tell() storage.Size {
	p.mu.Lock()
	defer p.mu.Unlock()
	return storage.Size(p.cursor)
}

// Seek moves the cursor, clamped to [0, size], and returns its new
// absolute position.
func (p *PlatformFile) Seek(offset storage.Offset, whence storage.Seek) (storage.Size, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	size, err := p.file.GetSize()
	if err != nil {
		return 0, fmt.Errorf("gfs: Seek: %w", err)
	}

	var target storage.Offset
	switch whence {
	case storage.SeekSet:
		target = offset
	case storage.SeekCurrent:
		target = p.cursor + offset
	case storage.SeekEnd:
		target = storage.Offset(size) + offset
	default:
		target = p.cursor
	}

	if target < 0 {
		target = 0
	}
	if target > storage.Offset(size) {
		target = storage.Offset(size)
	}
	p.cursor = target
	return storage.Size(p.cursor), nil
}

// Read reads at the current cursor, advancing it by the number of
// bytes transferred.
func (p *PlatformFile) Read(buf []byte) (storage.Size, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	n, err := p.readAt(p.cursor, buf)
	p.cursor += storage.Offset(n)
	return n, err
}

// ReadBytes allocates and reads up to requested bytes at the current
// cursor.
func (p *PlatformFile) ReadBytes(requested storage.Size) ([]byte, error) {
	buf := make([]byte, requested)
	n, err := p.Read(buf)
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}

// ReadFrom reads at an explicit offset without touching the cursor.
func (p *PlatformFile) ReadFrom(offset storage.Offset, buf []byte) (storage.Size, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.readAt(offset, buf)
}

func (p *PlatformFile) readAt(offset storage.Offset, buf []byte) (storage.Size, error) {
	if len(buf) == 0 {
		return 0, nil
	}
	view, err := p.file.GetView(0, 0)
	if err != nil {
		return 0, fmt.Errorf("gfs: readAt: %w", err)
	}
	defer view.Close()

	n, err := view.ReadFrom(offset, buf)
	if err != nil {
		return 0, fmt.Errorf("gfs: readAt: %w", err)
	}
	return n, nil
}

// Write writes at the current cursor, advancing it by the number of
// bytes transferred. The write is flushed before returning.
func (p *PlatformFile) Write(buf []byte) (storage.Size, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	n, err := p.writeAt(p.cursor, buf)
	p.cursor += storage.Offset(n)
	return n, err
}

// WriteTo writes at an explicit offset without touching the cursor.
// The write is flushed before returning.
func (p *PlatformFile) WriteTo(offset storage.Offset, buf []byte) (storage.Size, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.writeAt(offset, buf)
}

func (p *PlatformFile) writeAt(offset storage.Offset, buf []byte) (storage.Size, error) {
	if len(buf) == 0 {
		return 0, nil
	}
	required := storage.Size(offset) + storage.Size(len(buf))
	view, err := p.file.GetView(0, required)
	if err != nil {
		return 0, fmt.Errorf("gfs: writeAt: %w", err)
	}
	defer view.Close()

	n, err := view.WriteTo(offset, buf)
	if err != nil {
		return 0, fmt.Errorf("gfs: writeAt: %w", err)
	}
	if err := view.Flush(); err != nil {
		return n, fmt.Errorf("gfs: writeAt flush: %w", err)
	}
	return n, nil
}

// Close releases the underlying storage file.
func (p *PlatformFile) Close() error {
	if err := p.file.Close(); err != nil {
		return fmt.Errorf("gfs: PlatformFile.Close: %w", err)
	}
	return nil
}

var _ VFSFile = (*PlatformFile)(nil)
