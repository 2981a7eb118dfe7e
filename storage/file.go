// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/forgehold/gamefs/platform"
)

// File represents a regular file on disk that has been opened with a
// particular [FileAccess]. A File is safe to use concurrently from
// multiple goroutines; every exported method either touches only the
// OS (stat, truncate) or hands out a fresh [View].
//
// A File exclusively owns its platform handle. Views hold a strong
// pointer back to their parent File, so the File is kept reachable
// (and, via openViews, kept open) for as long as any of its views
// exist.
type File struct {
	handle platform.Handle
	path   string
	access FileAccess

	openViews atomic.Int32
}

// NewFile opens or creates the file at path with the given access.
//
// Without [Write] in access, the path must already exist and be a
// regular file. With [Write], the parent directory is created
// (recursively, if needed) and the file is opened create-if-missing.
func NewFile(path string, access FileAccess) (*File, error) {
	if access&Write == 0 {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("storage: opening %s: %w", path, err)
		}
		if !info.Mode().IsRegular() {
			return nil, fmt.Errorf("storage: %s: %w", path, ErrNotRegularFile)
		}
	} else {
		parent := filepath.Dir(path)
		if err := os.MkdirAll(parent, 0o755); err != nil {
			return nil, fmt.Errorf("storage: creating parent directory for %s: %w", path, err)
		}
	}

	handle, err := openHandle(path, access)
	if err != nil {
		return nil, fmt.Errorf("storage: opening %s: %w", path, err)
	}

	return &File{handle: handle, path: path, access: access}, nil
}

// GetPath returns the path the file was opened with.
func (f *File) GetPath() string {
	return f.path
}

// Access returns the access mode the file was opened with.
func (f *File) Access() FileAccess {
	return f.access
}

// GetSize returns the current on-disk size of the file, from a fresh
// stat of the platform handle.
func (f *File) GetSize() (Size, error) {
	size, err := statSize(f.handle)
	if err != nil {
		return 0, fmt.Errorf("storage: statting %s: %w", f.path, err)
	}
	return size, nil
}

// GetView creates a [View] over [offset, offset+length) of the file.
// If length is zero, the view covers from offset to the current end
// of file. Writable files grow to accommodate a range that extends
// past the current size; read-only files never grow, and fail
// outright (no partial view) if the requested range would exceed the
// current size.
func (f *File) GetView(offset Offset, length Size) (*View, error) {
	if offset < 0 {
		return nil, fmt.Errorf("storage: GetView: negative offset %d", offset)
	}

	currentSize, err := f.GetSize()
	if err != nil {
		return nil, err
	}

	if length == 0 {
		if Size(offset) > currentSize {
			length = 0
		} else {
			length = currentSize - Size(offset)
		}
	}

	end := Size(offset) + length
	if f.access&Write != 0 {
		if end > currentSize {
			if err := truncateHandle(f.handle, end); err != nil {
				return nil, fmt.Errorf("storage: growing %s to %d bytes: %w", f.path, end, err)
			}
		}
	} else if end > currentSize {
		return nil, fmt.Errorf("storage: %s: offset %d length %d: %w", f.path, offset, length, ErrBeyondEOF)
	}

	view, err := newView(f, offset, length)
	if err != nil {
		return nil, fmt.Errorf("storage: mapping %s at offset %d length %d: %w", f.path, offset, length, err)
	}

	f.openViews.Add(1)
	return view, nil
}

// Close closes the underlying platform handle. It fails if any views
// created from this file are still open — views must be closed
// first, since they keep mapped memory pointing into this handle.
func (f *File) Close() error {
	if n := f.openViews.Load(); n > 0 {
		return fmt.Errorf("storage: closing %s: %w (%d open)", f.path, ErrViewsOpen, n)
	}
	if err := closeHandle(f.handle); err != nil {
		return fmt.Errorf("storage: closing %s: %w", f.path, err)
	}
	return nil
}

// releaseView is called by View.Close to drop this file's reference
// count. It never closes the underlying handle itself — that remains
// the caller's responsibility via Close.
func (f *File) releaseView() {
	f.openViews.Add(-1)
}
