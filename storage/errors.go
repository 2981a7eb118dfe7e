// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package storage

import "errors"

// ErrNotRegularFile is returned when a read-only File is requested
// for a path that exists but is not a regular file.
var ErrNotRegularFile = errors.New("storage: path is not a regular file")

// ErrBeyondEOF is returned by GetView when a read-only file's
// requested range would extend past the current end of file. There
// is no partial mapping: the view either fully fits or the call
// fails.
var ErrBeyondEOF = errors.New("storage: view range exceeds end of file on a read-only file")

// ErrViewsOpen is returned by File.Close when views created from it
// are still open. Go has no implicit destructors, so the "a view
// keeps its file alive" invariant from the original design is
// enforced explicitly here instead of via reference counting.
var ErrViewsOpen = errors.New("storage: file still has open views")
