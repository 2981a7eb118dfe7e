// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package gfs

import "errors"

// ErrHashedLookupUnsupported is returned by any FileSystem that has
// no hash index — a plain [Directory] always returns it for
// GetFileByHash, by design (spec.md §8 invariant 4).
var ErrHashedLookupUnsupported = errors.New("gfs: filesystem does not support hashed lookups")

// ErrMountRejected is returned by Mount/MountAt when the supplied
// FileSystem is nil.
var ErrMountRejected = errors.New("gfs: cannot mount a nil filesystem")

// ErrLookupMiss is returned by ArchiveSystem.Load when no registered
// directory/loader pair produced an archive for the requested name.
var ErrLookupMiss = errors.New("gfs: no mount or loader produced a result")

// ErrNotADirectory is returned when a path exists but is not (and
// cannot be made into) a directory.
var ErrNotADirectory = errors.New("gfs: path is not a directory")
