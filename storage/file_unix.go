// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build darwin || linux

package storage

import (
	"golang.org/x/sys/unix"

	"github.com/forgehold/gamefs/platform"
)

// openHandle maps a FileAccess onto POSIX open(2) flags. Share mode
// on POSIX is implicit (there is no share-mode concept); any process
// with permission can open the same path concurrently.
func openHandle(path string, access FileAccess) (platform.Handle, error) {
	flags := unix.O_RDONLY
	if access&Write != 0 {
		flags = unix.O_RDWR | unix.O_CREAT
	}
	fd, err := unix.Open(path, flags, 0o644)
	if err != nil {
		return platform.InvalidHandle, err
	}
	return fd, nil
}

func closeHandle(h platform.Handle) error {
	return unix.Close(h)
}

func statSize(h platform.Handle) (Size, error) {
	var st unix.Stat_t
	if err := unix.Fstat(h, &st); err != nil {
		return 0, err
	}
	return Size(st.Size), nil
}

func truncateHandle(h platform.Handle, size Size) error {
	return unix.Ftruncate(h, int64(size))
}
