// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build darwin || linux

package storage

import (
	"golang.org/x/sys/unix"

	"github.com/forgehold/gamefs/platform"
)

// mapRegion mmaps [base, base+length) of file's handle MAP_SHARED,
// with protection bits derived from the file's access mode. POSIX
// has no secondary mapping handle, so the returned handle is always
// platform.InvalidHandle.
func mapRegion(file *File, base Size, length Size) ([]byte, platform.Handle, error) {
	if length == 0 {
		return []byte{}, platform.InvalidHandle, nil
	}

	prot := unix.PROT_READ
	if file.access&Write != 0 {
		prot |= unix.PROT_WRITE
	}
	if file.access&Execute != 0 {
		prot |= unix.PROT_EXEC
	}

	mapped, err := unix.Mmap(file.handle, int64(base), int(length), prot, unix.MAP_SHARED)
	if err != nil {
		return nil, platform.InvalidHandle, err
	}
	return mapped, platform.InvalidHandle, nil
}

func unmapRegion(v *View) error {
	if len(v.mapped) == 0 {
		return nil
	}
	return unix.Munmap(v.mapped)
}

func flushRegion(v *View) error {
	if len(v.mapped) == 0 {
		return nil
	}
	return unix.Msync(v.mapped, unix.MS_SYNC)
}
