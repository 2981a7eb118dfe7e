// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build windows

package storage

import (
	"golang.org/x/sys/windows"

	"github.com/forgehold/gamefs/platform"
)

// openHandle maps a FileAccess onto CreateFile flags. Share mode is
// always read+write: games and modding tools routinely want a second
// process (or the same process, twice) to see the file concurrently.
func openHandle(path string, access FileAccess) (platform.Handle, error) {
	namePtr, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return platform.InvalidHandle, err
	}

	shareMode := uint32(windows.FILE_SHARE_READ | windows.FILE_SHARE_WRITE)
	desiredAccess := uint32(windows.GENERIC_READ)
	creationDisposition := uint32(windows.OPEN_EXISTING)

	switch {
	case access&Write != 0:
		desiredAccess = windows.GENERIC_READ | windows.GENERIC_WRITE
		creationDisposition = windows.OPEN_ALWAYS
	case access&Execute != 0:
		desiredAccess |= windows.GENERIC_EXECUTE
	}

	handle, err := windows.CreateFile(
		namePtr,
		desiredAccess,
		shareMode,
		nil,
		creationDisposition,
		windows.FILE_ATTRIBUTE_NORMAL,
		0,
	)
	if err != nil {
		return platform.InvalidHandle, err
	}
	return handle, nil
}

func closeHandle(h platform.Handle) error {
	return windows.CloseHandle(h)
}

func statSize(h platform.Handle) (Size, error) {
	var size int64
	if err := windows.GetFileSizeEx(h, &size); err != nil {
		return 0, err
	}
	return Size(size), nil
}

func truncateHandle(h platform.Handle, size Size) error {
	distance := int64(size)
	if err := windows.SetFilePointerEx(h, distance, nil, windows.FILE_BEGIN); err != nil {
		return err
	}
	return windows.SetEndOfFile(h)
}
