// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build windows

package storage

import (
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/forgehold/gamefs/platform"
)

// Page-protection and section-access constants for CreateFileMapping
// / MapViewOfFile. golang.org/x/sys/windows does not export these
// (they belong to the section-object API, not the process-memory
// VirtualAlloc API it covers), so they are reproduced here from the
// Win32 SDK headers.
const (
	winPageReadonly         = 0x02
	winPageReadwrite        = 0x04
	winPageExecuteRead      = 0x20
	winPageExecuteReadwrite = 0x40

	winFileMapRead    = 0x0004
	winFileMapWrite   = 0x0002
	winFileMapExecute = 0x0020
)

// mapRegion creates a file mapping covering [0, base+length) of
// file's handle and maps the view at [base, base+length). Windows
// requires a (here unnamed) mapping-object handle distinct from the file
// handle; it is kept on the View and closed alongside the unmap.
func mapRegion(file *File, base Size, length Size) ([]byte, platform.Handle, error) {
	if length == 0 {
		return []byte{}, platform.InvalidHandle, nil
	}

	protect, viewAccess := mappingFlags(file.access)

	mappingSize := base + length
	mapHandle, err := windows.CreateFileMapping(
		file.handle,
		nil,
		protect,
		uint32(mappingSize>>32),
		uint32(mappingSize&0xFFFFFFFF),
		nil,
	)
	if err != nil {
		return nil, platform.InvalidHandle, err
	}

	addr, err := windows.MapViewOfFile(
		mapHandle,
		viewAccess,
		uint32(base>>32),
		uint32(base&0xFFFFFFFF),
		uintptr(length),
	)
	if err != nil {
		windows.CloseHandle(mapHandle)
		return nil, platform.InvalidHandle, err
	}

	mapped := unsafe.Slice((*byte)(unsafe.Pointer(addr)), int(length))
	return mapped, mapHandle, nil
}

func mappingFlags(access FileAccess) (protect uint32, viewAccess uint32) {
	switch {
	case access&Write != 0 && access&Execute != 0:
		return winPageExecuteReadwrite, winFileMapRead | winFileMapWrite | winFileMapExecute
	case access&Write != 0:
		return winPageReadwrite, winFileMapRead | winFileMapWrite
	case access&Execute != 0:
		return winPageExecuteRead, winFileMapRead | winFileMapExecute
	default:
		return winPageReadonly, winFileMapRead
	}
}

func unmapRegion(v *View) error {
	if len(v.mapped) == 0 {
		return nil
	}
	addr := uintptr(unsafe.Pointer(&v.mapped[0]))
	if err := windows.UnmapViewOfFile(addr); err != nil {
		windows.CloseHandle(v.mapHandle)
		return err
	}
	return windows.CloseHandle(v.mapHandle)
}

func flushRegion(v *View) error {
	if len(v.mapped) == 0 {
		return nil
	}
	addr := uintptr(unsafe.Pointer(&v.mapped[0]))
	if err := windows.FlushViewOfFile(addr, uintptr(len(v.mapped))); err != nil {
		return err
	}
	return windows.FlushFileBuffers(v.file.handle)
}
