// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build windows

package platform

import "golang.org/x/sys/windows"

// Granularity returns the memory-mapping allocation granularity:
// SYSTEM_INFO.dwAllocationGranularity on Windows. All [storage.View]
// map offsets are aligned down to a multiple of this value.
func Granularity() uint64 {
	var info windows.SystemInfo
	windows.GetSystemInfo(&info)
	return uint64(info.AllocationGranularity)
}
