// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build darwin || linux

package platform

import "golang.org/x/sys/unix"

// Granularity returns the memory-mapping allocation granularity: the
// OS page size on POSIX systems. All [storage.View] map offsets are
// aligned down to a multiple of this value.
func Granularity() uint64 {
	return uint64(unix.Getpagesize())
}
