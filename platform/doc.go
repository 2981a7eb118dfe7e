// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package platform hides the two operating-system primitives the
// mmap-backed storage engine depends on: the native file handle type
// and the memory-mapping allocation granularity. The storage package's
// per-OS files build their open, map and flush syscalls on [Handle] and
// [Granularity]; nothing above storage touches unix or windows
// syscalls directly.
package platform
