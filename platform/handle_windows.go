// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build windows

package platform

import "golang.org/x/sys/windows"

// Handle is a native HANDLE on Windows.
type Handle = windows.Handle

// InvalidHandle is the sentinel value indicating no open handle,
// mirroring the original INVALID_HANDLE_VALUE (all bits set).
const InvalidHandle Handle = ^windows.Handle(0)
