// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build darwin || linux

package platform

// Handle is a native file descriptor on POSIX systems.
type Handle = int

// InvalidHandle is the sentinel value indicating no open handle.
const InvalidHandle Handle = -1
