// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package gfs

import (
	"fmt"
	"os"
	"path/filepath"
)

// maxSymlinkDepth bounds symlink-chain resolution so a cycle fails
// loudly instead of looping forever.
const maxSymlinkDepth = 40

// resolveSymlinks transitively follows symlinks at path until it
// reaches a non-symlink, exactly as original_source's repeated
// `while (std::filesystem::is_symlink(p)) p = read_symlink(p)` loops
// in Directory::create, StorageServer::create, and
// ArchiveSystem::load. Relative link targets are resolved against
// the directory containing the link being followed.
func resolveSymlinks(path string) (string, error) {
	current := path
	for depth := 0; depth < maxSymlinkDepth; depth++ {
		info, err := os.Lstat(current)
		if err != nil {
			// Nothing there (yet) is not a symlink-resolution
			// failure; callers decide what to do with a
			// nonexistent path.
			return current, nil
		}
		if info.Mode()&os.ModeSymlink == 0 {
			return current, nil
		}

		target, err := os.Readlink(current)
		if err != nil {
			return "", fmt.Errorf("gfs: reading symlink %s: %w", current, err)
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(current), target)
		}
		current = target
	}
	return "", fmt.Errorf("gfs: symlink chain from %s exceeds %d hops (cycle?)", path, maxSymlinkDepth)
}
