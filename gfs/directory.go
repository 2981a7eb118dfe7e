// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package gfs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/forgehold/gamefs/storage"
)

// FileFactory constructs the concrete file type a [Directory] or
// [StorageServer] hands back for a resolved path. Go has no
// constructor-method type constraint, so a Directory takes its
// factory explicitly instead of requiring F to expose a static
// `create` the way original_source's Directory<FileType> template
// does.
type FileFactory[F VFSFile] func(path string, access storage.FileAccess) (F, error)

// Directory is a [FileSystem] rooted at a disk directory. It creates
// the directory (and any missing parents) if it does not already
// exist, resolving symlinks first — in contrast to [StorageServer],
// whose root must already exist.
type Directory[F VFSFile] struct {
	path    string
	newFile FileFactory[F]
}

// NewDirectory resolves path, creates it if missing, and returns a
// Directory that opens children through newFile.
func NewDirectory[F VFSFile](path string, newFile FileFactory[F]) (*Directory[F], error) {
	resolved, err := resolveSymlinks(path)
	if err != nil {
		return nil, fmt.Errorf("gfs: NewDirectory %s: %w", path, err)
	}

	if info, statErr := os.Stat(resolved); statErr == nil {
		if !info.IsDir() {
			return nil, fmt.Errorf("gfs: NewDirectory %s: %w", resolved, ErrNotADirectory)
		}
	} else if os.IsNotExist(statErr) {
		if err := os.MkdirAll(resolved, 0o755); err != nil {
			return nil, fmt.Errorf("gfs: NewDirectory %s: creating: %w", resolved, err)
		}
	} else {
		return nil, fmt.Errorf("gfs: NewDirectory %s: %w", resolved, statErr)
	}

	return &Directory[F]{path: resolved, newFile: newFile}, nil
}

// GetPath returns the directory's resolved root path.
func (d *Directory[F]) GetPath() string {
	return d.path
}

// GetChildPath joins identity onto the directory's root, rejecting
// escapes via ".." the same way original_source's
// Directory::get_child_path guards against walking out of the root.
func (d *Directory[F]) GetChildPath(identity StringIdentity) (string, error) {
	joined := filepath.Join(d.path, identity)
	rel, err := filepath.Rel(d.path, joined)
	if err != nil || rel == ".." || (len(rel) >= 3 && rel[:3] == ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("gfs: GetChildPath %q: escapes directory root", identity)
	}
	return joined, nil
}

// GetFileByName opens identity's file through the directory's
// FileFactory, creating it when access includes storage.Write.
func (d *Directory[F]) GetFileByName(identity StringIdentity, access storage.FileAccess) (VFSFile, error) {
	childPath, err := d.GetChildPath(identity)
	if err != nil {
		return nil, err
	}
	f, err := d.newFile(childPath, access)
	if err != nil {
		return nil, fmt.Errorf("gfs: GetFileByName %q: %w", identity, err)
	}
	return f, nil
}

// GetFileByHash always fails: a plain directory has no hash index
// (spec.md §8 invariant 4).
func (d *Directory[F]) GetFileByHash(HashedIdentity, storage.FileAccess) (VFSFile, error) {
	return nil, ErrHashedLookupUnsupported
}

// ChildDirectory returns a Directory rooted at one of this
// directory's subdirectories, creating it if missing.
func (d *Directory[F]) ChildDirectory(name string) (*Directory[F], error) {
	childPath, err := d.GetChildPath(name)
	if err != nil {
		return nil, err
	}
	return NewDirectory(childPath, d.newFile)
}

// DirectoryCount returns the number of immediate subdirectories.
func (d *Directory[F]) DirectoryCount() (uint32, error) {
	entries, err := os.ReadDir(d.path)
	if err != nil {
		return 0, fmt.Errorf("gfs: DirectoryCount %s: %w", d.path, err)
	}
	var count uint32
	for _, e := range entries {
		if e.IsDir() {
			count++
		}
	}
	return count, nil
}

// FileCount returns the number of immediate regular-file children.
func (d *Directory[F]) FileCount() (uint32, error) {
	entries, err := os.ReadDir(d.path)
	if err != nil {
		return 0, fmt.Errorf("gfs: FileCount %s: %w", d.path, err)
	}
	var count uint32
	for _, e := range entries {
		if e.Type().IsRegular() {
			count++
		}
	}
	return count, nil
}

var _ FileSystem = (*Directory[*PlatformFile])(nil)
