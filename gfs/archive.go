// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package gfs

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/forgehold/gamefs/storage"
)

// Archive is a read-only, self-describing container FileSystem —
// a zip, pak, or similar bundle — that additionally reports how many
// entries it holds.
type Archive interface {
	FileSystem
	ChildCount() uint32
}

// ArchiveLoaderFunc attempts to interpret the storage.File at path as
// an archive. It returns (nil, nil) — not an error — when the file is
// simply not this loader's format, so ArchiveSystem.Load can keep
// trying other loaders without logging spurious failures.
type ArchiveLoaderFunc func(path string, file *storage.File) (Archive, error)

// ArchiveSystem probes a set of registered directories, in reverse
// registration order, for a file matching a requested archive name,
// then hands each candidate to every registered loader until one
// claims it. This mirrors original_source's ArchiveSystem::load,
// which walks registered directories back-to-front so the
// most-recently-registered (highest priority) mount wins first.
type ArchiveSystem struct {
	directories []string
	loaders     []ArchiveLoaderFunc
	logger      *slog.Logger
}

// ArchiveSystemOption configures an ArchiveSystem at construction.
type ArchiveSystemOption func(*ArchiveSystem)

// WithArchiveLogger overrides the default no-op logger.
func WithArchiveLogger(logger *slog.Logger) ArchiveSystemOption {
	return func(a *ArchiveSystem) {
		a.logger = logger
	}
}

// NewArchiveSystem returns an empty ArchiveSystem with no registered
// directories or loaders.
func NewArchiveSystem(opts ...ArchiveSystemOption) *ArchiveSystem {
	a := &ArchiveSystem{
		logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// RegisterDirectory adds path to the search list, resolving symlinks
// first. Registration is idempotent by resolved path: registering the
// same directory twice is a no-op.
func (a *ArchiveSystem) RegisterDirectory(path string) error {
	resolved, err := resolveSymlinks(path)
	if err != nil {
		return fmt.Errorf("gfs: RegisterDirectory %s: %w", path, err)
	}
	for _, d := range a.directories {
		if d == resolved {
			return nil
		}
	}
	a.directories = append(a.directories, resolved)
	return nil
}

// UnregisterDirectory removes path (after symlink resolution) from
// the search list. It is a no-op if path was never registered.
func (a *ArchiveSystem) UnregisterDirectory(path string) error {
	resolved, err := resolveSymlinks(path)
	if err != nil {
		return fmt.Errorf("gfs: UnregisterDirectory %s: %w", path, err)
	}
	for i, d := range a.directories {
		if d == resolved {
			a.directories = append(a.directories[:i], a.directories[i+1:]...)
			return nil
		}
	}
	return nil
}

// RegisterLoader appends loader to the loader chain. Loaders are
// tried in registration order for each candidate file.
func (a *ArchiveSystem) RegisterLoader(loader ArchiveLoaderFunc) {
	a.loaders = append(a.loaders, loader)
}

// Load searches registered directories, most-recently-registered
// first, for a file named name, and returns the Archive produced by
// the first loader that claims it. It returns ErrLookupMiss if no
// directory holds the file or no loader claims it.
func (a *ArchiveSystem) Load(name string) (Archive, error) {
	for i := len(a.directories) - 1; i >= 0; i-- {
		candidate, err := resolveSymlinks(filepath.Join(a.directories[i], name))
		if err != nil {
			a.logger.Warn("gfs: archive candidate symlink resolution failed", "path", candidate, "err", err)
			continue
		}
		if _, err := os.Stat(candidate); err != nil {
			continue
		}

		file, err := storage.NewFile(candidate, storage.Read)
		if err != nil {
			a.logger.Warn("gfs: opening archive candidate failed", "path", candidate, "err", err)
			continue
		}

		archive, loadErr := a.tryLoaders(candidate, file)
		if loadErr != nil {
			a.logger.Warn("gfs: no loader claimed archive candidate", "path", candidate, "err", loadErr)
			file.Close()
			continue
		}
		return archive, nil
	}
	return nil, fmt.Errorf("gfs: Load %q: %w", name, ErrLookupMiss)
}

// LoadFile opens path directly (bypassing directory search) and
// returns the Archive produced by the first loader that claims it.
// It is the entry point [Apply] uses for manifest entries that name
// an archive file explicitly rather than a name to search for.
func (a *ArchiveSystem) LoadFile(path string) (Archive, error) {
	resolved, err := resolveSymlinks(path)
	if err != nil {
		return nil, fmt.Errorf("gfs: LoadFile %s: %w", path, err)
	}
	file, err := storage.NewFile(resolved, storage.Read)
	if err != nil {
		return nil, fmt.Errorf("gfs: LoadFile %s: %w", resolved, err)
	}
	archive, err := a.tryLoaders(resolved, file)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("gfs: LoadFile %s: %w", resolved, err)
	}
	return archive, nil
}

func (a *ArchiveSystem) tryLoaders(path string, file *storage.File) (Archive, error) {
	for _, loader := range a.loaders {
		archive, err := loader(path, file)
		if err != nil {
			return nil, err
		}
		if archive != nil {
			return archive, nil
		}
	}
	return nil, ErrLookupMiss
}
