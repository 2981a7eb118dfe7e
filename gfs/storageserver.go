// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package gfs

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/forgehold/gamefs/storage"
)

// StorageServer composes a single writable "userland" directory with
// an ordered stack of read-only "dataland" mounts (typically
// Archives loaded through an ArchiveSystem, or further Directories). Name lookups check
// userland first, then dataland most-recently-mounted first; hash
// lookups only ever consult dataland, mirroring original_source's
// StorageServer, which has no hash index for loose userland files.
//
// Unlike [Directory], which creates its root if missing, a
// StorageServer's userland path must already exist as a directory —
// original_source's StorageServer::create fails rather than
// mkdir-ing, since userland is expected to be provisioned ahead of
// time.
type StorageServer[F VFSFile] struct {
	userland *Directory[F]
	dataland []FileSystem
	hashFn   HashFunction
	logger   *slog.Logger
}

// StorageServerOption configures a StorageServer at construction.
type StorageServerOption[F VFSFile] func(*StorageServer[F])

// WithHashFunction supplies the HashFunction used to turn a string
// identity into a hashed one, so that a string miss in dataland can
// fall back to a hashed lookup. Without one, a string miss stays a
// miss; GetFileByHash takes a caller-computed identity and works
// either way.
func WithHashFunction[F VFSFile](fn HashFunction) StorageServerOption[F] {
	return func(s *StorageServer[F]) {
		s.hashFn = fn
	}
}

// WithServerLogger overrides the default no-op logger.
func WithServerLogger[F VFSFile](logger *slog.Logger) StorageServerOption[F] {
	return func(s *StorageServer[F]) {
		s.logger = logger
	}
}

// NewStorageServer opens userlandPath as an existing directory
// (failing if it does not exist or is not a directory) and returns a
// StorageServer with no dataland mounts.
func NewStorageServer[F VFSFile](userlandPath string, newFile FileFactory[F], opts ...StorageServerOption[F]) (*StorageServer[F], error) {
	resolved, err := resolveSymlinks(userlandPath)
	if err != nil {
		return nil, fmt.Errorf("gfs: NewStorageServer %s: %w", userlandPath, err)
	}
	info, statErr := os.Stat(resolved)
	if statErr != nil {
		return nil, fmt.Errorf("gfs: NewStorageServer %s: %w", resolved, statErr)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("gfs: NewStorageServer %s: %w", resolved, ErrNotADirectory)
	}

	s := &StorageServer[F]{
		userland: &Directory[F]{path: resolved, newFile: newFile},
		logger:   slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// GetUserland returns the server's userland directory.
func (s *StorageServer[F]) GetUserland() *Directory[F] {
	return s.userland
}

// GetPath returns the userland root path, satisfying [FileSystem].
func (s *StorageServer[F]) GetPath() string {
	return s.userland.GetPath()
}

// Mount pushes fs onto the top of the dataland stack (highest
// priority: the most-recently-mounted filesystem is searched first).
// It returns [ErrMountRejected] if fs is nil.
func (s *StorageServer[F]) Mount(fs FileSystem) error {
	if fs == nil {
		return ErrMountRejected
	}
	s.dataland = append(s.dataland, fs)
	return nil
}

// MountAt inserts fs at position in the dataland stack, shifting
// later mounts back. A position at or beyond the current length
// behaves like Mount (append). This replaces original_source's
// `mount(fs, position = -1)` sentinel-based API, which overloaded an
// unsigned -1 to mean "append" — an easy source of underflow bugs if
// position arithmetic is ever done on the raw value; Mount and
// MountAt make the two intents distinct call sites instead.
func (s *StorageServer[F]) MountAt(fs FileSystem, position int) error {
	if fs == nil {
		return ErrMountRejected
	}
	if position < 0 {
		position = 0
	}
	if position >= len(s.dataland) {
		s.dataland = append(s.dataland, fs)
		return nil
	}
	s.dataland = append(s.dataland, nil)
	copy(s.dataland[position+1:], s.dataland[position:])
	s.dataland[position] = fs
	return nil
}

// Unmount removes the first dataland entry equal to fs, reporting
// whether one was found.
func (s *StorageServer[F]) Unmount(fs FileSystem) bool {
	for i, d := range s.dataland {
		if d == fs {
			s.dataland = append(s.dataland[:i], s.dataland[i+1:]...)
			return true
		}
	}
	return false
}

// DatalandCount returns the number of mounted dataland filesystems.
func (s *StorageServer[F]) DatalandCount() int {
	return len(s.dataland)
}

// GetUserlandFile looks up identity directly against userland.
func (s *StorageServer[F]) GetUserlandFile(identity StringIdentity, access storage.FileAccess) (VFSFile, error) {
	return s.userland.GetFileByName(identity, access)
}

// GetDatalandFileByName searches dataland mounts most-recently
// -mounted first, matching [ArchiveSystem.Load]'s reverse-order
// directory search. If every mount misses on the plain name and a
// [HashFunction] is configured, the stack is retried once more by
// hash(identity) — original_source's get_dataland_file(StringIdentity)
// does the same retry-by-hash after a name miss.
func (s *StorageServer[F]) GetDatalandFileByName(identity StringIdentity, access storage.FileAccess) (VFSFile, error) {
	for i := len(s.dataland) - 1; i >= 0; i-- {
		f, err := s.dataland[i].GetFileByName(identity, access)
		if err == nil {
			return f, nil
		}
	}
	if s.hashFn != nil {
		if f, err := s.GetDatalandFileByHash(s.hashFn(identity), access); err == nil {
			return f, nil
		}
	}
	return nil, fmt.Errorf("gfs: GetDatalandFileByName %q: %w", identity, ErrLookupMiss)
}

// GetDatalandFileByHash searches dataland mounts most-recently
// -mounted first for a file matching the hashed identity.
func (s *StorageServer[F]) GetDatalandFileByHash(identity HashedIdentity, access storage.FileAccess) (VFSFile, error) {
	for i := len(s.dataland) - 1; i >= 0; i-- {
		f, err := s.dataland[i].GetFileByHash(identity, access)
		if err == nil {
			return f, nil
		}
	}
	return nil, fmt.Errorf("gfs: GetDatalandFileByHash %d: %w", identity, ErrLookupMiss)
}

// GetFileByName implements [FileSystem]: it checks userland first,
// then falls through to [GetDatalandFileByName] (which itself retries
// by hash when a [HashFunction] is configured).
func (s *StorageServer[F]) GetFileByName(identity StringIdentity, access storage.FileAccess) (VFSFile, error) {
	if f, err := s.GetUserlandFile(identity, access); err == nil {
		return f, nil
	}
	return s.GetDatalandFileByName(identity, access)
}

// GetFileByHash implements [FileSystem] by hash, consulting dataland
// only — userland has no hash index.
func (s *StorageServer[F]) GetFileByHash(identity HashedIdentity, access storage.FileAccess) (VFSFile, error) {
	return s.GetDatalandFileByHash(identity, access)
}

// Hash applies the server's configured HashFunction to identity. It
// reports ok=false if no HashFunction was configured.
func (s *StorageServer[F]) Hash(identity StringIdentity) (HashedIdentity, bool) {
	if s.hashFn == nil {
		return 0, false
	}
	return s.hashFn(identity), true
}

var _ FileSystem = (*StorageServer[*PlatformFile])(nil)
