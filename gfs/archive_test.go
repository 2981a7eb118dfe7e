// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package gfs

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/forgehold/gamefs/storage"
)

// fakeArchive is a minimal in-memory Archive used only to exercise
// ArchiveSystem's loader-chain and directory-priority behavior.
type fakeArchive struct {
	path        string
	entries     map[string][]byte
	hashEntries map[HashedIdentity][]byte
}

func (a *fakeArchive) GetPath() string { return a.path }

func (a *fakeArchive) GetFileByName(identity StringIdentity, _ storage.FileAccess) (VFSFile, error) {
	data, ok := a.entries[identity]
	if !ok {
		return nil, ErrLookupMiss
	}
	return &memFile{data: append([]byte(nil), data...)}, nil
}

// GetFileByHash looks identity up in hashEntries when the archive was
// built with one; otherwise it behaves like a plain Directory and
// reports ErrHashedLookupUnsupported.
func (a *fakeArchive) GetFileByHash(identity HashedIdentity, _ storage.FileAccess) (VFSFile, error) {
	if a.hashEntries == nil {
		return nil, ErrHashedLookupUnsupported
	}
	data, ok := a.hashEntries[identity]
	if !ok {
		return nil, ErrLookupMiss
	}
	return &memFile{data: append([]byte(nil), data...)}, nil
}

func (a *fakeArchive) ChildCount() uint32 { return uint32(len(a.entries)) }

// memFile is a trivial read-only VFSFile over an in-memory buffer,
// just enough to satisfy the interface in tests.
type memFile struct {
	data   []byte
	cursor int
}

func (m *memFile) Seek(offset storage.Offset, whence storage.Seek) (storage.Size, error) {
	var target int
	switch whence {
	case storage.SeekSet:
		target = int(offset)
	case storage.SeekCurrent:
		target = m.cursor + int(offset)
	case storage.SeekEnd:
		target = len(m.data) + int(offset)
	}
	if target < 0 {
		target = 0
	}
	if target > len(m.data) {
		target = len(m.data)
	}
	m.cursor = target
	return storage.Size(m.cursor), nil
}
func (m *memFile) Tell() storage.Size        { return storage.Size(m.cursor) }
func (m *memFile) GetSize() (storage.Size, error) { return storage.Size(len(m.data)), nil }
func (m *memFile) Read(buf []byte) (storage.Size, error) {
	n := copy(buf, m.data[m.cursor:])
	m.cursor += n
	return storage.Size(n), nil
}
func (m *memFile) ReadBytes(requested storage.Size) ([]byte, error) {
	buf := make([]byte, requested)
	n, err := m.Read(buf)
	return buf[:n], err
}
func (m *memFile) ReadFrom(offset storage.Offset, buf []byte) (storage.Size, error) {
	n := copy(buf, m.data[offset:])
	return storage.Size(n), nil
}
func (m *memFile) Write([]byte) (storage.Size, error)                     { return 0, ErrNotADirectory }
func (m *memFile) WriteTo(storage.Offset, []byte) (storage.Size, error)   { return 0, ErrNotADirectory }
func (m *memFile) Close() error                                          { return nil }

const magicGoodHeader = "GPAK"

// goodLoader claims files beginning with the magic header.
func goodLoader(path string, file *storage.File) (Archive, error) {
	view, err := file.GetView(0, 4)
	if err != nil {
		return nil, nil
	}
	defer view.Close()
	header, err := view.ReadBytes(4)
	if err != nil || !bytes.Equal(header, []byte(magicGoodHeader)) {
		return nil, nil
	}
	return &fakeArchive{path: path, entries: map[string][]byte{"child.txt": []byte("from-archive")}}, nil
}

// badLoader never claims anything — it stands in for a
// format-specific loader that doesn't recognize this file.
func badLoader(string, *storage.File) (Archive, error) {
	return nil, nil
}

// TestArchiveSystemLoadProbesLoadersInOrder is scenario S4: a
// directory holds one file with a recognizable header, and only the
// loader that understands the header claims it.
func TestArchiveSystemLoadProbesLoadersInOrder(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bundle.pak")
	if err := os.WriteFile(path, []byte(magicGoodHeader+"...rest"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	sys := NewArchiveSystem()
	if err := sys.RegisterDirectory(dir); err != nil {
		t.Fatalf("RegisterDirectory: %v", err)
	}
	sys.RegisterLoader(badLoader)
	sys.RegisterLoader(goodLoader)

	archive, err := sys.Load("bundle.pak")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if archive.ChildCount() != 1 {
		t.Fatalf("ChildCount = %d, want 1", archive.ChildCount())
	}

	f, err := archive.GetFileByName("child.txt", storage.Read)
	if err != nil {
		t.Fatalf("GetFileByName: %v", err)
	}
	got, err := f.ReadBytes(64)
	if err != nil {
		t.Fatalf("ReadBytes: %v", err)
	}
	if string(got) != "from-archive" {
		t.Fatalf("content = %q, want %q", got, "from-archive")
	}
}

func TestArchiveSystemLoadMissReturnsErrLookupMiss(t *testing.T) {
	sys := NewArchiveSystem()
	if err := sys.RegisterDirectory(t.TempDir()); err != nil {
		t.Fatalf("RegisterDirectory: %v", err)
	}
	sys.RegisterLoader(badLoader)

	if _, err := sys.Load("missing.pak"); !errors.Is(err, ErrLookupMiss) {
		t.Fatalf("Load for a nonexistent file: err = %v, want ErrLookupMiss", err)
	}
}

func TestArchiveSystemRegisterDirectoryIdempotent(t *testing.T) {
	sys := NewArchiveSystem()
	dir := t.TempDir()
	if err := sys.RegisterDirectory(dir); err != nil {
		t.Fatalf("RegisterDirectory: %v", err)
	}
	if err := sys.RegisterDirectory(dir); err != nil {
		t.Fatalf("RegisterDirectory (again): %v", err)
	}
	if len(sys.directories) != 1 {
		t.Fatalf("directories = %d, want 1", len(sys.directories))
	}
}

// TestArchiveSystemLoadPrefersLastRegisteredDirectory checks the
// reverse-order search priority documented on ArchiveSystem.
func TestArchiveSystemLoadPrefersLastRegisteredDirectory(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	if err := os.WriteFile(filepath.Join(first, "bundle.pak"), []byte(magicGoodHeader+"-first"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := os.WriteFile(filepath.Join(second, "bundle.pak"), []byte(magicGoodHeader+"-second"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	sys := NewArchiveSystem()
	sys.RegisterLoader(goodLoader)
	if err := sys.RegisterDirectory(first); err != nil {
		t.Fatalf("RegisterDirectory: %v", err)
	}
	if err := sys.RegisterDirectory(second); err != nil {
		t.Fatalf("RegisterDirectory: %v", err)
	}

	archive, err := sys.Load("bundle.pak")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if archive.GetPath() != filepath.Join(second, "bundle.pak") {
		t.Fatalf("Load picked %q, want the most recently registered directory's file", archive.GetPath())
	}
}
