// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package gfs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/forgehold/gamefs/storage"
)

func TestLoadManifestParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mount.yaml")
	contents := "userland: ./save\n" +
		"dataland:\n" +
		"  - kind: directory\n" +
		"    path: ./base\n" +
		"  - kind: archive\n" +
		"    path: ./patches/001.pak\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if m.Userland != "./save" {
		t.Fatalf("Userland = %q, want %q", m.Userland, "./save")
	}
	if len(m.Dataland) != 2 {
		t.Fatalf("Dataland entries = %d, want 2", len(m.Dataland))
	}
	if m.Dataland[0].Kind != "directory" || m.Dataland[1].Kind != "archive" {
		t.Fatalf("Dataland kinds = %v", m.Dataland)
	}
}

func TestApplyMountsDirectoryEntries(t *testing.T) {
	userland := t.TempDir()
	baseDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(baseDir, "readme.txt"), []byte("shipped"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	s, err := NewStorageServer(userland, NewPlatformFile)
	if err != nil {
		t.Fatalf("NewStorageServer: %v", err)
	}
	m := &Manifest{Dataland: []ManifestEntry{{Kind: "directory", Path: baseDir}}}

	if err := Apply(m, s, NewArchiveSystem()); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	f, err := s.GetFileByName("readme.txt", storage.Read)
	if err != nil {
		t.Fatalf("GetFileByName: %v", err)
	}
	defer f.Close()
	got, err := f.ReadBytes(16)
	if err != nil {
		t.Fatalf("ReadBytes: %v", err)
	}
	if string(got) != "shipped" {
		t.Fatalf("content = %q, want %q", got, "shipped")
	}
}

func TestApplyRejectsUnknownKind(t *testing.T) {
	userland := t.TempDir()
	s, err := NewStorageServer(userland, NewPlatformFile)
	if err != nil {
		t.Fatalf("NewStorageServer: %v", err)
	}
	m := &Manifest{Dataland: []ManifestEntry{{Kind: "unknown", Path: "whatever"}}}

	if err := Apply(m, s, NewArchiveSystem()); err == nil {
		t.Fatal("Apply accepted an unknown manifest entry kind")
	}
}
