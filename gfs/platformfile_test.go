// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package gfs

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/forgehold/gamefs/storage"
)

func TestPlatformFileWriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "asset.bin")
	f, err := NewPlatformFile(path, storage.ReadWrite)
	if err != nil {
		t.Fatalf("NewPlatformFile: %v", err)
	}
	defer f.Close()

	payload := []byte("quest-briefing-001")
	if _, err := f.Write(payload); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := f.Tell(); got != storage.Size(len(payload)) {
		t.Fatalf("Tell after write = %d, want %d", got, len(payload))
	}

	if _, err := f.Seek(0, storage.SeekSet); err != nil {
		t.Fatalf("Seek: %v", err)
	}
	got, err := f.ReadBytes(storage.Size(len(payload)))
	if err != nil {
		t.Fatalf("ReadBytes: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("round trip = %q, want %q", got, payload)
	}
}

func TestPlatformFileWriteToAndReadFromDoNotMoveCursor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "asset.bin")
	f, err := NewPlatformFile(path, storage.ReadWrite)
	if err != nil {
		t.Fatalf("NewPlatformFile: %v", err)
	}
	defer f.Close()

	before := f.Tell()
	if _, err := f.WriteTo(100, []byte("patch")); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	if f.Tell() != before {
		t.Fatalf("WriteTo moved the cursor: %d != %d", f.Tell(), before)
	}

	buf := make([]byte, 5)
	if _, err := f.ReadFrom(100, buf); err != nil {
		t.Fatalf("ReadFrom: %v", err)
	}
	if !bytes.Equal(buf, []byte("patch")) {
		t.Fatalf("ReadFrom = %q, want %q", buf, "patch")
	}
	if f.Tell() != before {
		t.Fatalf("ReadFrom moved the cursor: %d != %d", f.Tell(), before)
	}
}

func TestPlatformFileSeekClampsToSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "asset.bin")
	f, err := NewPlatformFile(path, storage.ReadWrite)
	if err != nil {
		t.Fatalf("NewPlatformFile: %v", err)
	}
	defer f.Close()

	if _, err := f.Write([]byte("0123456789")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := f.Seek(1000, storage.SeekSet)
	if err != nil {
		t.Fatalf("Seek: %v", err)
	}
	if got != 10 {
		t.Fatalf("Seek(1000, Set) = %d, want clamp to 10", got)
	}
}
