// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package gfs

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ManifestEntry describes one dataland mount: a plain directory or an
// archive file. Relative paths are resolved against the process's
// current working directory, not the manifest file's location.
type ManifestEntry struct {
	// Kind is either "directory" or "archive".
	Kind string `yaml:"kind"`
	// Path is the directory or archive-file path to mount.
	Path string `yaml:"path"`
}

// Manifest is a declarative description of a StorageServer's
// composition, loaded from YAML. It plays the role the original C++
// tooling left to ad hoc program startup code: a single file an
// operator edits to add or reorder mounts without touching code.
//
// Example:
//
//	userland: ./save
//	dataland:
//	  - kind: directory
//	    path: ./base
//	  - kind: archive
//	    path: ./patches/001.pak
type Manifest struct {
	Userland string          `yaml:"userland"`
	Dataland []ManifestEntry `yaml:"dataland"`
}

// LoadManifest reads and parses a manifest file at path.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("gfs: LoadManifest %s: %w", path, err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("gfs: LoadManifest %s: parsing: %w", path, err)
	}
	return &m, nil
}

// Apply mounts every dataland entry in m, in order, onto server.
// Directory entries are mounted directly; archive entries are routed
// through archives.LoadFile first and mounted by the resulting Archive.
// Apply stops and returns the first error encountered, leaving any
// mounts already applied in place.
func Apply(m *Manifest, server *StorageServer[*PlatformFile], archives *ArchiveSystem) error {
	for _, entry := range m.Dataland {
		switch entry.Kind {
		case "directory":
			dir, err := NewDirectory(entry.Path, NewPlatformFile)
			if err != nil {
				return fmt.Errorf("gfs: Apply: mounting directory %s: %w", entry.Path, err)
			}
			if err := server.Mount(dir); err != nil {
				return fmt.Errorf("gfs: Apply: mounting directory %s: %w", entry.Path, err)
			}
		case "archive":
			archive, err := archives.LoadFile(entry.Path)
			if err != nil {
				return fmt.Errorf("gfs: Apply: loading archive %s: %w", entry.Path, err)
			}
			if err := server.Mount(archive); err != nil {
				return fmt.Errorf("gfs: Apply: mounting archive %s: %w", entry.Path, err)
			}
		default:
			return fmt.Errorf("gfs: Apply: unknown manifest entry kind %q", entry.Kind)
		}
	}
	return nil
}
