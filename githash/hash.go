// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package githash

import (
	"encoding/binary"

	"github.com/zeebo/blake3"

	"github.com/forgehold/gamefs/gfs"
)

// BLAKE3 returns a gfs.HashFunction that hashes a string identity
// with BLAKE3 and truncates the digest to its first 8 bytes, read
// little-endian, to match gfs.HashedIdentity's uint64 width. Two
// distinct identities could in principle collide after truncation;
// callers that cannot tolerate that should keep their own full-digest
// index and use this only as a fast first-pass key.
func BLAKE3() gfs.HashFunction {
	return func(identity gfs.StringIdentity) gfs.HashedIdentity {
		hasher := blake3.New()
		hasher.Write([]byte(identity))
		sum := hasher.Sum(nil)
		return binary.LittleEndian.Uint64(sum[:8])
	}
}
