// Copyright 2026 Gaussref Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import (
	"encoding/hex"

	"github.com/go-crypt/x/blake2b"
)

// ContentDigest returns the BLAKE2b-256 hex digest of the chunk's canonical
// flattened text. Identical content always produces identical digests, which
// is what makes build manifests comparable across runs.
func ContentDigest(c *Chunk) string {
	return DigestBytes([]byte(c.FlattenedText()))
}

// DigestBytes returns the BLAKE2b-256 hex digest of raw bytes. Used for
// artifact hashes in the build manifest.
func DigestBytes(data []byte) string {
	h, _ := blake2b.New(32, nil)
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}
