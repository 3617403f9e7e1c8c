// Copyright 2024 Google LLC
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

// Package testutil builds strfile databases for tests.
package testutil

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/ianlewis/go-strfile/dat"
)

// Index describes a .dat file.
type Index struct {
	Version        uint32
	LongestLength  uint32
	ShortestLength uint32
	Flags          dat.Flags
	Delim          byte
	Offsets        []uint32

	// Count overrides the record count written to the header. If zero the
	// number of offsets is used.
	Count uint32
}

// MakeIndex returns the encoded .dat file for idx.
func MakeIndex(t *testing.T, idx *Index) []byte {
	t.Helper()

	count := idx.Count
	if count == 0 {
		if len(idx.Offsets) > math.MaxUint32 {
			t.Fatalf("too many offsets: %d", len(idx.Offsets))
		}
		//nolint:gosec // bounds checked above.
		count = uint32(len(idx.Offsets))
	}

	b := make([]byte, 24, 24+4*len(idx.Offsets))
	binary.BigEndian.PutUint32(b[0:4], idx.Version)
	binary.BigEndian.PutUint32(b[4:8], count)
	binary.BigEndian.PutUint32(b[8:12], idx.LongestLength)
	binary.BigEndian.PutUint32(b[12:16], idx.ShortestLength)
	binary.BigEndian.PutUint32(b[16:20], uint32(idx.Flags))
	b[20] = idx.Delim
	for _, o := range idx.Offsets {
		b = binary.BigEndian.AppendUint32(b, o)
	}
	return b
}
