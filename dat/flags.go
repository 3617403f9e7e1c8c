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

package dat

import "strings"

// Flags is the strfile header bit field.
type Flags uint32

const (
	// FlagRandom indicates that the offsets were randomized.
	FlagRandom Flags = 1 << iota

	// FlagOrdered indicates that the offsets are sorted in alphabetical
	// order of the records.
	FlagOrdered

	// FlagRotated indicates that records are obfuscated with ROT13.
	FlagRotated

	// FlagHasComments indicates that records may contain comment lines.
	FlagHasComments
)

// Has returns true if any of the bits in mask are set.
//
// NOTE: historical readers tested flags with (flags & mask) == 1 which only
// ever matches FlagRandom. Has tests for any matching bit instead so that
// rotated and commented files are detected.
func (f Flags) Has(mask Flags) bool {
	return f&mask != 0
}

// String returns the names of the set flags separated by '|'.
func (f Flags) String() string {
	var names []string
	for _, n := range []struct {
		flag Flags
		name string
	}{
		{FlagRandom, "random"},
		{FlagOrdered, "ordered"},
		{FlagRotated, "rotated"},
		{FlagHasComments, "comments"},
	} {
		if f.Has(n.flag) {
			names = append(names, n.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

// Random returns true if the header's FlagRandom bit is set.
func (h *Header) Random() bool {
	return h.flags.Has(FlagRandom)
}

// Ordered returns true if the header's FlagOrdered bit is set.
func (h *Header) Ordered() bool {
	return h.flags.Has(FlagOrdered)
}

// Rotated returns true if the header's FlagRotated bit is set.
func (h *Header) Rotated() bool {
	return h.flags.Has(FlagRotated)
}

// HasComments returns true if the header's FlagHasComments bit is set.
func (h *Header) HasComments() bool {
	return h.flags.Has(FlagHasComments)
}
