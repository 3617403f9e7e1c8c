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

import (
	"bufio"
	"compress/gzip"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// headerSize is the size of the fixed header including padding.
const headerSize = 24

// maxPrealloc caps the capacity reserved for the offset table up front. The
// table grows past it only as offsets are actually read.
const maxPrealloc = 1 << 16

// ErrFormat indicates that the .dat file is shorter than its header
// declares.
var ErrFormat = errors.New("invalid strfile format")

// Header is a decoded strfile header and offset table. Header is not
// modified after it is created.
type Header struct {
	version        uint32
	count          uint32
	longestLength  uint32
	shortestLength uint32
	flags          Flags
	delim          byte
	offsets        []uint32
}

// New reads a Header from r.
func New(r io.Reader) (*Header, error) {
	var b [headerSize]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return nil, fmt.Errorf("reading header: %w", shortRead(err))
	}

	h := &Header{
		version:        binary.BigEndian.Uint32(b[0:4]),
		count:          binary.BigEndian.Uint32(b[4:8]),
		longestLength:  binary.BigEndian.Uint32(b[8:12]),
		shortestLength: binary.BigEndian.Uint32(b[12:16]),
		flags:          Flags(binary.BigEndian.Uint32(b[16:20])),
		delim:          b[20],
		// b[21:24] is padding.
	}

	br := bufio.NewReader(r)
	h.offsets = make([]uint32, 0, min(h.count, maxPrealloc))
	for i := uint32(0); i < h.count; i++ {
		if _, err := io.ReadFull(br, b[:4]); err != nil {
			return nil, fmt.Errorf("reading offset %d of %d: %w", i, h.count, shortRead(err))
		}
		h.offsets = append(h.offsets, binary.BigEndian.Uint32(b[:4]))
	}

	return h, nil
}

// NewFromPath reads the Header from the .dat file at path. Files ending in
// .gz are decompressed.
func NewFromPath(path string) (*Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening .dat file: %w", err)
	}
	return NewFromFile(f)
}

// NewFromDataPath reads the Header of the .dat file belonging to the text
// file at dataPath.
func NewFromDataPath(dataPath string) (*Header, error) {
	f, err := Open(dataPath)
	if err != nil {
		return nil, err
	}
	return NewFromFile(f)
}

// NewFromFile reads the Header from f. NewFromFile takes ownership of f and
// closes it. Files named with a .gz extension are decompressed.
func NewFromFile(f *os.File) (*Header, error) {
	defer f.Close()

	var r io.Reader = f
	if strings.ToLower(filepath.Ext(f.Name())) == ".gz" {
		z, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("creating .dat gzip reader: %w", shortRead(err))
		}
		defer z.Close()
		r = z
	}

	h, err := New(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.Name(), err)
	}
	return h, nil
}

// Open opens the .dat file given the path to the text file. A trailing .dz
// extension on the text file is ignored.
func Open(dataPath string) (*os.File, error) {
	baseName := dataPath
	if strings.ToLower(filepath.Ext(dataPath)) == ".dz" {
		baseName = strings.TrimSuffix(dataPath, filepath.Ext(dataPath))
	}

	datExts := []string{
		".dat",
		".dat.gz",
		".dat.GZ",
		".DAT",
		".DAT.gz",
		".DAT.GZ",
	}
	var f *os.File
	var err error
	for _, ext := range datExts {
		f, err = os.Open(baseName + ext)
		if err == nil {
			break
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("opening .dat file: %w", err)
		}
	}

	// Catch the case when no .dat file was found.
	if err != nil {
		return nil, fmt.Errorf("opening .dat file: %w", err)
	}

	return f, nil
}

// shortRead marks a premature end of input as a format error.
func shortRead(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %w", ErrFormat, err)
	}
	return err
}

// Version returns the format version.
func (h *Header) Version() uint32 {
	return h.version
}

// Count returns the number of records.
func (h *Header) Count() uint32 {
	return h.count
}

// LongestLength returns the declared length of the longest record. It is
// informational and not enforced when reading records.
func (h *Header) LongestLength() uint32 {
	return h.longestLength
}

// ShortestLength returns the declared length of the shortest record.
func (h *Header) ShortestLength() uint32 {
	return h.shortestLength
}

// Flags returns the header's flags.
func (h *Header) Flags() Flags {
	return h.flags
}

// Delim returns the record delimiter.
func (h *Header) Delim() byte {
	return h.delim
}

// Offsets returns a copy of the record offsets in the order they are stored
// in the file.
func (h *Header) Offsets() []uint32 {
	offsets := make([]uint32, len(h.offsets))
	copy(offsets, h.offsets)
	return offsets
}

// Offset returns the i-th record offset.
func (h *Header) Offset(i int) (uint32, bool) {
	if i < 0 || i >= len(h.offsets) {
		return 0, false
	}
	return h.offsets[i], true
}
