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

// Package record implements reading records from a strfile text file.
//
// Records are located using the offsets in a .dat header. A record starts at
// its offset and runs up to the next line containing only the delimiter, or
// to the end of the file.
package record

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/ianlewis/go-dictzip"

	"github.com/ianlewis/go-strfile/dat"
	"github.com/ianlewis/go-strfile/internal/rot13"
)

// Reader reads records from a text file. A Reader only uses ReadAt so it
// may be shared if the underlying reader allows concurrent ReadAt calls.
type Reader struct {
	r        io.ReaderAt
	boundary []byte
	rotated  bool
	offsets  []uint32
}

// New returns a new Reader for the records described by h.
func New(r io.ReaderAt, h *dat.Header) *Reader {
	return &Reader{
		r:        r,
		boundary: []byte{h.Delim(), '\n'},
		rotated:  h.Rotated(),
		offsets:  h.Offsets(),
	}
}

// Record reads the record starting at offset. ROT13 is reversed if the
// header is flagged as rotated.
func (r *Reader) Record(offset uint32) (string, error) {
	br := bufio.NewReader(io.NewSectionReader(r.r, int64(offset), math.MaxInt64-int64(offset)))

	var b []byte
	for {
		line, err := br.ReadBytes('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("reading record at offset %d: %w", offset, err)
		}
		if bytes.Equal(line, r.boundary) {
			break
		}
		b = append(b, line...)
		if err != nil {
			// Final record without a delimiter line.
			break
		}
	}

	if r.rotated {
		return rot13.String(string(b)), nil
	}
	return string(b), nil
}

// Records reads every record in offset order.
func (r *Reader) Records() ([]string, error) {
	records := make([]string, 0, len(r.offsets))
	for _, o := range r.offsets {
		s, err := r.Record(o)
		if err != nil {
			return nil, err
		}
		records = append(records, s)
	}
	return records, nil
}

// File is a Reader over an open text file.
type File struct {
	*Reader
	f *os.File

	// z is the dictzip reader for compressed files.
	z io.Closer
}

// Open opens the text file at dataPath. Files ending in .dz are read as
// dictzip files. The File should be closed with the Close method.
func Open(dataPath string, h *dat.Header) (*File, error) {
	f, err := os.Open(dataPath)
	if err != nil {
		return nil, fmt.Errorf("opening text file: %w", err)
	}

	file := &File{f: f}

	var r io.ReaderAt = f
	if strings.ToLower(filepath.Ext(dataPath)) == ".dz" {
		z, err := dictzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("creating dictzip reader: %w", err)
		}
		r = z
		file.z = z
	}
	file.Reader = New(r, h)

	return file, nil
}

// Close closes the dictzip reader, if any, and the text file.
func (f *File) Close() error {
	var zErr error
	if f.z != nil {
		zErr = f.z.Close()
	}
	err := f.f.Close()
	if f.z != nil && errors.Is(err, os.ErrClosed) {
		// The dictzip reader already closed the file.
		err = nil
	}
	if err := errors.Join(zErr, err); err != nil {
		return fmt.Errorf("closing text file: %w", err)
	}
	return nil
}

// ReadRecords reads all records described by h from the text file at
// dataPath.
func ReadRecords(dataPath string, h *dat.Header) ([]string, error) {
	f, err := Open(dataPath, h)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return f.Records()
}
