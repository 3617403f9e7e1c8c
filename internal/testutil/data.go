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

package testutil

import (
	"compress/gzip"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ianlewis/go-dictzip"

	"github.com/ianlewis/go-strfile/dat"
	"github.com/ianlewis/go-strfile/internal/rot13"
)

// MakeData returns a text file holding records and the offset of each
// record. Every record is followed by a delimiter line unless it is the last
// record and trailingDelim is false.
func MakeData(t *testing.T, records []string, delim byte, trailingDelim bool) ([]byte, []uint32) {
	t.Helper()

	var b []byte
	var offsets []uint32
	for i, r := range records {
		if len(b) > math.MaxUint32 {
			t.Fatalf("data too long: %d", len(b))
		}
		//nolint:gosec // bounds checked above.
		offsets = append(offsets, uint32(len(b)))
		b = append(b, r...)
		if trailingDelim || i < len(records)-1 {
			b = append(b, delim, '\n')
		}
	}
	return b, offsets
}

// MakeDBOptions are options for MakeTempDB.
type MakeDBOptions struct {
	// Dir is the directory to write to. Defaults to t.TempDir().
	Dir string

	// Name is the text file name. Defaults to "fortunes".
	Name string

	// Delim is the record delimiter. Defaults to '%'.
	Delim byte

	// Flags are written to the header. FlagRotated is added when Rotated is
	// true.
	Flags dat.Flags

	// Rotated stores the records with ROT13 applied.
	Rotated bool

	// GzipIndex writes the .dat file compressed as .dat.gz.
	GzipIndex bool

	// DictZip writes the text file compressed as <name>.dz.
	DictZip bool
}

func (o *MakeDBOptions) getDir(t *testing.T) string {
	if o != nil && o.Dir != "" {
		return o.Dir
	}
	return t.TempDir()
}

func (o *MakeDBOptions) getName() string {
	if o != nil && o.Name != "" {
		return o.Name
	}
	return "fortunes"
}

func (o *MakeDBOptions) getDelim() byte {
	if o != nil && o.Delim != 0 {
		return o.Delim
	}
	return '%'
}

// MakeTempDB writes a text file and its .dat file and returns the path to
// the text file.
func MakeTempDB(t *testing.T, records []string, opts *MakeDBOptions) string {
	t.Helper()
	if opts == nil {
		opts = &MakeDBOptions{}
	}

	delim := opts.getDelim()
	flags := opts.Flags
	stored := records
	if opts.Rotated {
		flags |= dat.FlagRotated
		stored = make([]string, len(records))
		for i, r := range records {
			stored[i] = rot13.String(r)
		}
	}

	data, offsets := MakeData(t, stored, delim, true)
	index := MakeIndex(t, &Index{
		Version: 2,
		Flags:   flags,
		Delim:   delim,
		Offsets: offsets,
	})

	base := filepath.Join(opts.getDir(t), opts.getName())

	dataPath := base
	if opts.DictZip {
		dataPath += ".dz"
		writeDictZip(t, dataPath, data)
	} else {
		writeFile(t, dataPath, data)
	}

	if opts.GzipIndex {
		writeGzip(t, base+".dat.gz", index)
	} else {
		writeFile(t, base+".dat", index)
	}

	return dataPath
}

func writeFile(t *testing.T, path string, b []byte) {
	t.Helper()
	if err := os.WriteFile(path, b, 0o600); err != nil {
		t.Fatal(err)
	}
}

func writeGzip(t *testing.T, path string, b []byte) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	z := gzip.NewWriter(f)
	if _, err := z.Write(b); err != nil {
		t.Fatal(err)
	}
	if err := z.Close(); err != nil {
		t.Fatal(err)
	}
}

func writeDictZip(t *testing.T, path string, b []byte) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	z, err := dictzip.NewWriter(f)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := z.Write(b); err != nil {
		t.Fatal(err)
	}
	if err := z.Close(); err != nil {
		t.Fatal(err)
	}
}
