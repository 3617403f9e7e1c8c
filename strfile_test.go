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

package strfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-stdlog/stdlog"
	"github.com/google/go-cmp/cmp"

	"github.com/ianlewis/go-strfile/dat"
	"github.com/ianlewis/go-strfile/internal/testutil"
)

var testRecords = []string{
	"You will be successful in your work.\n",
	"Q: What's purple and commutes?\nA: An abelian grape.\n",
	"Never trust a computer you can't throw out a window.\n\t\t-- Steve Wozniak\n",
}

func TestOpen(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		opts     *testutil.MakeDBOptions
		expected string
	}{
		{
			name:     "plain",
			opts:     &testutil.MakeDBOptions{Name: "fortunes"},
			expected: "fortunes",
		},
		{
			name:     "rotated",
			opts:     &testutil.MakeDBOptions{Name: "off", Rotated: true},
			expected: "off",
		},
		{
			name:     "compressed",
			opts:     &testutil.MakeDBOptions{Name: "art", DictZip: true, GzipIndex: true},
			expected: "art",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			path := testutil.MakeTempDB(t, testRecords, test.opts)

			s, err := Open(path, &Options{Logger: stdlog.Discard})
			if err != nil {
				t.Fatalf("Open: %v", err)
			}

			if diff := cmp.Diff(test.expected, s.Name()); diff != "" {
				t.Fatalf("Name (-want, +got):\n%s", diff)
			}
			if diff := cmp.Diff(len(testRecords), s.Len()); diff != "" {
				t.Fatalf("Len (-want, +got):\n%s", diff)
			}
			if diff := cmp.Diff(test.opts.Rotated, s.Header().Rotated()); diff != "" {
				t.Fatalf("Rotated (-want, +got):\n%s", diff)
			}

			records, err := s.Records()
			if err != nil {
				t.Fatalf("Records: %v", err)
			}
			if diff := cmp.Diff(testRecords, records); diff != "" {
				t.Fatalf("Records (-want, +got):\n%s", diff)
			}

			r, err := s.Record(1)
			if err != nil {
				t.Fatalf("Record: %v", err)
			}
			if diff := cmp.Diff(testRecords[1], r); diff != "" {
				t.Fatalf("Record (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestOpen_missingIndex(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "fortunes")
	if err := os.WriteFile(path, []byte("a\n%\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := Open(path, nil)
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Open: want %v, got %v", os.ErrNotExist, err)
	}
}

func TestStrfile_Record_outOfRange(t *testing.T) {
	t.Parallel()

	s, err := Open(testutil.MakeTempDB(t, testRecords, nil), nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	for _, i := range []int{-1, len(testRecords)} {
		if _, err := s.Record(i); !errors.Is(err, ErrNoRecord) {
			t.Errorf("Record(%d): want %v, got %v", i, ErrNoRecord, err)
		}
	}
}

func TestOpenAll(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0o700); err != nil {
		t.Fatal(err)
	}

	testutil.MakeTempDB(t, testRecords, &testutil.MakeDBOptions{Dir: dir, Name: "fortunes"})
	testutil.MakeTempDB(t, testRecords[:1], &testutil.MakeDBOptions{Dir: dir, Name: "off", Rotated: true})
	testutil.MakeTempDB(t, testRecords[:2], &testutil.MakeDBOptions{Dir: sub, Name: "zipped", DictZip: true})

	// An index without a text file is skipped.
	if err := os.WriteFile(filepath.Join(dir, "orphan.dat"), testutil.MakeIndex(t, &testutil.Index{Delim: '%'}), 0o600); err != nil {
		t.Fatal(err)
	}

	// A truncated index is reported.
	if err := os.WriteFile(filepath.Join(dir, "broken"), []byte("a\n%\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.dat"), []byte{0, 0, 0, 2}, 0o600); err != nil {
		t.Fatal(err)
	}

	dbs, errs := OpenAll(dir, &Options{Logger: stdlog.Discard})

	if len(errs) != 1 || !errors.Is(errs[0], dat.ErrFormat) {
		t.Fatalf("OpenAll: unexpected errors: %v", errs)
	}

	got := map[string]int{}
	for _, db := range dbs {
		got[db.Name()] = db.Len()
	}
	if diff := cmp.Diff(map[string]int{"fortunes": 3, "off": 1, "zipped": 2}, got); diff != "" {
		t.Fatalf("OpenAll (-want, +got):\n%s", diff)
	}

	for _, db := range dbs {
		records, err := db.Records()
		if err != nil {
			t.Fatalf("Records(%s): %v", db.Name(), err)
		}
		if diff := cmp.Diff(testRecords[:db.Len()], records); diff != "" {
			t.Fatalf("Records(%s) (-want, +got):\n%s", db.Name(), diff)
		}
	}
}

func TestOpenAll_duplicateIndex(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.MakeTempDB(t, testRecords, &testutil.MakeDBOptions{Dir: dir, Name: "fortunes"})
	testutil.MakeTempDB(t, testRecords, &testutil.MakeDBOptions{Dir: dir, Name: "fortunes", GzipIndex: true})

	dbs, errs := OpenAll(dir, nil)
	if len(errs) != 0 {
		t.Fatalf("OpenAll: unexpected errors: %v", errs)
	}
	if len(dbs) != 1 {
		t.Fatalf("OpenAll: want 1 database, got %d", len(dbs))
	}
	if diff := cmp.Diff(filepath.Join(dir, "fortunes"), dbs[0].Path()); diff != "" {
		t.Fatalf("Path (-want, +got):\n%s", diff)
	}
}
