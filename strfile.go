// Copyright 2021 Google LLC
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
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-stdlog/stdlog"

	"github.com/ianlewis/go-strfile/dat"
	"github.com/ianlewis/go-strfile/record"
)

// ErrNoRecord indicates that a record number is out of range.
var ErrNoRecord = errors.New("no such record")

// Options are options for opening a database.
type Options struct {
	// Logger receives debug and error logs. If unset, no logs are
	// generated.
	Logger stdlog.Logger
}

// DefaultOptions is the default options for opening a database.
var DefaultOptions = &Options{}

func (o *Options) getLogger() stdlog.Logger {
	if o != nil && o.Logger != nil {
		return o.Logger.Named("strfile")
	}
	return stdlog.Discard
}

// Strfile is a strfile database.
type Strfile struct {
	header *dat.Header

	path      string
	indexPath string
}

// OpenAll opens all databases under a directory. A database is found for
// each .dat file that has a matching text file. This function will return
// all successfully opened databases along with any errors that occurred.
func OpenAll(path string, options *Options) ([]*Strfile, []error) {
	log := options.getLogger()

	var dbs []*Strfile
	var errs []error
	// A text file may have both a .dat and a .dat.gz index.
	seen := map[string]bool{}
	if err := filepath.WalkDir(path, func(path string, info fs.DirEntry, err error) error {
		// Walking the file path will ignore errors.
		if err != nil {
			errs = append(errs, err)
			return nil
		}
		if info.IsDir() {
			return nil
		}

		dataPath, ok := dataPathFor(path)
		if !ok {
			return nil
		}
		if _, err := os.Stat(dataPath); err != nil {
			log.Debug("Skipping index without text file", "index", path)
			return nil
		}
		if seen[dataPath] {
			log.Debug("Skipping duplicate index", "index", path)
			return nil
		}
		seen[dataPath] = true

		db, err := Open(dataPath, options)
		if err != nil {
			log.Error(err, "Failed opening database", "path", dataPath)
			errs = append(errs, err)
			return nil
		}
		dbs = append(dbs, db)
		return nil
	}); err != nil {
		errs = append(errs, err)
		return nil, errs
	}
	return dbs, errs
}

// dataPathFor returns the text file path for the .dat file at indexPath.
func dataPathFor(indexPath string) (string, bool) {
	base := indexPath
	if strings.ToLower(filepath.Ext(base)) == ".gz" {
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if strings.ToLower(filepath.Ext(base)) != ".dat" {
		return "", false
	}
	base = strings.TrimSuffix(base, filepath.Ext(base))

	if _, err := os.Stat(base); err != nil {
		if _, err := os.Stat(base + ".dz"); err == nil {
			return base + ".dz", true
		}
	}
	return base, true
}

// Open opens a strfile database from the given text file path. The .dat
// file is expected next to it.
func Open(path string, options *Options) (*Strfile, error) {
	log := options.getLogger()

	f, err := dat.Open(path)
	if err != nil {
		return nil, err
	}
	indexPath := f.Name()

	h, err := dat.NewFromFile(f)
	if err != nil {
		return nil, err
	}

	log.Debug("Opened database",
		"path", path,
		"index", indexPath,
		"version", h.Version(),
		"count", h.Count(),
		"flags", h.Flags().String(),
	)

	return &Strfile{
		header:    h,
		path:      path,
		indexPath: indexPath,
	}, nil
}

// Name returns the database name. This is the text file name without any
// compression extension.
func (s *Strfile) Name() string {
	name := filepath.Base(s.path)
	if strings.ToLower(filepath.Ext(name)) == ".dz" {
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}
	return name
}

// Path returns the path to the text file.
func (s *Strfile) Path() string {
	return s.path
}

// IndexPath returns the path to the .dat file.
func (s *Strfile) IndexPath() string {
	return s.indexPath
}

// Header returns the database's header.
func (s *Strfile) Header() *dat.Header {
	return s.header
}

// Len returns the number of records.
func (s *Strfile) Len() int {
	return int(s.header.Count())
}

// Reader opens the text file for reading records. The returned File should
// be closed by the caller.
func (s *Strfile) Reader() (*record.File, error) {
	f, err := record.Open(s.path, s.header)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Name(), err)
	}
	return f, nil
}

// Records returns all records in the order of the .dat file.
func (s *Strfile) Records() ([]string, error) {
	records, err := record.ReadRecords(s.path, s.header)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Name(), err)
	}
	return records, nil
}

// Record returns the i-th record in the order of the .dat file.
func (s *Strfile) Record(i int) (string, error) {
	offset, ok := s.header.Offset(i)
	if !ok {
		return "", fmt.Errorf("%w: %s: %d", ErrNoRecord, s.Name(), i)
	}

	f, err := s.Reader()
	if err != nil {
		return "", err
	}
	defer f.Close()

	r, err := f.Record(offset)
	if err != nil {
		return "", fmt.Errorf("%s: %w", s.Name(), err)
	}
	return r, nil
}
