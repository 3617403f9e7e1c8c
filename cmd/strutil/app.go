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

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-stdlog/stdlog"
	"github.com/urfave/cli/v2"
	"sigs.k8s.io/release-utils/version"

	"github.com/ianlewis/go-strfile"
)

const (
	// ExitCodeSuccess is successful error code.
	ExitCodeSuccess int = iota

	// ExitCodeFlagParseError is the exit code for a flag parsing error.
	ExitCodeFlagParseError

	// ExitCodeUnknownError is the exit code for an unknown error.
	ExitCodeUnknownError
)

// ErrStrutil is the base error for strutil errors.
var ErrStrutil = errors.New("strutil")

// ErrFlagParse indicates invalid flags or arguments.
var ErrFlagParse = fmt.Errorf("%w: parsing flags", ErrStrutil)

// ErrNotFound indicates that a database could not be found.
var ErrNotFound = fmt.Errorf("%w: database not found", ErrStrutil)

var copyrightNames = []string{
	"2024 Google LLC",
}

func init() {
	// Set the HelpFlag to a random name so that it isn't used. `cli` handles
	// the flag with the root command such that it takes a command name argument
	// but we don't use commands.
	//
	// This is done because `strutil --help foo` will display a
	// "command foo not found" error instead of the help.
	//
	// This flag is hidden by the help output.
	// See: github.com/urfave/cli/issues/1809
	cli.HelpFlag = &cli.BoolFlag{
		// NOTE: Use a random name no one would guess.
		Name:               "d41d8cd98f00b204e980",
		DisableDefaultText: true,
	}
}

func check(err error) {
	if err != nil {
		panic(err)
	}
}

func newStrutilApp() *cli.App {
	return &cli.App{
		Name:  filepath.Base(os.Args[0]),
		Usage: "Inspect strfile databases.",
		Description: strings.Join([]string{
			"strfile database utility written in Go.",
			"http://github.com/ianlewis/go-strfile",
		}, "\n"),
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "data-dir",
				Usage:   "include databases in `DIR`",
				Aliases: []string{"d"},
				EnvVars: []string{"FORTUNE_PATH"},
				Value:   cli.NewStringSlice(dataLocations()...),
			},
			&cli.BoolFlag{
				Name:               "verbose",
				Usage:              "log progress to stderr",
				Aliases:            []string{"v"},
				DisableDefaultText: true,
			},

			// Special flags are shown at the end.
			&cli.BoolFlag{
				Name:               "help",
				Usage:              "print this help text and exit",
				Aliases:            []string{"h"},
				DisableDefaultText: true,
			},
			&cli.BoolFlag{
				Name:               "version",
				Usage:              "print version information and exit",
				Aliases:            []string{"V"},
				DisableDefaultText: true,
			},
		},
		Copyright:       strings.Join(copyrightNames, "\n"),
		HideHelp:        true,
		HideHelpCommand: true,
		OnUsageError: func(_ *cli.Context, err error, _ bool) error {
			return fmt.Errorf("%w: %w", ErrFlagParse, err)
		},
		Action: func(c *cli.Context) error {
			if c.Bool("version") {
				return printVersion(c)
			}

			check(cli.ShowAppHelp(c))
			return nil
		},
		Commands: []*cli.Command{
			listCommand,
			infoCommand,
			showCommand,
		},
	}
}

func printVersion(c *cli.Context) error {
	versionInfo := version.GetVersionInfo()

	_, err := fmt.Fprintf(c.App.Writer, "%s %s\nCopyright (c) %s\n",
		c.App.Name,
		versionInfo.GitVersion,
		c.App.Copyright,
	)
	if err != nil {
		return fmt.Errorf("%w: printing version: %w", ErrStrutil, err)
	}
	return nil
}

func options(c *cli.Context) *strfile.Options {
	if !c.Bool("verbose") {
		return strfile.DefaultOptions
	}
	return &strfile.Options{
		Logger: stdlog.NewStd(os.Stderr),
	}
}

// openAll opens all databases found in the data directories.
func openAll(c *cli.Context) ([]*strfile.Strfile, []error) {
	var dbs []*strfile.Strfile
	var errs []error

	opts := options(c)
	for _, path := range c.StringSlice("data-dir") {
		if _, err := os.Stat(path); err != nil {
			// Missing default directories are common.
			continue
		}
		openDBs, openErrs := strfile.OpenAll(path, opts)

		dbs = append(dbs, openDBs...)
		errs = append(errs, openErrs...)
	}

	return dbs, errs
}

// find opens the database at path. If no file exists at path, the data
// directories are searched for a database with that name.
func find(c *cli.Context, path string) (*strfile.Strfile, error) {
	if _, err := os.Stat(path); err == nil {
		//nolint:wrapcheck // error already contains the path.
		return strfile.Open(path, options(c))
	}

	dbs, errs := openAll(c)
	for _, db := range dbs {
		if db.Name() == path {
			return db, nil
		}
	}
	// Databases that failed to open may be the one asked for.
	return nil, errors.Join(append([]error{fmt.Errorf("%w: %q", ErrNotFound, path)}, errs...)...)
}
