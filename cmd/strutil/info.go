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
	"fmt"

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"
)

var infoCommand = &cli.Command{
	Name:        "info",
	Usage:       "Print database headers",
	UsageText:   "info DB...",
	Description: `Print the header of each database. DB is a path to a text file or the name of a database in the data directories.`,
	Action: func(c *cli.Context) error {
		if c.NArg() == 0 {
			return fmt.Errorf("%w: missing database", ErrFlagParse)
		}

		for i, path := range c.Args().Slice() {
			db, err := find(c, path)
			if err != nil {
				return err
			}
			h := db.Header()

			if i > 0 {
				fmt.Fprintln(c.App.Writer)
			}
			tbl := table.New("Field", "Value").WithWriter(c.App.Writer)
			tbl.AddRow("Name", db.Name())
			tbl.AddRow("Path", db.Path())
			tbl.AddRow("Index", db.IndexPath())
			tbl.AddRow("Version", h.Version())
			tbl.AddRow("Records", h.Count())
			tbl.AddRow("Longest", h.LongestLength())
			tbl.AddRow("Shortest", h.ShortestLength())
			tbl.AddRow("Flags", fmt.Sprintf("%s (%#x)", h.Flags(), uint32(h.Flags())))
			tbl.AddRow("Delimiter", fmt.Sprintf("%q", h.Delim()))
			tbl.Print()
		}
		return nil
	},
}
