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

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"
)

var listCommand = &cli.Command{
	Name:        "list",
	Usage:       "List databases",
	UsageText:   "list",
	Description: `List all databases in the data directories.`,
	Action: func(c *cli.Context) error {
		if c.NArg() != 0 {
			return ErrFlagParse
		}

		dbs, errs := openAll(c)
		for _, err := range errs {
			fmt.Fprintln(c.App.ErrWriter, err)
		}

		tbl := table.New("Name", "Records", "Flags", "Path").WithWriter(c.App.Writer)
		for _, db := range dbs {
			tbl.AddRow(db.Name(), db.Len(), db.Header().Flags(), db.Path())
		}
		tbl.Print()

		return errors.Join(errs...)
	},
}
