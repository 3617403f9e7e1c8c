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
	"strconv"

	"github.com/urfave/cli/v2"
)

var showCommand = &cli.Command{
	Name:      "show",
	Usage:     "Print records",
	UsageText: "show DB [N...]",
	Description: `Print records from a database. Records are numbered from 0 in the order of
the .dat file. All records are printed if no numbers are given.`,
	Action: func(c *cli.Context) error {
		if c.NArg() == 0 {
			return fmt.Errorf("%w: missing database", ErrFlagParse)
		}

		var nums []int
		for _, arg := range c.Args().Tail() {
			n, err := strconv.Atoi(arg)
			if err != nil {
				return fmt.Errorf("%w: invalid record number %q", ErrFlagParse, arg)
			}
			nums = append(nums, n)
		}

		db, err := find(c, c.Args().First())
		if err != nil {
			return err
		}

		var records []string
		if len(nums) == 0 {
			records, err = db.Records()
			if err != nil {
				return fmt.Errorf("%w: %w", ErrStrutil, err)
			}
		} else {
			for _, n := range nums {
				r, err := db.Record(n)
				if err != nil {
					return fmt.Errorf("%w: %w", ErrStrutil, err)
				}
				records = append(records, r)
			}
		}

		delim := db.Header().Delim()
		for _, r := range records {
			// The delimiter is written as the raw byte from the data file.
			if _, err := c.App.Writer.Write(append([]byte(r), delim, '\n')); err != nil {
				return fmt.Errorf("%w: writing record: %w", ErrStrutil, err)
			}
		}
		return nil
	},
}
