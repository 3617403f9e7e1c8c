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

// Package strfile implements a library for reading strfile databases in
// pure Go.
//
// A strfile database, as used by fortune(6), contains two files:
//  1. A text file that holds records separated by lines containing only a
//     delimiter character. The text file can be compressed using the
//     dictzip format.
//  2. A .dat file that contains a header and the offset of each record in
//     the text file. The .dat file can be compressed using gzip.
//
// Records in the text file may be obfuscated with ROT13. They are decoded
// when read.
package strfile
