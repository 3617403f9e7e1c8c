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

// Package dat implements reading strfile index (.dat) files.
//
// A .dat file describes a companion text file holding records separated by
// a line containing only a delimiter character (usually '%'). The .dat file
// starts with a 24 byte header followed by a table of offsets:
//  1. version, record count, longest and shortest record length, and
//     flags: five 32 bit integers in network byte order.
//  2. The delimiter: a single byte followed by three bytes of padding.
//  3. The offsets: one 32 bit integer in network byte order per record
//     giving the position of the record in the text file.
package dat
