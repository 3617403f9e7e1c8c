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

// Package rot13 implements the ROT13 letter substitution used to obfuscate
// strfile records.
package rot13

import (
	"golang.org/x/text/transform"
)

// Transformer is a [transform.Transformer] that rotates ASCII letters by 13
// places within their case. All other bytes are copied unchanged. Applying
// it twice yields the original text.
type Transformer struct {
	transform.NopResetter
}

// Transform implements [transform.Transformer].
func (Transformer) Transform(dst, src []byte, _ bool) (int, int, error) {
	n := len(src)
	var err error
	if len(dst) < n {
		n = len(dst)
		err = transform.ErrShortDst
	}
	for i := 0; i < n; i++ {
		dst[i] = Byte(src[i])
	}
	return n, n, err
}

// Byte returns the rotated value of c.
func Byte(c byte) byte {
	switch {
	case 'a' <= c && c <= 'z':
		return 'a' + (c-'a'+13)%26
	case 'A' <= c && c <= 'Z':
		return 'A' + (c-'A'+13)%26
	default:
		return c
	}
}

// String returns s with ROT13 applied.
func String(s string) string {
	// Transformer never fails given enough destination space.
	r, _, _ := transform.String(Transformer{}, s)
	return r
}
