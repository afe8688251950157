/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package path tokenizes DTS type paths: ASCII token ("::" token)*, no
// whitespace, no empty tokens (spec.md §6).
package path

import (
	"errors"
	"strings"
)

// ErrEmptyToken is returned when a path contains an empty token, e.g. a
// leading, trailing, or doubled separator ("::A", "A::", "A::::B").
var ErrEmptyToken = errors.New("path: empty token")

// ErrWhitespace is returned when a path contains whitespace.
var ErrWhitespace = errors.New("path: token contains whitespace")

// Tokenize splits s on the literal separator sep (normally "::") into
// its tokens, in order, rejecting empty tokens and whitespace in a
// single pass.
func Tokenize(s, sep string) ([]string, error) {
	if sep == "" {
		return nil, errors.New("path: empty separator")
	}
	if s == "" {
		return nil, ErrEmptyToken
	}
	if strings.ContainsAny(s, " \t\n\r") {
		return nil, ErrWhitespace
	}

	var tokens []string
	rest := s
	for {
		i := strings.Index(rest, sep)
		if i < 0 {
			if rest == "" {
				return nil, ErrEmptyToken
			}
			tokens = append(tokens, rest)
			return tokens, nil
		}
		if i == 0 {
			return nil, ErrEmptyToken
		}
		tokens = append(tokens, rest[:i])
		rest = rest[i+len(sep):]
	}
}
