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

// Package resolver walks "::"-separated type paths against an
// apis.Finder, one token at a time.
package resolver

import (
	"dirpx.dev/dts/apis"
	"dirpx.dev/dts/utils/path"
)

// Chain resolves type paths ("A::B::C") against a Finder, tokenizing on
// a configurable separator (config.DefaultPathSeparator by default).
type Chain struct {
	finder apis.Finder
	sep    string
}

// New builds a Chain over finder. sep is the literal token separator; an
// empty sep defaults to "::".
func New(finder apis.Finder, sep string) *Chain {
	if sep == "" {
		sep = "::"
	}
	return &Chain{finder: finder, sep: sep}
}

// ResolvePath tokenizes p and resolves each token against the previous
// result, starting from the root (nil parent). It returns the deepest
// descriptor successfully matched: if every token resolves, that is the
// final token's descriptor; if a later token fails to resolve, the walk
// stops and the last successful match is still returned. ok is false
// only when the very first token fails to resolve, or when p does not
// tokenize.
func (c *Chain) ResolvePath(p string) (found apis.Descriptor, ok bool) {
	tokens, err := path.Tokenize(p, c.sep)
	if err != nil {
		return nil, false
	}

	var current apis.Descriptor
	matched := false
	for _, tok := range tokens {
		next, exists := c.finder.Find(tok, current)
		if !exists {
			break
		}
		current = next
		matched = true
	}
	return current, matched
}
