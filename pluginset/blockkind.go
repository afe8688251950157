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

package pluginset

import (
	"fmt"
	"strings"
)

// BlockKind selects which of the four convenience plugin-interface
// builders spec.md §4.4 describes was used to register a block.
//
// # Overview
//
// BlockKind is a small enumerated type describing how a plugin block's
// apis.PluginInterface was assembled: whether it is an always-present
// default-constructed struct, a struct that is only sometimes
// constructed, a struct whose declared Go size differs from its
// host-reported size, or a fully custom interface object DTS itself
// owns and disposes of.
//
// BlockKind does not change where a block lives in the packed region —
// every block occupies the same bytes regardless of kind, per spec.md §1
// Non-goals ("layout is O(1) to compute"). It only changes how that
// block's ConstructBlock/AssignBlock/DestroyBlock are implemented.
type BlockKind int

const (
	// Plain selects a struct that is unconditionally default-constructed
	// into every instance.
	Plain BlockKind = iota
	// Conditional selects a struct that is constructed only when a
	// host-supplied predicate returns true.
	Conditional
	// Sized selects a block whose size is supplied explicitly by the
	// caller rather than derived from unsafe.Sizeof.
	Sized
	// Custom selects a plugin whose apis.PluginInterface is supplied
	// ready-made; if it implements Disposer, DTS disposes of it on
	// Unregister.
	Custom
)

// String returns a stable, human-readable token for k.
func (k BlockKind) String() string {
	switch k {
	case Plain:
		return "Plain"
	case Conditional:
		return "Conditional"
	case Sized:
		return "Sized"
	case Custom:
		return "Custom"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// Parse converts a string token into the corresponding BlockKind, case
// insensitively.
func Parse(s string) (BlockKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "plain":
		return Plain, nil
	case "conditional":
		return Conditional, nil
	case "sized":
		return Sized, nil
	case "custom":
		return Custom, nil
	default:
		return 0, fmt.Errorf("pluginset: unknown block kind %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k BlockKind) MarshalText() ([]byte, error) {
	switch k {
	case Plain, Conditional, Sized, Custom:
		return []byte(k.String()), nil
	default:
		return nil, fmt.Errorf("pluginset: cannot marshal unknown block kind %d", k)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *BlockKind) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}
