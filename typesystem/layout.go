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

package typesystem

import (
	"unsafe"

	"dirpx.dev/dts/apis"
)

func readLockChain(chain []*descriptor) func() {
	for _, d := range chain {
		d.lock.EnterRead()
	}
	return func() {
		for i := len(chain) - 1; i >= 0; i-- {
			chain[i].lock.LeaveRead()
		}
	}
}

// SizeForParams computes the total composite size that Construct would
// allocate for desc given params, without constructing anything
// (spec.md §4.2): header + language-object size + every ancestor's
// (inclusive) plugin registry runtime size.
func (s *System) SizeForParams(sys apis.System, desc apis.Descriptor, params any) uintptr {
	d := mustDescriptor(desc)
	chain := chainRootToLeaf(d)
	unlock := readLockChain(chain)
	defer unlock()

	total := s.headerSize() + d.iface.SizeFromParams(sys, params)
	for _, a := range chain {
		total += a.plugins.RuntimeSize()
	}
	return total
}

// SizeForInstance computes the total composite size of an already
// constructed instance whose language object lives at obj.
func (s *System) SizeForInstance(sys apis.System, desc apis.Descriptor, obj unsafe.Pointer) uintptr {
	d := mustDescriptor(desc)
	chain := chainRootToLeaf(d)
	unlock := readLockChain(chain)
	defer unlock()

	total := s.headerSize() + d.iface.SizeFromInstance(sys, obj)
	for _, a := range chain {
		total += a.plugins.SizeForInstance(obj)
	}
	return total
}

// pluginBlockBase returns the address of the start of target's own
// plugin block region inside the composite starting at base, whose leaf
// descriptor is leaf. It implements spec.md §4.2's plugin-location
// algorithm: header + language-object size + the runtime size of every
// strict ancestor of target.
func (s *System) pluginBlockBase(sys apis.System, base unsafe.Pointer, leaf *descriptor, target *descriptor) unsafe.Pointer {
	offset := s.headerSize() + leaf.iface.SizeFromInstance(sys, s.languageObject(base))
	for _, a := range chainRootToLeaf(target) {
		if a == target {
			break
		}
		offset += a.plugins.RuntimeSize()
	}
	return unsafe.Add(base, offset)
}

// ResolveStruct returns the address of the plugin block registered under
// token on the descriptor owner, inside the instance whose composite
// starts at base (spec.md §4.2 RESOLVE_STRUCT). ok is false if owner has
// no block registered under token.
func (s *System) ResolveStruct(sys apis.System, base unsafe.Pointer, owner apis.Descriptor, token uint32) (unsafe.Pointer, bool) {
	leaf := s.ownerOf(base)
	target := mustDescriptor(owner)

	unlock := readLockChain(chainRootToLeaf(leaf))
	defer unlock()

	within, ok := target.plugins.ResolveOffset(s.languageObject(base), token)
	if !ok {
		return nil, false
	}

	blockBase := s.pluginBlockBase(sys, base, leaf, target)
	return unsafe.Add(blockBase, within), true
}
