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

// blockBases returns, for each descriptor in chain (root first), the
// address of the start of that descriptor's own plugin block region
// inside a composite whose language object occupies [languageSz] bytes
// starting right after the header.
func blockBases(base unsafe.Pointer, headerSz, languageSz uintptr, chain []*descriptor) []unsafe.Pointer {
	bases := make([]unsafe.Pointer, len(chain))
	offset := headerSz + languageSz
	for i, a := range chain {
		bases[i] = unsafe.Add(base, offset)
		offset += a.plugins.RuntimeSize()
	}
	return bases
}

// constructPluginChain constructs chain[i]'s plugin block at bases[i],
// root first (spec.md §4.3 step 6). On the first failure it unwinds
// every block already constructed during this call, in reverse order,
// and returns false.
func constructPluginChain(sys apis.System, chain []*descriptor, bases []unsafe.Pointer) bool {
	for i, a := range chain {
		if !a.plugins.ConstructBlock(sys, bases[i]) {
			for j := i - 1; j >= 0; j-- {
				chain[j].plugins.DestroyBlock(sys, bases[j])
			}
			return false
		}
	}
	return true
}

// assignPluginChain assigns every descriptor's plugin block from src to
// dst, root first (spec.md §4.3 clone's assign phase). It does not
// unwind on failure; the caller treats any false as "unwind the whole
// clone".
func assignPluginChain(sys apis.System, chain []*descriptor, dstBases, srcBases []unsafe.Pointer) bool {
	for i, a := range chain {
		if !a.plugins.AssignBlock(sys, dstBases[i], srcBases[i]) {
			return false
		}
	}
	return true
}

// destroyPluginChain destroys every descriptor's plugin block, leaf
// first (spec.md §4.3 destroy_placement step 1).
func destroyPluginChain(sys apis.System, chain []*descriptor, bases []unsafe.Pointer) {
	for i := len(chain) - 1; i >= 0; i-- {
		chain[i].plugins.DestroyBlock(sys, bases[i])
	}
}

func referenceChain(chain []*descriptor) {
	for _, a := range chain {
		a.reference()
	}
}

func dereferenceChain(chain []*descriptor) {
	for _, a := range chain {
		a.dereference()
	}
}

// Construct allocates and builds a new composite instance of desc,
// passing params to the type interface's Construct callback (spec.md
// §4.3 construct). It returns (nil, nil) — not an error — if the
// computed size is zero, if allocation fails, or if any plugin block
// fails to construct: those are not structured failures. A non-nil
// error is only ever an *apis.Error surfaced by the type interface
// itself (for example AbstractConstruction).
func (s *System) Construct(sys apis.System, desc apis.Descriptor, params any) (unsafe.Pointer, error) {
	d := mustDescriptor(desc)
	chain := chainRootToLeaf(d)

	referenceChain(chain)

	size := s.SizeForParams(sys, d, params)
	if size == 0 {
		dereferenceChain(chain)
		return nil, nil
	}

	base, ok := s.allocator.Allocate(sys, size, s.cfg.PointerAlignment)
	if !ok {
		dereferenceChain(chain)
		return nil, nil
	}

	instance, err := s.constructPlacementInto(sys, base, d, chain, func(obj unsafe.Pointer) error {
		return d.iface.Construct(sys, obj, params)
	})
	if instance == nil {
		s.allocator.Free(sys, base)
		dereferenceChain(chain)
		return nil, err
	}
	return instance, nil
}

// ConstructPlacement builds a new composite instance of desc into the
// caller-owned buffer buf, which must be at least
// SizeForParams(sys, desc, params) bytes (spec.md §4.3 construct_placement).
func (s *System) ConstructPlacement(sys apis.System, buf unsafe.Pointer, desc apis.Descriptor, params any) (unsafe.Pointer, error) {
	d := mustDescriptor(desc)
	chain := chainRootToLeaf(d)

	referenceChain(chain)
	instance, err := s.constructPlacementInto(sys, buf, d, chain, func(obj unsafe.Pointer) error {
		return d.iface.Construct(sys, obj, params)
	})
	if instance == nil {
		dereferenceChain(chain)
	}
	return instance, err
}

// constructPlacementInto runs steps 4–7 of spec.md §4.3's construct
// algorithm: write the header, run build against the language object,
// construct the plugin chain root-first, and unwind on any failure. The
// caller is responsible for steps 1–3 (reference, size, allocate) and
// for freeing buf on a nil return.
func (s *System) constructPlacementInto(sys apis.System, buf unsafe.Pointer, leaf *descriptor, chain []*descriptor, build func(obj unsafe.Pointer) error) (unsafe.Pointer, error) {
	unlock := readLockChain(chain)
	defer unlock()

	s.writeHeader(buf, leaf)
	obj := s.languageObject(buf)

	if err := build(obj); err != nil {
		return nil, err
	}

	languageSz := leaf.iface.SizeFromInstance(sys, obj)
	bases := blockBases(buf, s.headerSize(), languageSz, chain)
	if !constructPluginChain(sys, chain, bases) {
		leaf.iface.Destruct(sys, obj)
		return nil, nil
	}
	return buf, nil
}

// Clone allocates a new composite instance that is a copy of src, an
// existing instance of the same System (spec.md §4.3 clone). It returns
// (nil, nil) on any non-structured failure (alloc, plugin
// construct/assign); it returns a non-nil *apis.Error only when the type
// interface's CopyConstruct itself fails (for example UndefinedMethod).
func (s *System) Clone(sys apis.System, src unsafe.Pointer) (unsafe.Pointer, error) {
	leaf := s.ownerOf(src)
	chain := chainRootToLeaf(leaf)

	size := s.SizeForInstance(sys, leaf, s.languageObject(src))
	if size == 0 {
		return nil, nil
	}

	base, ok := s.allocator.Allocate(sys, size, s.cfg.PointerAlignment)
	if !ok {
		return nil, nil
	}

	instance, err := s.clonePlacementInto(sys, base, leaf, chain, src)
	if instance == nil {
		s.allocator.Free(sys, base)
		return nil, err
	}
	return instance, nil
}

// ClonePlacement copies src into the caller-owned buffer buf (spec.md
// §4.3 clone_placement).
func (s *System) ClonePlacement(sys apis.System, buf unsafe.Pointer, src unsafe.Pointer) (unsafe.Pointer, error) {
	leaf := s.ownerOf(src)
	chain := chainRootToLeaf(leaf)
	return s.clonePlacementInto(sys, buf, leaf, chain, src)
}

func (s *System) clonePlacementInto(sys apis.System, buf unsafe.Pointer, leaf *descriptor, chain []*descriptor, src unsafe.Pointer) (unsafe.Pointer, error) {
	referenceChain(chain)

	srcObj := s.languageObject(src)
	instance, err := s.constructPlacementInto(sys, buf, leaf, chain, func(obj unsafe.Pointer) error {
		return leaf.iface.CopyConstruct(sys, obj, srcObj)
	})
	if instance == nil {
		dereferenceChain(chain)
		return nil, err
	}

	unlock := readLockChain(chain)
	languageSz := leaf.iface.SizeFromInstance(sys, s.languageObject(instance))
	dstBases := blockBases(instance, s.headerSize(), languageSz, chain)
	srcBases := blockBases(src, s.headerSize(), languageSz, chain)
	assigned := assignPluginChain(sys, chain, dstBases, srcBases)
	if !assigned {
		destroyPluginChain(sys, chain, dstBases)
		leaf.iface.Destruct(sys, s.languageObject(instance))
	}
	unlock()

	if !assigned {
		dereferenceChain(chain)
		return nil, nil
	}
	return instance, nil
}

// DestroyPlacement tears down the composite instance at buf in place:
// plugin blocks leaf first, then the language object (spec.md §4.3
// destroy_placement). A panic from any DestroyBlock or from the type
// interface's Destruct is a hard assertion and is not recovered.
func (s *System) DestroyPlacement(sys apis.System, buf unsafe.Pointer) {
	leaf := s.ownerOf(buf)
	chain := chainRootToLeaf(leaf)

	unlock := readLockChain(chain)
	obj := s.languageObject(buf)
	languageSz := leaf.iface.SizeFromInstance(sys, obj)
	bases := blockBases(buf, s.headerSize(), languageSz, chain)

	destroyPluginChain(sys, chain, bases)
	leaf.iface.Destruct(sys, obj)
	unlock()

	dereferenceChain(chain)
}

// Destroy tears down and frees the composite instance at buf (spec.md
// §4.3 destroy = destroy_placement + free).
func (s *System) Destroy(sys apis.System, buf unsafe.Pointer) {
	s.DestroyPlacement(sys, buf)
	s.allocator.Free(sys, buf)
}
