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

package apis

import "unsafe"

// AnonymousPluginID is the sentinel descriptor_token used when a caller
// registers a plugin without assigning it a stable id.
const AnonymousPluginID uint32 = 0xFFFFFFFF

// PluginInterface is the capability set a single registered plugin block
// supplies: how to construct it into a fresh instance, assign it during a
// clone, and tear it down.
type PluginInterface interface {
	// ConstructBlock builds the block in-place at obj. A false return
	// drives lifecycle rollback (spec.md §4.3); it is not a structured
	// error.
	ConstructBlock(sys System, obj unsafe.Pointer) bool

	// AssignBlock copies the block's state from src to dst during Clone.
	// A false return drives lifecycle rollback.
	AssignBlock(sys System, dst, src unsafe.Pointer) bool

	// DestroyBlock tears the block down in-place at obj. It must never
	// fail; a panic here is a hard assertion.
	DestroyBlock(sys System, obj unsafe.Pointer)
}

// PluginRegistry is the external, per-type container of packed extension
// blocks (spec.md §1: "out of scope... reused for both the per-type
// plugin set and external registries"). DTS supplies its own
// implementation (package pluginset) and consumes it only through this
// contract.
type PluginRegistry interface {
	// Register inserts a block of the given size and returns its
	// within-block offset. token carries a user-assigned id; the
	// sentinel AnonymousPluginID means "no stable id assigned".
	Register(size uintptr, token uint32, iface PluginInterface) uintptr

	// Unregister removes the block registered at offset.
	Unregister(offset uintptr)

	// RuntimeSize returns the total size of every block in this
	// registry; for this implementation it is independent of any
	// instance (spec.md §1 Non-goals: no conditional/variant sizing).
	RuntimeSize() uintptr

	// SizeForInstance returns the size this registry's blocks occupy for
	// a specific instance. Equal to RuntimeSize() for this implementation.
	SizeForInstance(obj unsafe.Pointer) uintptr

	// ResolveOffset returns the within-registry byte offset of the block
	// registered under token, and whether it was found.
	ResolveOffset(obj unsafe.Pointer, token uint32) (uintptr, bool)

	// ConstructBlock constructs every registered block, in registration
	// order, stopping and returning false at the first failure.
	ConstructBlock(sys System, obj unsafe.Pointer) bool

	// AssignBlock assigns every registered block from src to dst, in
	// registration order, stopping and returning false at the first
	// failure.
	AssignBlock(sys System, dst, src unsafe.Pointer) bool

	// DestroyBlock destroys every registered block, in reverse
	// registration order.
	DestroyBlock(sys System, obj unsafe.Pointer)
}
