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

// Package pluginset implements the "plugin registry" container DTS's
// spec leaves out of scope as an external collaborator (spec.md §1).
// Every registered type carries exactly one *Registry, packing its own
// extension blocks densely, in registration order.
package pluginset

import (
	"sync"
	"sync/atomic"
	"unsafe"

	"dirpx.dev/dts/apis"
)

// Disposer is implemented by a custom plugin's apis.PluginInterface when
// DTS itself owns that interface object and must dispose of it on
// Unregister (spec.md §4.4).
type Disposer interface {
	Dispose()
}

type block struct {
	offset uintptr
	size   uintptr
	token  uint32
	iface  apis.PluginInterface
}

type snapshot struct {
	blocks []block
	total  uintptr
}

// Registry is DTS's implementation of apis.PluginRegistry: a dense,
// append-ordered packer of fixed-size extension blocks.
//
// Reads (RuntimeSize, SizeForInstance, ResolveOffset, ConstructBlock,
// AssignBlock, DestroyBlock) never take the write mutex; they load an
// immutable snapshot published atomically by Register/Unregister, the
// same "build fully, publish atomically" discipline the teacher's
// rfx.go state swap uses.
type Registry struct {
	mu   sync.Mutex
	snap atomic.Pointer[snapshot]
}

// New returns an empty Registry.
func New() *Registry {
	r := &Registry{}
	r.snap.Store(&snapshot{})
	return r
}

var _ apis.PluginRegistry = (*Registry)(nil)

// Register inserts a block of size bytes at the end of the packed
// region and returns its within-registry offset.
func (r *Registry) Register(size uintptr, token uint32, iface apis.PluginInterface) uintptr {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur := r.snap.Load()
	offset := cur.total

	blocks := make([]block, len(cur.blocks), len(cur.blocks)+1)
	copy(blocks, cur.blocks)
	blocks = append(blocks, block{offset: offset, size: size, token: token, iface: iface})

	r.snap.Store(&snapshot{blocks: blocks, total: cur.total + size})
	return offset
}

// Unregister removes the block registered at offset, repacking every
// later block so the region stays contiguous. If the removed block's
// interface implements Disposer, its Dispose method is called after it
// is no longer reachable from the registry.
func (r *Registry) Unregister(offset uintptr) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur := r.snap.Load()
	blocks := make([]block, 0, len(cur.blocks))
	var removed apis.PluginInterface
	var total uintptr
	for _, b := range cur.blocks {
		if b.offset == offset {
			removed = b.iface
			continue
		}
		blocks = append(blocks, block{offset: total, size: b.size, token: b.token, iface: b.iface})
		total += b.size
	}
	r.snap.Store(&snapshot{blocks: blocks, total: total})

	if d, ok := removed.(Disposer); ok {
		d.Dispose()
	}
}

// RuntimeSize returns the total packed size of every registered block.
func (r *Registry) RuntimeSize() uintptr {
	return r.snap.Load().total
}

// SizeForInstance returns the same value as RuntimeSize: block sizes are
// independent of the instance by design (spec.md §1 Non-goals).
func (r *Registry) SizeForInstance(unsafe.Pointer) uintptr {
	return r.RuntimeSize()
}

// ResolveOffset returns the within-registry offset of the block
// registered under token.
func (r *Registry) ResolveOffset(_ unsafe.Pointer, token uint32) (uintptr, bool) {
	for _, b := range r.snap.Load().blocks {
		if b.token == token {
			return b.offset, true
		}
	}
	return 0, false
}

// ConstructBlock constructs every registered block, in registration
// order, at obj+offset. If any block fails, every block already
// constructed during this call is torn down (in reverse order) before
// ConstructBlock returns false, so a caller sees an all-or-nothing
// result for this registry.
func (r *Registry) ConstructBlock(sys apis.System, obj unsafe.Pointer) bool {
	blocks := r.snap.Load().blocks
	for i, b := range blocks {
		addr := unsafe.Add(obj, b.offset)
		if !b.iface.ConstructBlock(sys, addr) {
			for j := i - 1; j >= 0; j-- {
				blocks[j].iface.DestroyBlock(sys, unsafe.Add(obj, blocks[j].offset))
			}
			return false
		}
	}
	return true
}

// AssignBlock assigns every registered block from src to dst, in
// registration order, stopping at the first failure.
func (r *Registry) AssignBlock(sys apis.System, dst, src unsafe.Pointer) bool {
	for _, b := range r.snap.Load().blocks {
		if !b.iface.AssignBlock(sys, unsafe.Add(dst, b.offset), unsafe.Add(src, b.offset)) {
			return false
		}
	}
	return true
}

// DestroyBlock destroys every registered block, in reverse registration
// order. It never fails; a panicking block destructor is a hard
// assertion and propagates unmodified.
func (r *Registry) DestroyBlock(sys apis.System, obj unsafe.Pointer) {
	blocks := r.snap.Load().blocks
	for i := len(blocks) - 1; i >= 0; i-- {
		b := blocks[i]
		b.iface.DestroyBlock(sys, unsafe.Add(obj, b.offset))
	}
}
