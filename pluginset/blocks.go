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
	"unsafe"

	"dirpx.dev/dts/apis"
)

// NewPlainBlock builds the apis.PluginInterface and size for a BlockKind
// = Plain registration: T is default-constructed (zero value) into
// every instance, copied field-for-field on Clone, and needs no teardown
// beyond being overwritten.
func NewPlainBlock[T any]() (size uintptr, iface apis.PluginInterface) {
	return unsafe.Sizeof(*new(T)), plainBlock[T]{}
}

type plainBlock[T any] struct{}

func (plainBlock[T]) ConstructBlock(_ apis.System, obj unsafe.Pointer) bool {
	*(*T)(obj) = *new(T)
	return true
}

func (plainBlock[T]) AssignBlock(_ apis.System, dst, src unsafe.Pointer) bool {
	*(*T)(dst) = *(*T)(src)
	return true
}

func (plainBlock[T]) DestroyBlock(apis.System, unsafe.Pointer) {}

// NewConditionalBlock builds the apis.PluginInterface and size for a
// BlockKind = Conditional registration: T is constructed only when
// present(sys) returns true at construction time; an extra byte tracks
// whether the block ended up present, so Clone and Destroy can skip a
// never-constructed T.
func NewConditionalBlock[T any](present func(sys apis.System) bool) (size uintptr, iface apis.PluginInterface) {
	return unsafe.Sizeof(*new(T)) + 1, conditionalBlock[T]{present: present}
}

type conditionalBlock[T any] struct {
	present func(sys apis.System) bool
}

func (c conditionalBlock[T]) flagAddr(obj unsafe.Pointer) *bool {
	return (*bool)(unsafe.Add(obj, unsafe.Sizeof(*new(T))))
}

func (c conditionalBlock[T]) ConstructBlock(sys apis.System, obj unsafe.Pointer) bool {
	ok := c.present != nil && c.present(sys)
	if ok {
		*(*T)(obj) = *new(T)
	}
	*c.flagAddr(obj) = ok
	return true
}

func (c conditionalBlock[T]) AssignBlock(_ apis.System, dst, src unsafe.Pointer) bool {
	present := *c.flagAddr(src)
	if present {
		*(*T)(dst) = *(*T)(src)
	}
	*c.flagAddr(dst) = present
	return true
}

func (c conditionalBlock[T]) DestroyBlock(apis.System, unsafe.Pointer) {}

// NewSizedBlock builds the apis.PluginInterface for a BlockKind = Sized
// registration: the caller supplies size directly (e.g. a host struct
// whose true size is queried once, out-of-band, rather than taken from
// Go's unsafe.Sizeof) along with raw construct/assign/destroy callbacks.
func NewSizedBlock(size uintptr, construct, assign func(sys apis.System, dst unsafe.Pointer, src unsafe.Pointer) bool, destroy func(sys apis.System, obj unsafe.Pointer)) (uintptr, apis.PluginInterface) {
	return size, sizedBlock{construct: construct, assign: assign, destroy: destroy}
}

type sizedBlock struct {
	construct func(sys apis.System, dst, src unsafe.Pointer) bool
	assign    func(sys apis.System, dst, src unsafe.Pointer) bool
	destroy   func(sys apis.System, obj unsafe.Pointer)
}

func (s sizedBlock) ConstructBlock(sys apis.System, obj unsafe.Pointer) bool {
	if s.construct == nil {
		return true
	}
	return s.construct(sys, obj, nil)
}

func (s sizedBlock) AssignBlock(sys apis.System, dst, src unsafe.Pointer) bool {
	if s.assign == nil {
		return true
	}
	return s.assign(sys, dst, src)
}

func (s sizedBlock) DestroyBlock(sys apis.System, obj unsafe.Pointer) {
	if s.destroy != nil {
		s.destroy(sys, obj)
	}
}

// NewCustomBlock wraps an already-built apis.PluginInterface for a
// BlockKind = Custom registration. If iface implements Disposer, the
// owning Registry calls Dispose() when the block is unregistered — DTS
// itself owns and disposes of this interface object, per spec.md §4.4.
func NewCustomBlock(size uintptr, iface apis.PluginInterface) (uintptr, apis.PluginInterface) {
	return size, iface
}
