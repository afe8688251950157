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

package typesystem_test

import (
	"unsafe"

	"dirpx.dev/dts/apis"
	"dirpx.dev/dts/config"
	"dirpx.dev/dts/lock"
	"dirpx.dev/dts/typesystem"
)

// newSystem builds a *typesystem.System directly on the heap allocator
// and the lock provider given, bypassing package builder (which itself
// depends on typesystem) so these tests have no import-cycle exposure.
func newSystem(lp apis.LockProvider, opts ...config.Option) *typesystem.System {
	if lp == nil {
		lp = lock.NewNoOp()
	}
	return typesystem.New(heapAllocator{}, lp, config.NewConfig(opts...))
}

type heapAllocator struct{}

func (heapAllocator) Allocate(_ any, size, _ uintptr) (unsafe.Pointer, bool) {
	if size == 0 {
		return nil, false
	}
	buf := make([]byte, size)
	return unsafe.Pointer(&buf[0]), true
}
func (heapAllocator) Resize(any, unsafe.Pointer, uintptr) bool { return false }
func (heapAllocator) Free(any, unsafe.Pointer)                 {}

// fakeIface is a fully-controllable apis.TypeInterface for exercising
// construction, copy, and size paths without a concrete Go struct.
type fakeIface struct {
	size          uintptr
	construct     func(sys apis.System, mem unsafe.Pointer, params any) error
	copyConstruct func(sys apis.System, mem, src unsafe.Pointer) error
	destruct      func(sys apis.System, mem unsafe.Pointer)
}

func (f fakeIface) Construct(sys apis.System, mem unsafe.Pointer, params any) error {
	if f.construct != nil {
		return f.construct(sys, mem, params)
	}
	return nil
}

func (f fakeIface) CopyConstruct(sys apis.System, mem, src unsafe.Pointer) error {
	if f.copyConstruct != nil {
		return f.copyConstruct(sys, mem, src)
	}
	return apis.NewError(apis.UndefinedMethod, "CopyConstruct", "")
}

func (f fakeIface) Destruct(sys apis.System, mem unsafe.Pointer) {
	if f.destruct != nil {
		f.destruct(sys, mem)
	}
}

func (f fakeIface) SizeFromParams(apis.System, any) uintptr        { return f.size }
func (f fakeIface) SizeFromInstance(apis.System, unsafe.Pointer) uintptr { return f.size }

// boolPlugin is an apis.PluginInterface whose construct/assign outcomes
// are fixed at construction time, for driving rollback scenarios.
type boolPlugin struct {
	size                          uintptr
	constructOK, assignOK         bool
	constructs, destroys, assigns *int
}

func (p boolPlugin) ConstructBlock(apis.System, unsafe.Pointer) bool {
	if p.constructs != nil {
		*p.constructs++
	}
	return p.constructOK
}

func (p boolPlugin) AssignBlock(apis.System, unsafe.Pointer, unsafe.Pointer) bool {
	if p.assigns != nil {
		*p.assigns++
	}
	return p.assignOK
}

func (p boolPlugin) DestroyBlock(apis.System, unsafe.Pointer) {
	if p.destroys != nil {
		*p.destroys++
	}
}
