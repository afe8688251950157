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

package strategy

import (
	"unsafe"

	"dirpx.dev/dts/apis"
)

// DynamicMeta is the host-provided object that supplies sizes and
// construction behavior for a "dynamic struct" type (spec.md §4.1:
// "sizes come from a user-provided meta object"). Its own size is
// independent of any particular instance's params; only
// SizeFromParams/SizeFromInstance vary per instance.
type DynamicMeta interface {
	Construct(sys apis.System, mem unsafe.Pointer, params any) error
	CopyConstruct(sys apis.System, mem, src unsafe.Pointer) error
	Destruct(sys apis.System, mem unsafe.Pointer)
	SizeFromParams(sys apis.System, params any) uintptr
	SizeFromInstance(sys apis.System, obj unsafe.Pointer) uintptr
}

// NewDynamicStructInterface builds an apis.TypeInterface that delegates
// every call to meta. When owned is true, DTS takes ownership of meta:
// if meta also implements a Dispose() method, the returned
// apis.TypeInterface exposes it so DeleteType can release it; when
// owned is false, Dispose is a no-op and the caller remains responsible
// for meta's lifetime. This is the "ownership of that meta is
// parameterized" clause of spec.md §4.1.
func NewDynamicStructInterface(meta DynamicMeta, owned bool) apis.TypeInterface {
	return dynamicInterface{meta: meta, owned: owned}
}

type dynamicInterface struct {
	meta  DynamicMeta
	owned bool
}

func (d dynamicInterface) Construct(sys apis.System, mem unsafe.Pointer, params any) error {
	return d.meta.Construct(sys, mem, params)
}

func (d dynamicInterface) CopyConstruct(sys apis.System, mem, src unsafe.Pointer) error {
	return d.meta.CopyConstruct(sys, mem, src)
}

func (d dynamicInterface) Destruct(sys apis.System, mem unsafe.Pointer) {
	d.meta.Destruct(sys, mem)
}

func (d dynamicInterface) SizeFromParams(sys apis.System, params any) uintptr {
	return d.meta.SizeFromParams(sys, params)
}

func (d dynamicInterface) SizeFromInstance(sys apis.System, obj unsafe.Pointer) uintptr {
	return d.meta.SizeFromInstance(sys, obj)
}

// Dispose releases meta if DTS owns it and meta supports disposal.
// typesystem.DeleteType calls this after a descriptor is fully detached.
func (d dynamicInterface) Dispose() {
	if !d.owned {
		return
	}
	if disposer, ok := d.meta.(interface{ Dispose() }); ok {
		disposer.Dispose()
	}
}
