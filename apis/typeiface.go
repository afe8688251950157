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

// TypeInterface is the capability set a registered type supplies for its
// language object: how to build it, copy it, tear it down, and size it.
// It is immutable once attached to a descriptor (spec.md §6).
//
// Sizes are immutable per instance: once SizeFromParams or
// SizeFromInstance has returned a value for a given instance, that value
// must never change for the lifetime of the instance.
type TypeInterface interface {
	// Construct builds the language object in-place at mem, using params
	// supplied by the caller of Construct/ConstructPlacement.
	Construct(sys System, mem unsafe.Pointer, params any) error

	// CopyConstruct builds the language object in-place at mem by copying
	// src. Types that do not support copying return ErrUndefinedMethod.
	CopyConstruct(sys System, mem, src unsafe.Pointer) error

	// Destruct tears down the language object at mem. It must never fail;
	// a panic here is a hard assertion (spec.md §4.3, §7).
	Destruct(sys System, mem unsafe.Pointer)

	// SizeFromParams returns the size of the language object that would be
	// constructed from params, without constructing it.
	SizeFromParams(sys System, params any) uintptr

	// SizeFromInstance returns the size of the language object already
	// constructed at obj.
	SizeFromInstance(sys System, obj unsafe.Pointer) uintptr
}
