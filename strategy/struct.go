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

// Package strategy supplies the three interchangeable apis.TypeInterface
// builders spec.md §4.1 names as registration convenience constructors:
// a plain Go struct with constant size, a dynamically-sized struct whose
// size comes from a host meta object, and an abstract type that refuses
// construction. Exactly one is selected per registered type, the same
// way the teacher's strategy package selects exactly one naming strategy
// per resolved value.
package strategy

import (
	"unsafe"

	"dirpx.dev/dts/apis"
)

// NewStructInterface builds an apis.TypeInterface for a type whose
// language object is the fixed-size Go struct T. Construct zero-values
// T in place; CopyConstruct copies T field-for-field; Destruct is a
// no-op (T owns no external resources by construction).
//
// params, if non-nil, must be a func(*T) that initializes the
// zero-valued T in place; a nil params leaves T at its zero value.
func NewStructInterface[T any]() apis.TypeInterface {
	return structInterface[T]{}
}

type structInterface[T any] struct{}

func (structInterface[T]) Construct(_ apis.System, mem unsafe.Pointer, params any) error {
	v := (*T)(mem)
	*v = *new(T)
	if init, ok := params.(func(*T)); ok && init != nil {
		init(v)
	}
	return nil
}

func (structInterface[T]) CopyConstruct(_ apis.System, mem, src unsafe.Pointer) error {
	*(*T)(mem) = *(*T)(src)
	return nil
}

func (structInterface[T]) Destruct(apis.System, unsafe.Pointer) {}

func (structInterface[T]) SizeFromParams(apis.System, any) uintptr {
	return unsafe.Sizeof(*new(T))
}

func (structInterface[T]) SizeFromInstance(apis.System, unsafe.Pointer) uintptr {
	return unsafe.Sizeof(*new(T))
}
