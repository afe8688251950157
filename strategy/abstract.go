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

// NewAbstractInterface builds an apis.TypeInterface whose Construct and
// CopyConstruct unconditionally fail with apis.AbstractConstruction
// (spec.md §4.1: "register_abstract_type<T>"). SizeFromParams and
// SizeFromInstance still report T's size, so an abstract type can still
// be inherited from and sized correctly as an ancestor in a composite
// layout; only direct construction of the abstract type itself is
// refused.
func NewAbstractInterface[T any](op string) apis.TypeInterface {
	return abstractInterface[T]{op: op}
}

type abstractInterface[T any] struct {
	op string
}

func (a abstractInterface[T]) Construct(apis.System, unsafe.Pointer, any) error {
	return apis.NewError(apis.AbstractConstruction, a.op, "")
}

func (a abstractInterface[T]) CopyConstruct(apis.System, unsafe.Pointer, unsafe.Pointer) error {
	return apis.NewError(apis.AbstractConstruction, a.op, "")
}

func (abstractInterface[T]) Destruct(apis.System, unsafe.Pointer) {}

func (abstractInterface[T]) SizeFromParams(apis.System, any) uintptr {
	return unsafe.Sizeof(*new(T))
}

func (abstractInterface[T]) SizeFromInstance(apis.System, unsafe.Pointer) uintptr {
	return unsafe.Sizeof(*new(T))
}
