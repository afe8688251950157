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

package strategy_test

import (
	"errors"
	"testing"
	"unsafe"

	"dirpx.dev/dts/apis"
	"dirpx.dev/dts/strategy"
)

type point struct{ X, Y int }

func TestStructInterface_ConstructAndCopy(t *testing.T) {
	iface := strategy.NewStructInterface[point]()

	buf := point{}
	if err := iface.Construct(nil, unsafe.Pointer(&buf), func(p *point) { p.X, p.Y = 1, 2 }); err != nil {
		t.Fatalf("Construct: %v", err)
	}
	if buf.X != 1 || buf.Y != 2 {
		t.Fatalf("buf = %+v, want {1 2}", buf)
	}

	var dst point
	if err := iface.CopyConstruct(nil, unsafe.Pointer(&dst), unsafe.Pointer(&buf)); err != nil {
		t.Fatalf("CopyConstruct: %v", err)
	}
	if dst != buf {
		t.Fatalf("dst = %+v, want %+v", dst, buf)
	}

	if got := iface.SizeFromParams(nil, nil); got != unsafe.Sizeof(point{}) {
		t.Fatalf("SizeFromParams = %d, want %d", got, unsafe.Sizeof(point{}))
	}
}

func TestAbstractInterface_RefusesConstruction(t *testing.T) {
	iface := strategy.NewAbstractInterface[point]("Construct")

	err := iface.Construct(nil, unsafe.Pointer(&point{}), nil)
	if !errors.Is(err, apis.ErrAbstractConstruction) {
		t.Fatalf("Construct error = %v, want ErrAbstractConstruction", err)
	}

	err = iface.CopyConstruct(nil, unsafe.Pointer(&point{}), unsafe.Pointer(&point{}))
	if !errors.Is(err, apis.ErrAbstractConstruction) {
		t.Fatalf("CopyConstruct error = %v, want ErrAbstractConstruction", err)
	}

	if got := iface.SizeFromParams(nil, nil); got != unsafe.Sizeof(point{}) {
		t.Fatalf("SizeFromParams = %d, want %d", got, unsafe.Sizeof(point{}))
	}
}

type fakeMeta struct {
	size      uintptr
	disposed  bool
	constructed bool
}

func (m *fakeMeta) Construct(apis.System, unsafe.Pointer, any) error {
	m.constructed = true
	return nil
}
func (m *fakeMeta) CopyConstruct(apis.System, unsafe.Pointer, unsafe.Pointer) error { return nil }
func (m *fakeMeta) Destruct(apis.System, unsafe.Pointer)                           {}
func (m *fakeMeta) SizeFromParams(apis.System, any) uintptr                        { return m.size }
func (m *fakeMeta) SizeFromInstance(apis.System, unsafe.Pointer) uintptr           { return m.size }
func (m *fakeMeta) Dispose()                                                       { m.disposed = true }

func TestDynamicStructInterface_DelegatesAndDisposesWhenOwned(t *testing.T) {
	meta := &fakeMeta{size: 24}
	iface := strategy.NewDynamicStructInterface(meta, true)

	if got := iface.SizeFromParams(nil, nil); got != 24 {
		t.Fatalf("SizeFromParams = %d, want 24", got)
	}
	if err := iface.Construct(nil, nil, nil); err != nil {
		t.Fatalf("Construct: %v", err)
	}
	if !meta.constructed {
		t.Fatal("meta.Construct was not called")
	}

	disposer, ok := iface.(interface{ Dispose() })
	if !ok {
		t.Fatal("owned dynamic interface does not expose Dispose")
	}
	disposer.Dispose()
	if !meta.disposed {
		t.Fatal("Dispose did not reach the owned meta")
	}
}

func TestDynamicStructInterface_DisposeNoOpWhenNotOwned(t *testing.T) {
	meta := &fakeMeta{size: 24}
	iface := strategy.NewDynamicStructInterface(meta, false)

	disposer, ok := iface.(interface{ Dispose() })
	if !ok {
		t.Fatal("missing Dispose method")
	}
	disposer.Dispose()
	if meta.disposed {
		t.Fatal("Dispose reached meta despite owned=false")
	}
}
