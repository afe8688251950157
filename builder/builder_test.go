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

package builder_test

import (
	"testing"
	"unsafe"

	"dirpx.dev/dts/apis"
	"dirpx.dev/dts/builder"
	"dirpx.dev/dts/config"
	"dirpx.dev/dts/lock"
	"dirpx.dev/dts/typesystem"
)

func TestNew_DefaultsAreUsable(t *testing.T) {
	sys := builder.New()
	if sys == nil {
		t.Fatal("New returned nil")
	}
	if sys.Config().PathSeparator != config.DefaultPathSeparator {
		t.Fatalf("PathSeparator = %q, want default", sys.Config().PathSeparator)
	}

	desc, err := typesystem.RegisterStructType[int](sys, "Int", nil)
	if err != nil {
		t.Fatalf("RegisterStructType: %v", err)
	}
	if desc.Name() != "Int" {
		t.Fatalf("Name = %q, want Int", desc.Name())
	}
}

type countingAllocator struct {
	allocs int
}

func (c *countingAllocator) Allocate(_ any, size, _ uintptr) (unsafe.Pointer, bool) {
	c.allocs++
	buf := make([]byte, size)
	return unsafe.Pointer(&buf[0]), true
}
func (c *countingAllocator) Resize(any, unsafe.Pointer, uintptr) bool { return false }
func (c *countingAllocator) Free(any, unsafe.Pointer)                 {}

func TestNew_WithAllocator_OverridesDefault(t *testing.T) {
	alloc := &countingAllocator{}
	sys := builder.New(builder.WithAllocator(alloc))

	desc, err := typesystem.RegisterStructType[int](sys, "Int", nil)
	if err != nil {
		t.Fatalf("RegisterStructType: %v", err)
	}
	if _, err := sys.Construct(nil, desc, nil); err != nil {
		t.Fatalf("Construct: %v", err)
	}
	if alloc.allocs != 1 {
		t.Fatalf("allocs = %d, want 1", alloc.allocs)
	}
}

func TestNew_WithLockProvider_OverridesDefault(t *testing.T) {
	sys := builder.New(builder.WithLockProvider(lock.NewRWMutex()))
	if sys == nil {
		t.Fatal("New returned nil")
	}
	// Exercising a real lock provider end to end: register two types
	// concurrently and expect both to land without corruption.
	done := make(chan apis.Descriptor, 2)
	go func() {
		d, _ := typesystem.RegisterStructType[int](sys, "A", nil)
		done <- d
	}()
	go func() {
		d, _ := typesystem.RegisterStructType[int](sys, "B", nil)
		done <- d
	}()
	<-done
	<-done
	if sys.Len() != 2 {
		t.Fatalf("Len = %d, want 2", sys.Len())
	}
}

func TestNew_WithConfig_AppliesOptions(t *testing.T) {
	sys := builder.New(builder.WithConfig(config.WithPathSeparator("/")))
	if sys.Config().PathSeparator != "/" {
		t.Fatalf("PathSeparator = %q, want /", sys.Config().PathSeparator)
	}
}
