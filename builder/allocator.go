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

package builder

import "unsafe"

// DefaultAllocator returns an apis.Allocator backed by the Go heap. It is
// installed by New when the caller does not supply one (spec.md §6 names
// the allocator an external collaborator; this is the in-process
// stand-in for hosts that have no allocator of their own to plug in).
//
// Resize is unsupported: DTS never calls it (only Allocate and Free are
// used by the lifecycle engine in spec.md §4.3), so Resize always
// returns false.
func DefaultAllocator() heapAllocator { return heapAllocator{} }

type heapAllocator struct{}

func (heapAllocator) Allocate(_ any, size, _ uintptr) (unsafe.Pointer, bool) {
	if size == 0 {
		return nil, false
	}
	buf := make([]byte, size)
	return unsafe.Pointer(&buf[0]), true
}

func (heapAllocator) Resize(any, unsafe.Pointer, uintptr) bool { return false }

func (heapAllocator) Free(any, unsafe.Pointer) {}
