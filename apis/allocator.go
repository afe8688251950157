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

// System is the opaque host "system pointer" threaded through every
// construct/destruct/size/assign callback so host code can recover its own
// context. DTS never dereferences it.
type System = any

// Allocator is the byte-allocator contract a System is built with. ctx is
// the System itself, passed back to the host allocator unmodified.
//
// Allocate returns (nil, false) on allocation failure; callers MUST treat
// that as "no instance", not as a structured error (spec.md §7).
type Allocator interface {
	Allocate(ctx System, size, align uintptr) (unsafe.Pointer, bool)
	Resize(ctx System, ptr unsafe.Pointer, newSize uintptr) bool
	Free(ctx System, ptr unsafe.Pointer)
}
