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

package typesystem

import "unsafe"

// ptrSize is the size of one machine word, the unit the RTTI header is
// built from (spec.md §3: "1 machine word (plus 1 debug word)").
const ptrSize = unsafe.Sizeof(uintptr(0))

// writeHeader stores d (and, if debugging, s) at the front of the
// composite allocation starting at base.
func (s *System) writeHeader(base unsafe.Pointer, d *descriptor) {
	*(*unsafe.Pointer)(base) = unsafe.Pointer(d)
	if s.cfg.DebugHeader {
		*(*unsafe.Pointer)(unsafe.Add(base, ptrSize)) = unsafe.Pointer(s)
	}
}

// headerDescriptor reads the descriptor pointer out of a composite's RTTI
// header without any ownership check.
func headerDescriptor(base unsafe.Pointer) *descriptor {
	return (*descriptor)(*(*unsafe.Pointer)(base))
}

// ownerOf reads the descriptor pointer out of base's RTTI header,
// asserting — when debug headers are enabled — that base was constructed
// by s. Mixing instances across type systems is the "header mismatch"
// hard assertion named in spec.md §7.
func (s *System) ownerOf(base unsafe.Pointer) *descriptor {
	d := headerDescriptor(base)
	if s.cfg.DebugHeader {
		owner := *(*unsafe.Pointer)(unsafe.Add(base, ptrSize))
		if owner != unsafe.Pointer(s) {
			panic("dts: instance belongs to a different type system")
		}
	}
	return d
}

// languageObject returns the address of the language object embedded in
// the composite starting at base.
func (s *System) languageObject(base unsafe.Pointer) unsafe.Pointer {
	return unsafe.Add(base, s.headerSize())
}

// headerSize returns the byte width of the RTTI header: one word
// normally, two when DebugHeader is set (spec.md §9 Design Notes: "a
// conditional field present only in debug builds").
func (s *System) headerSize() uintptr {
	if s.cfg.DebugHeader {
		return 2 * ptrSize
	}
	return ptrSize
}

func alignUp(n, align uintptr) uintptr {
	if align <= 1 {
		return n
	}
	return (n + align - 1) &^ (align - 1)
}
