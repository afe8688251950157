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

import "dirpx.dev/dts/apis"

// Iter is a snapshot view of a System's registered descriptors. It holds
// the System's global read lock for its entire lifetime (spec.md §4.1
// iter(): "acquires the global read lock for the iterator's lifetime and
// walks the intrusive list"); callers must call Close when done.
type Iter struct {
	sys  *System
	next *descriptor
}

// Iter opens a snapshot iterator over s's currently registered
// descriptors, in registration order.
func (s *System) Iter() *Iter {
	s.globalLock.EnterRead()
	return &Iter{sys: s, next: s.head}
}

// Next returns the next descriptor and advances the iterator, or returns
// (nil, false) once the walk is exhausted.
func (it *Iter) Next() (apis.Descriptor, bool) {
	if it.next == nil {
		return nil, false
	}
	d := it.next
	it.next = it.next.next
	return d, true
}

// Close releases the global read lock held since Iter was opened.
// Calling Close more than once is a programming error.
func (it *Iter) Close() {
	it.sys.globalLock.LeaveRead()
}
