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

package lock

import (
	"sort"
	"unsafe"
)

// ByAddress returns the indices of addrs in ascending address order, with
// duplicate addresses collapsed to their first occurrence. Callers use
// this to acquire a fixed set of per-descriptor write locks in the
// address-ascending order spec.md §5 requires (deadlock-free ordering
// rule 2), e.g. for SetParent's subject/old-parent/new-parent triple.
func ByAddress(addrs []unsafe.Pointer) []int {
	order := make([]int, len(addrs))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return uintptr(addrs[order[i]]) < uintptr(addrs[order[j]])
	})

	seen := make(map[unsafe.Pointer]bool, len(addrs))
	dedup := order[:0:0]
	for _, idx := range order {
		a := addrs[idx]
		if a == nil || seen[a] {
			continue
		}
		seen[a] = true
		dedup = append(dedup, idx)
	}
	return dedup
}
