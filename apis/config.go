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

// Config carries read-only knobs that influence how a System lays out and
// resolves composite instances. It is passed by value and should be
// treated as immutable by implementations.
type Config struct {
	// PathSeparator is the type-path token separator, e.g. "::". The
	// System itself does not read it; resolver.New takes the separator as
	// an argument.
	PathSeparator string

	// PointerAlignment is the byte alignment every composite allocation is
	// rounded up to. Must be a power of two.
	PointerAlignment uintptr

	// DebugHeader controls whether every RTTI header carries the extra
	// debug back-pointer to its owning System (spec.md §9, Design Notes).
	DebugHeader bool
}
