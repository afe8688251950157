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

// Finder resolves a single registry lookup: the descriptor named name
// directly under parent. A nil parent means "a root descriptor, with no
// parent of its own". Finder is the minimal surface resolver.Chain needs
// from a type registry to walk a "::"-separated path.
type Finder interface {
	Find(name string, parent Descriptor) (Descriptor, bool)
}
