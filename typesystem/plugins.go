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

// RegisterPlugin inserts a block of size bytes into T's plugin registry
// under T's write lock (spec.md §4.4 register_plugin). It panics — an
// asserted invariant — if T is immutable (RefCount() > 0).
func (s *System) RegisterPlugin(t apis.Descriptor, size uintptr, token uint32, iface apis.PluginInterface) uintptr {
	d := mustDescriptor(t)

	d.lock.EnterWrite()
	defer d.lock.LeaveWrite()

	if d.RefCount() > 0 {
		panic("dts: RegisterPlugin on an immutable (referenced) descriptor")
	}
	return d.plugins.Register(size, token, iface)
}

// UnregisterPlugin removes the block registered at offset from T's
// plugin registry (spec.md §4.4 unregister_plugin). It panics if T is
// immutable.
func (s *System) UnregisterPlugin(t apis.Descriptor, offset uintptr) {
	d := mustDescriptor(t)

	d.lock.EnterWrite()
	defer d.lock.LeaveWrite()

	if d.RefCount() > 0 {
		panic("dts: UnregisterPlugin on an immutable (referenced) descriptor")
	}
	d.plugins.Unregister(offset)
}
