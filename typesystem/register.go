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

import (
	"sync/atomic"
	"unsafe"

	"dirpx.dev/dts/apis"
	"dirpx.dev/dts/lock"
	"dirpx.dev/dts/pluginset"
	"dirpx.dev/dts/strategy"
)

var _ apis.Finder = (*System)(nil)

// findLocked scans the registered-type list for name under parent. The
// caller must already hold s.globalLock for reading or writing.
func (s *System) findLocked(name string, parent *descriptor) *descriptor {
	for cur := s.head; cur != nil; cur = cur.next {
		if cur.name == name && cur.parent == parent {
			return cur
		}
	}
	return nil
}

// Find implements apis.Finder and spec.md §4.1's find(name, parent?):
// direct-children-only, never transitive (see spec.md §9 Open Question
// 1, preserved as specified).
func (s *System) Find(name string, parent apis.Descriptor) (apis.Descriptor, bool) {
	parentDesc := mustDescriptor(parent)

	s.globalLock.EnterRead()
	defer s.globalLock.LeaveRead()

	d := s.findLocked(name, parentDesc)
	if d == nil {
		return nil, false
	}
	return d, true
}

// RegisterType registers a type named name with the given type interface
// under parent (nil for a root type). It fails with NameConflict if
// (name, parent) already names a descriptor.
func (s *System) RegisterType(name string, iface apis.TypeInterface, parent apis.Descriptor) (apis.Descriptor, error) {
	return s.registerType(name, iface, parent, "custom", "")
}

func (s *System) registerType(name string, iface apis.TypeInterface, parent apis.Descriptor, category, description string) (apis.Descriptor, error) {
	parentDesc := mustDescriptor(parent)

	s.globalLock.EnterWrite()
	defer s.globalLock.LeaveWrite()

	if parentDesc != nil {
		parentDesc.lock.EnterWrite()
		defer parentDesc.lock.LeaveWrite()
	}

	if s.findLocked(name, parentDesc) != nil {
		return nil, apis.NewError(apis.NameConflict, "RegisterType", name)
	}

	s.nextVersion++
	d := &descriptor{
		name:        name,
		parent:      parentDesc,
		iface:       iface,
		plugins:     pluginset.New(),
		lock:        s.lockProvider.Create(),
		sys:         s,
		category:    category,
		description: description,
		version:     s.nextVersion,
	}
	s.link(d)
	if parentDesc != nil {
		atomic.AddInt32(&parentDesc.childCount, 1)
	}
	return d, nil
}

// RegisterStructType registers a plain Go struct T as a language object:
// constant size, zero-value construct, structural copy, no-op destruct
// (spec.md §4.1 register_struct_type<T>).
func RegisterStructType[T any](s *System, name string, parent apis.Descriptor) (apis.Descriptor, error) {
	return s.registerType(name, strategy.NewStructInterface[T](), parent, "struct", "")
}

// RegisterDynamicStructType registers a type whose size and construction
// are driven by a caller-supplied strategy.DynamicMeta, optionally owned
// (disposed on DeleteType) by this System (spec.md §4.1
// register_dynamic_struct_type).
func (s *System) RegisterDynamicStructType(name string, meta strategy.DynamicMeta, owned bool, parent apis.Descriptor) (apis.Descriptor, error) {
	return s.registerType(name, strategy.NewDynamicStructInterface(meta, owned), parent, "dynamic", "")
}

// RegisterAbstractType registers T as abstract: Construct and
// CopyConstruct always fail with AbstractConstruction, but T may still
// be inherited from and sized as an ancestor (spec.md §4.1
// register_abstract_type<T>).
func RegisterAbstractType[T any](s *System, name string, parent apis.Descriptor) (apis.Descriptor, error) {
	desc, err := s.registerType(name, strategy.NewAbstractInterface[T]("Construct"), parent, "abstract", "")
	if err != nil {
		return nil, err
	}
	mustDescriptor(desc).isAbstract = true
	return desc, nil
}

// WithDescription attaches human-readable introspection metadata to a
// descriptor produced by one of the Register* functions. It is a
// convenience for callers that want introspect.Describe output beyond a
// bare name; it never fails and never touches locking or registry state.
func WithDescription(d apis.Descriptor, description string) {
	mustDescriptor(d).description = description
}

// SetParent re-roots subject under newParent (spec.md §4.1 set_parent).
// It panics — an asserted invariant, not a structured error — if subject
// is immutable (RefCount() > 0) or if newParent would create a cycle.
// It fails with NameConflict if newParent already has a child named
// subject.Name().
func (s *System) SetParent(subject apis.Descriptor, newParent apis.Descriptor) error {
	sub := mustDescriptor(subject)
	newP := mustDescriptor(newParent)

	s.globalLock.EnterWrite()
	defer s.globalLock.LeaveWrite()

	if sub.RefCount() > 0 {
		panic("dts: SetParent on an immutable (referenced) descriptor")
	}

	group := []*descriptor{sub}
	oldP := sub.parent
	if oldP != nil {
		group = append(group, oldP)
	}
	if newP != nil {
		group = append(group, newP)
	}

	addrs := make([]unsafe.Pointer, len(group))
	for i, g := range group {
		addrs[i] = unsafe.Pointer(g)
	}
	order := lock.ByAddress(addrs)
	for _, idx := range order {
		group[idx].lock.EnterWrite()
	}
	defer func() {
		for i := len(order) - 1; i >= 0; i-- {
			group[order[i]].lock.LeaveWrite()
		}
	}()

	if newP == sub || isAncestorOf(sub, newP) {
		panic("dts: SetParent would create a cycle")
	}

	if s.findLocked(sub.name, newP) != nil {
		return apis.NewError(apis.NameConflict, "SetParent", sub.name)
	}

	if oldP != nil {
		atomic.AddInt32(&oldP.childCount, -1)
	}
	sub.parent = newP
	if newP != nil {
		atomic.AddInt32(&newP.childCount, 1)
	}
	return nil
}

// DeleteType removes subject from the registry. The caller asserts that
// no live instance references subject or any of its descendants;
// subject's children, if any, are reparented to root (spec.md §4.1
// delete_type).
func (s *System) DeleteType(subject apis.Descriptor) {
	sub := mustDescriptor(subject)

	s.globalLock.EnterWrite()
	defer s.globalLock.LeaveWrite()

	group := []*descriptor{sub}
	if sub.parent != nil {
		group = append(group, sub.parent)
	}
	var children []*descriptor
	for cur := s.head; cur != nil; cur = cur.next {
		if cur.parent == sub {
			children = append(children, cur)
			group = append(group, cur)
		}
	}

	addrs := make([]unsafe.Pointer, len(group))
	for i, g := range group {
		addrs[i] = unsafe.Pointer(g)
	}
	order := lock.ByAddress(addrs)
	for _, idx := range order {
		group[idx].lock.EnterWrite()
	}
	defer func() {
		for i := len(order) - 1; i >= 0; i-- {
			group[order[i]].lock.LeaveWrite()
		}
	}()

	for _, c := range children {
		c.parent = nil
	}
	atomic.StoreInt32(&sub.childCount, 0)

	if sub.parent != nil {
		atomic.AddInt32(&sub.parent.childCount, -1)
	}

	s.unlink(sub)
	s.lockProvider.Close(sub.lock)
	if disposer, ok := sub.iface.(interface{ Dispose() }); ok {
		disposer.Dispose()
	}
}
