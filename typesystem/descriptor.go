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
	"strconv"
	"sync/atomic"

	"dirpx.dev/dts/apis"
)

// descriptor is the concrete node of the type graph (spec.md §3).
// parent, childCount, the plugin registry contents, and the list linkage
// are only mutated while holding descriptor.lock or the owning System's
// global lock. refCount is mutated with atomic operations and no lock;
// isAbstract and description are set by RegisterAbstractType and
// WithDescription without a lock.
type descriptor struct {
	name   string
	parent *descriptor

	childCount int32 // atomic; also guarded by parent's write lock on mutation
	refCount   int64 // atomic

	isExclusive bool
	isAbstract  bool

	iface   apis.TypeInterface
	plugins apis.PluginRegistry
	lock    apis.Lock

	// introspection metadata (package introspect).
	description string
	category    string
	version     uint64

	sys *System

	// intrusive list linkage, guarded by sys.globalLock.
	prev, next *descriptor
}

var _ apis.Descriptor = (*descriptor)(nil)

func (d *descriptor) Name() string { return d.name }

func (d *descriptor) Parent() (apis.Descriptor, bool) {
	if d.parent == nil {
		return nil, false
	}
	return d.parent, true
}

func (d *descriptor) ChildCount() int { return int(atomic.LoadInt32(&d.childCount)) }

func (d *descriptor) RefCount() int { return int(atomic.LoadInt64(&d.refCount)) }

func (d *descriptor) IsExclusive() bool { return d.isExclusive }

func (d *descriptor) IsAbstract() bool { return d.isAbstract }

// EntityName, EntityDescription, EntityCategory, and EntityVersion
// implement introspect.Describer.
func (d *descriptor) EntityName() string        { return d.name }
func (d *descriptor) EntityDescription() string { return d.description }
func (d *descriptor) EntityCategory() string    { return d.category }
func (d *descriptor) EntityVersion() string     { return strconv.FormatUint(d.version, 10) }

func (d *descriptor) reference() {
	atomic.AddInt64(&d.refCount, 1)
}

func (d *descriptor) dereference() {
	atomic.AddInt64(&d.refCount, -1)
}

// mustDescriptor asserts that pub was produced by this package — a
// caller passing a foreign apis.Descriptor implementation is a
// programming error, matching the "header mismatch" class of asserted
// invariant in spec.md §7.
func mustDescriptor(pub apis.Descriptor) *descriptor {
	if pub == nil {
		return nil
	}
	d, ok := pub.(*descriptor)
	if !ok {
		panic("dts: descriptor does not belong to this type system implementation")
	}
	return d
}

// chainRootToLeaf returns d's inheritance chain, root first, d last.
func chainRootToLeaf(d *descriptor) []*descriptor {
	if d == nil {
		return nil
	}
	n := 1
	for a := d.parent; a != nil; a = a.parent {
		n++
	}
	chain := make([]*descriptor, n)
	for a, i := d, n-1; a != nil; a, i = a.parent, i-1 {
		chain[i] = a
	}
	return chain
}

// isAncestorOf reports whether a appears in d's chain of ancestors
// (strictly, not counting d itself).
func isAncestorOf(a, d *descriptor) bool {
	for cur := d.parent; cur != nil; cur = cur.parent {
		if cur == a {
			return true
		}
	}
	return false
}
