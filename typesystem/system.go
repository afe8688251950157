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

// Package typesystem implements the dynamic type registry, composite
// layout engine, and lifecycle engine (spec.md §§3–5). A *System is a
// self-contained instance: there is no process-wide registry, unlike the
// teacher's package-level global state — each System owns its own
// descriptors, its own global lock, and its own allocator.
package typesystem

import (
	"sync/atomic"

	"dirpx.dev/dts/apis"
)

// System is one independent type registry plus the composite allocator
// bound to it. The zero value is not usable; construct with New.
type System struct {
	cfg          apis.Config
	allocator    apis.Allocator
	lockProvider apis.LockProvider
	globalLock   apis.Lock

	head, tail  *descriptor
	count       int
	nextVersion uint64
}

// New builds a System from its three external collaborators (spec.md
// §6): an allocator, a lock provider, and a resolved Config. Typically
// called by builder.New rather than directly.
func New(allocator apis.Allocator, lockProvider apis.LockProvider, cfg apis.Config) *System {
	return &System{
		cfg:          cfg,
		allocator:    allocator,
		lockProvider: lockProvider,
		globalLock:   lockProvider.Create(),
	}
}

// Config returns the System's resolved configuration.
func (s *System) Config() apis.Config { return s.cfg }

// Len reports the number of currently registered descriptors.
func (s *System) Len() int {
	s.globalLock.EnterRead()
	defer s.globalLock.LeaveRead()
	return s.count
}

func (s *System) link(d *descriptor) {
	d.prev, d.next = s.tail, nil
	if s.tail != nil {
		s.tail.next = d
	} else {
		s.head = d
	}
	s.tail = d
	s.count++
}

func (s *System) unlink(d *descriptor) {
	if d.prev != nil {
		d.prev.next = d.next
	} else {
		s.head = d.next
	}
	if d.next != nil {
		d.next.prev = d.prev
	} else {
		s.tail = d.prev
	}
	d.prev, d.next = nil, nil
	s.count--
}

// Close tears the System down: every remaining descriptor is deleted,
// deepest descriptors first — a descriptor is removed only once all of
// its children have been removed, so no child is left pointing at a
// removed parent (spec.md §5 resource policy). Close does not check for
// live instances and does not dispose type interfaces; it is a hard
// shutdown, not the cooperative DeleteType path.
func (s *System) Close() {
	s.globalLock.EnterWrite()
	var leaves []*descriptor
	for cur := s.head; cur != nil; cur = cur.next {
		if cur.ChildCount() == 0 {
			leaves = append(leaves, cur)
		}
	}
	s.globalLock.LeaveWrite()

	for len(leaves) > 0 {
		next := leaves[0]
		leaves = leaves[1:]

		s.globalLock.EnterWrite()
		parent := next.parent
		s.unlink(next)
		if parent != nil {
			atomic.AddInt32(&parent.childCount, -1)
		}
		s.lockProvider.Close(next.lock)
		s.globalLock.LeaveWrite()

		if parent != nil && parent.ChildCount() == 0 {
			leaves = append(leaves, parent)
		}
	}

	s.lockProvider.Close(s.globalLock)
}
