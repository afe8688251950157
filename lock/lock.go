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

// Package lock provides the two apis.LockProvider implementations DTS
// ships with: a no-op default for single-threaded hosts, and a real
// sync.RWMutex-backed provider for multi-threaded ones.
package lock

import (
	"sync"

	"dirpx.dev/dts/apis"
)

// NewNoOp creates an apis.LockProvider whose locks are no-ops. This is
// the default a System uses when no provider is supplied. Under
// multi-threaded use with this provider, refcount mutation races are not
// guaranteed-safe by DTS (spec.md §9, Open Question 3) — a real provider
// must be installed to get correctness guarantees.
func NewNoOp() apis.LockProvider {
	return noopProvider{}
}

type noopProvider struct{}

func (noopProvider) Create() apis.Lock { return noopLock{} }
func (noopProvider) Close(apis.Lock)   {}

type noopLock struct{}

func (noopLock) EnterRead()  {}
func (noopLock) LeaveRead()  {}
func (noopLock) EnterWrite() {}
func (noopLock) LeaveWrite() {}

// NewRWMutex creates an apis.LockProvider backed by sync.RWMutex, for
// hosts that actually run DTS operations from more than one goroutine.
func NewRWMutex() apis.LockProvider {
	return rwMutexProvider{}
}

type rwMutexProvider struct{}

func (rwMutexProvider) Create() apis.Lock { return &rwMutexLock{} }
func (rwMutexProvider) Close(apis.Lock)   {}

type rwMutexLock struct {
	mu sync.RWMutex
}

func (l *rwMutexLock) EnterRead()  { l.mu.RLock() }
func (l *rwMutexLock) LeaveRead()  { l.mu.RUnlock() }
func (l *rwMutexLock) EnterWrite() { l.mu.Lock() }
func (l *rwMutexLock) LeaveWrite() { l.mu.Unlock() }
