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

package lock_test

import (
	"runtime"
	"sync"
	"testing"
	"unsafe"

	"dirpx.dev/dts/lock"
)

func TestNoOp_NeverBlocks(t *testing.T) {
	p := lock.NewNoOp()
	l := p.Create()
	l.EnterWrite()
	l.EnterRead() // would deadlock on a real RWMutex; must not here.
	l.LeaveRead()
	l.LeaveWrite()
	p.Close(l)
}

func TestRWMutex_ConcurrentReaders(t *testing.T) {
	p := lock.NewRWMutex()
	l := p.Create()

	var counter int
	var mu sync.Mutex
	wg := sync.WaitGroup{}
	workers := runtime.GOMAXPROCS(0) * 4

	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				l.EnterRead()
				mu.Lock()
				counter++
				mu.Unlock()
				l.LeaveRead()
			}
		}()
	}
	wg.Wait()

	if counter != workers*1000 {
		t.Fatalf("counter = %d, want %d", counter, workers*1000)
	}
	p.Close(l)
}

func TestRWMutex_WriteExcludesRead(t *testing.T) {
	p := lock.NewRWMutex()
	l := p.Create()

	l.EnterWrite()
	done := make(chan struct{})
	go func() {
		l.EnterRead()
		close(done)
		l.LeaveRead()
	}()

	select {
	case <-done:
		t.Fatal("reader entered while writer held the lock")
	default:
	}
	l.LeaveWrite()
	<-done
}

func TestByAddress_SortsAscendingAndDedups(t *testing.T) {
	a, b, c := 1, 2, 3
	pa, pb, pc := unsafe.Pointer(&a), unsafe.Pointer(&b), unsafe.Pointer(&c)

	addrs := []unsafe.Pointer{pc, pa, pb, pa}
	order := lock.ByAddress(addrs)

	if len(order) != 3 {
		t.Fatalf("len(order) = %d, want 3 (duplicate collapsed)", len(order))
	}
	for i := 1; i < len(order); i++ {
		if uintptr(addrs[order[i-1]]) >= uintptr(addrs[order[i]]) {
			t.Fatalf("order not strictly ascending at %d", i)
		}
	}
}

func TestByAddress_SkipsNil(t *testing.T) {
	a := 1
	order := lock.ByAddress([]unsafe.Pointer{nil, unsafe.Pointer(&a), nil})
	if len(order) != 1 {
		t.Fatalf("len(order) = %d, want 1", len(order))
	}
}
