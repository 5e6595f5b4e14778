// File: pool/freelist.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Bounded FIFO free list. Fetch and release run on arbitrary caller
// threads, so the queue is mutex-guarded.

package pool

import (
	"sync"

	"github.com/eapache/queue"
)

type freeList struct {
	mu  sync.Mutex
	q   *queue.Queue
	cap int
}

func newFreeList(capacity int) *freeList {
	return &freeList{q: queue.New(), cap: capacity}
}

// put enqueues v; returns false when the list is full.
func (f *freeList) put(v any) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.q.Length() >= f.cap {
		return false
	}
	f.q.Add(v)
	return true
}

// get dequeues the oldest entry; ok is false when empty.
func (f *freeList) get() (any, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.q.Length() == 0 {
		return nil, false
	}
	return f.q.Remove(), true
}

func (f *freeList) length() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.q.Length()
}
