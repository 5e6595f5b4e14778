// File: alloc/linear.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Refcounted linear allocation with single-mapping discipline.

package alloc

import (
	"sync"
	"sync/atomic"

	"github.com/momentics/blockmem/api"
	"github.com/momentics/blockmem/internal/normalize"
)

type linearAllocation struct {
	owner *Allocator
	data  []byte
	usage api.MemoryUsage
	refs  atomic.Int32

	mu     sync.Mutex
	window []byte // active mapping, nil when unmapped
}

func (a *linearAllocation) Capacity() uint32       { return uint32(len(a.data)) }
func (a *linearAllocation) Usage() api.MemoryUsage { return a.usage }

func (a *linearAllocation) Map(offset, size uint32, usage api.MemoryUsage, fence api.Fence) ([]byte, error) {
	if err := normalize.CheckRange(offset, size, a.Capacity()); err != nil {
		return nil, err
	}
	if err := normalize.CheckUsage(a.usage, usage); err != nil {
		return nil, err
	}
	if err := waitFence(fence); err != nil {
		return nil, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.window != nil {
		return nil, api.NewError(api.CodeRefused, "allocation already mapped")
	}
	a.window = a.data[offset : offset+size : offset+size]
	return a.window, nil
}

func (a *linearAllocation) Unmap(data []byte, fence api.Fence) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.window == nil {
		return api.NewError(api.CodeBadValue, "no active mapping")
	}
	if len(data) == 0 || len(data) != len(a.window) || &data[0] != &a.window[0] {
		return api.NewError(api.CodeBadValue, "window does not match active mapping")
	}
	if err := waitFence(fence); err != nil {
		return err
	}
	a.window = nil
	return nil
}

func (a *linearAllocation) Retain() { a.refs.Add(1) }

func (a *linearAllocation) Release() {
	if a.refs.Add(-1) > 0 {
		return
	}
	a.mu.Lock()
	a.window = nil
	a.mu.Unlock()
	if hook := a.owner.cfg.OnReleaseLinear; hook != nil && hook(a) {
		return
	}
	a.owner.free(a.data)
}

// ReactivateLinear re-arms a recycled allocation with a single owner
// reference and no open mapping. It reports false for allocations that
// did not come from this package.
func ReactivateLinear(al api.LinearAllocation) bool {
	a, ok := al.(*linearAllocation)
	if !ok {
		return false
	}
	a.mu.Lock()
	a.window = nil
	a.mu.Unlock()
	a.refs.Store(1)
	return true
}
