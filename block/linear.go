// File: block/linear.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package block

import (
	"sync/atomic"

	"github.com/momentics/blockmem/api"
	"github.com/momentics/blockmem/internal/normalize"
)

// Linear is an exclusively owned, writable memory block of fixed
// capacity. The owner must not hold an open write mapping over a range
// while sharing that range; the model documents this precondition but
// cannot enforce it.
type Linear struct {
	alloc    api.LinearAllocation
	released atomic.Bool
}

// WrapLinear builds a block over an allocation, taking ownership of one
// reference. Used by block allocators and recycling pools.
func WrapLinear(alloc api.LinearAllocation) *Linear {
	return &Linear{alloc: alloc}
}

// Capacity returns the block capacity in bytes.
func (b *Linear) Capacity() uint32 { return b.alloc.Capacity() }

// Allocation exposes the backing allocation as the block's identity
// handle.
func (b *Linear) Allocation() api.LinearAllocation { return b.alloc }

// Map returns a deferred write mapping over the whole block (offset 0,
// size = capacity). Acquiring a second mapping before the first view is
// released is a double-mapping error.
func (b *Linear) Map() *Acquirable[*WriteView] {
	return newAcquirable(nil, func() (*WriteView, error) {
		data, err := b.alloc.Map(0, b.alloc.Capacity(), b.alloc.Usage(), nil)
		if err != nil {
			return &WriteView{errWindow(err)}, err
		}
		return &WriteView{window{alloc: b.alloc, base: data, size: uint32(len(data))}}, nil
	})
}

// Share produces an immutable handle over [offset, offset+size) of the
// same backing allocation. The fence is the token a reader must wait on
// before trusting the content. The block stays valid and writable.
func (b *Linear) Share(offset, size uint32, fence api.Fence) (*ConstLinear, error) {
	if err := normalize.CheckRange(offset, size, b.Capacity()); err != nil {
		return nil, err
	}
	b.alloc.Retain()
	return &ConstLinear{alloc: b.alloc, offset: offset, size: size, fence: fence}, nil
}

// Release drops the block's reference on the backing allocation.
// Idempotent.
func (b *Linear) Release() {
	if b.released.CompareAndSwap(false, true) {
		b.alloc.Release()
	}
}

// ConstLinear is an immutable, shareable, range-bounded handle derived
// from a Linear block. Multiple const blocks may alias overlapping
// ranges of the same allocation.
type ConstLinear struct {
	alloc    api.LinearAllocation
	offset   uint32
	size     uint32
	fence    api.Fence
	released atomic.Bool
}

// Offset returns the shared range start within the allocation.
func (c *ConstLinear) Offset() uint32 { return c.offset }

// Size returns the shared range length.
func (c *ConstLinear) Size() uint32 { return c.size }

// Fence returns the producer's synchronization token.
func (c *ConstLinear) Fence() api.Fence { return c.fence }

// Allocation exposes the backing allocation as the handle identity.
func (c *ConstLinear) Allocation() api.LinearAllocation { return c.alloc }

// Dup creates an independently owned handle over the same range.
func (c *ConstLinear) Dup() *ConstLinear {
	c.alloc.Retain()
	return &ConstLinear{alloc: c.alloc, offset: c.offset, size: c.size, fence: c.fence}
}

// Map returns a deferred read mapping bounded exactly to the shared
// range: the view capacity equals the shared size, not the original
// block capacity. Acquire waits on the share fence first.
func (c *ConstLinear) Map() *Acquirable[*ReadView] {
	return newAcquirable(c.fence, func() (*ReadView, error) {
		data, err := c.alloc.Map(c.offset, c.size, api.UsageSoftwareRead, nil)
		if err != nil {
			return &ReadView{errWindow(err)}, err
		}
		return &ReadView{window{alloc: c.alloc, base: data, size: uint32(len(data))}}, nil
	})
}

// Release drops this handle's reference on the allocation. Idempotent.
func (c *ConstLinear) Release() {
	if c.released.CompareAndSwap(false, true) {
		c.alloc.Release()
	}
}
