// File: block/allocator.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Block allocator: policy layer turning raw-provider allocations into
// freshly owned mutable blocks with no prior range restriction.

package block

import "github.com/momentics/blockmem/api"

// Allocator wraps raw allocators into block factories. Either provider
// may be nil; requests for the missing kind are refused.
type Allocator struct {
	linear  api.LinearAllocator
	graphic api.GraphicAllocator
}

// NewAllocator creates a block allocator over the given providers.
func NewAllocator(linear api.LinearAllocator, graphic api.GraphicAllocator) *Allocator {
	return &Allocator{linear: linear, graphic: graphic}
}

// AllocateLinearBlock obtains a fresh writable linear block. Provider
// errors propagate unchanged.
func (a *Allocator) AllocateLinearBlock(capacity uint32, usage api.MemoryUsage) (*Linear, error) {
	if a.linear == nil {
		return nil, api.NewError(api.CodeRefused, "no linear provider")
	}
	al, err := a.linear.AllocateLinear(capacity, usage)
	if err != nil {
		return nil, err
	}
	return WrapLinear(al), nil
}

// AllocateGraphicBlock obtains a fresh writable graphic block.
func (a *Allocator) AllocateGraphicBlock(width, height uint32, format api.PixelFormat, usage api.MemoryUsage) (*Graphic, error) {
	if a.graphic == nil {
		return nil, api.NewError(api.CodeRefused, "no graphic provider")
	}
	ga, err := a.graphic.AllocateGraphic(width, height, format, usage)
	if err != nil {
		return nil, err
	}
	return WrapGraphic(ga), nil
}
