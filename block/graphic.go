// File: block/graphic.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package block

import (
	"sync/atomic"

	"github.com/momentics/blockmem/api"
	"github.com/momentics/blockmem/internal/normalize"
)

// Graphic is an exclusively owned, writable two-dimensional block.
type Graphic struct {
	alloc    api.GraphicAllocation
	released atomic.Bool
}

// WrapGraphic builds a block over a graphic allocation, taking ownership
// of one reference.
func WrapGraphic(alloc api.GraphicAllocation) *Graphic {
	return &Graphic{alloc: alloc}
}

func (b *Graphic) Width() uint32           { return b.alloc.Width() }
func (b *Graphic) Height() uint32          { return b.alloc.Height() }
func (b *Graphic) Format() api.PixelFormat { return b.alloc.Format() }

// Allocation exposes the backing allocation as the block's identity
// handle.
func (b *Graphic) Allocation() api.GraphicAllocation { return b.alloc }

// Map returns a deferred write mapping over the full frame.
func (b *Graphic) Map() *Acquirable[*GraphicView] {
	crop := api.Rect{Width: b.Width(), Height: b.Height()}
	return newAcquirable(nil, func() (*GraphicView, error) {
		planes, layout, err := b.alloc.Map(crop, b.alloc.Usage(), nil)
		if err != nil {
			return &GraphicView{err: err}, err
		}
		return &GraphicView{alloc: b.alloc, planes: planes, layout: layout, crop: crop}, nil
	})
}

// Share produces an immutable handle restricted to the crop rect.
func (b *Graphic) Share(crop api.Rect, fence api.Fence) (*ConstGraphic, error) {
	if err := normalize.CheckRect(crop, b.Width(), b.Height()); err != nil {
		return nil, err
	}
	b.alloc.Retain()
	return &ConstGraphic{alloc: b.alloc, crop: crop, fence: fence}, nil
}

// Release drops the block's reference on the backing allocation.
// Idempotent.
func (b *Graphic) Release() {
	if b.released.CompareAndSwap(false, true) {
		b.alloc.Release()
	}
}

// ConstGraphic is an immutable, shareable, crop-bounded handle derived
// from a Graphic block.
type ConstGraphic struct {
	alloc    api.GraphicAllocation
	crop     api.Rect
	fence    api.Fence
	released atomic.Bool
}

// Crop returns the shared crop rect.
func (c *ConstGraphic) Crop() api.Rect { return c.crop }

// Width returns the crop width.
func (c *ConstGraphic) Width() uint32 { return c.crop.Width }

// Height returns the crop height.
func (c *ConstGraphic) Height() uint32 { return c.crop.Height }

// Fence returns the producer's synchronization token.
func (c *ConstGraphic) Fence() api.Fence { return c.fence }

// Allocation exposes the backing allocation as the handle identity.
func (c *ConstGraphic) Allocation() api.GraphicAllocation { return c.alloc }

// Dup creates an independently owned handle over the same crop.
func (c *ConstGraphic) Dup() *ConstGraphic {
	c.alloc.Retain()
	return &ConstGraphic{alloc: c.alloc, crop: c.crop, fence: c.fence}
}

// Map returns a deferred read-only mapping bounded to the shared crop.
// Acquire waits on the share fence first. The returned view's plane
// bytes must not be modified.
func (c *ConstGraphic) Map() *Acquirable[*GraphicView] {
	return newAcquirable(c.fence, func() (*GraphicView, error) {
		planes, layout, err := c.alloc.Map(c.crop, api.UsageSoftwareRead, nil)
		if err != nil {
			return &GraphicView{err: err}, err
		}
		return &GraphicView{alloc: c.alloc, planes: planes, layout: layout, crop: c.crop}, nil
	})
}

// Release drops this handle's reference on the allocation. Idempotent.
func (c *ConstGraphic) Release() {
	if c.released.CompareAndSwap(false, true) {
		c.alloc.Release()
	}
}

// GraphicView is a bounds-checked accessor over mapped planar memory.
// The byte address of sample (col, row) in plane p is
// Data()[p][layout.Planes[p].SampleOffset(col, row, Crop())].
type GraphicView struct {
	alloc  api.GraphicAllocation
	planes [][]byte
	layout api.PlaneLayout
	crop   api.Rect
	err    error
}

// Err returns the view error, nil for a usable view.
func (v *GraphicView) Err() error { return v.err }

// Width returns the crop width in luma samples.
func (v *GraphicView) Width() uint32 { return v.crop.Width }

// Height returns the crop height in luma samples.
func (v *GraphicView) Height() uint32 { return v.crop.Height }

// Crop returns the rect this view addresses.
func (v *GraphicView) Crop() api.Rect { return v.crop }

// Layout returns the plane layout of the mapped frame.
func (v *GraphicView) Layout() api.PlaneLayout { return v.layout }

// Data returns one byte window per plane, each starting at the plane
// base. Nil for error views.
func (v *GraphicView) Data() [][]byte {
	if v.err != nil {
		return nil
	}
	return v.planes
}

// Release unmaps the frame; the view and its plane windows become
// invalid.
func (v *GraphicView) Release() error {
	if v.err != nil {
		return v.err
	}
	return v.alloc.Unmap(nil)
}
