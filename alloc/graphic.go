// File: alloc/graphic.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Refcounted planar graphic allocation. Plane geometry is computed once
// at allocation time; mapping returns per-plane windows over the same
// backing region.

package alloc

import (
	"sync"
	"sync/atomic"

	"github.com/momentics/blockmem/api"
	"github.com/momentics/blockmem/internal/normalize"
)

// yuv420Layout computes the canonical three-plane 4:2:0 layout:
// full-resolution luma, then two chroma planes with ceil(w/2) x ceil(h/2)
// samples each.
func yuv420Layout(width, height uint32) (api.PlaneLayout, uint32) {
	cw := (width + 1) / 2
	ch := (height + 1) / 2
	ySize := width * height
	cSize := cw * ch
	layout := api.PlaneLayout{Planes: []api.PlaneInfo{
		{Offset: 0, RowInc: int32(width), ColInc: 1, HorizSubsampling: 1, VertSubsampling: 1},
		{Offset: ySize, RowInc: int32(cw), ColInc: 1, HorizSubsampling: 2, VertSubsampling: 2},
		{Offset: ySize + cSize, RowInc: int32(cw), ColInc: 1, HorizSubsampling: 2, VertSubsampling: 2},
	}}
	return layout, ySize + 2*cSize
}

type graphicAllocation struct {
	owner  *Allocator
	data   []byte
	width  uint32
	height uint32
	format api.PixelFormat
	usage  api.MemoryUsage
	layout api.PlaneLayout
	refs   atomic.Int32

	mu     sync.Mutex
	mapped bool
}

func (a *graphicAllocation) Width() uint32           { return a.width }
func (a *graphicAllocation) Height() uint32          { return a.height }
func (a *graphicAllocation) Format() api.PixelFormat { return a.format }
func (a *graphicAllocation) Usage() api.MemoryUsage  { return a.usage }

func (a *graphicAllocation) Map(crop api.Rect, usage api.MemoryUsage, fence api.Fence) ([][]byte, api.PlaneLayout, error) {
	if err := normalize.CheckRect(crop, a.width, a.height); err != nil {
		return nil, api.PlaneLayout{}, err
	}
	if err := normalize.CheckUsage(a.usage, usage); err != nil {
		return nil, api.PlaneLayout{}, err
	}
	if err := waitFence(fence); err != nil {
		return nil, api.PlaneLayout{}, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.mapped {
		return nil, api.PlaneLayout{}, api.NewError(api.CodeRefused, "allocation already mapped")
	}
	planes := make([][]byte, len(a.layout.Planes))
	for i, p := range a.layout.Planes {
		end := uint32(len(a.data))
		if i+1 < len(a.layout.Planes) {
			end = a.layout.Planes[i+1].Offset
		}
		planes[i] = a.data[p.Offset:end:end]
	}
	a.mapped = true
	return planes, a.layout, nil
}

func (a *graphicAllocation) Unmap(fence api.Fence) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.mapped {
		return api.NewError(api.CodeBadValue, "no active mapping")
	}
	if err := waitFence(fence); err != nil {
		return err
	}
	a.mapped = false
	return nil
}

func (a *graphicAllocation) Retain() { a.refs.Add(1) }

func (a *graphicAllocation) Release() {
	if a.refs.Add(-1) > 0 {
		return
	}
	a.mu.Lock()
	a.mapped = false
	a.mu.Unlock()
	if hook := a.owner.cfg.OnReleaseGraphic; hook != nil && hook(a) {
		return
	}
	a.owner.free(a.data)
}

// ReactivateGraphic re-arms a recycled graphic allocation with a single
// owner reference and no open mapping.
func ReactivateGraphic(ga api.GraphicAllocation) bool {
	a, ok := ga.(*graphicAllocation)
	if !ok {
		return false
	}
	a.mu.Lock()
	a.mapped = false
	a.mu.Unlock()
	a.refs.Store(1)
	return true
}
