// File: alloc/alloc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Cross-platform raw allocator with transparent backend selection.
// All public API is OS-agnostic; platform-specific region mapping lives
// in region_unix.go and region_heap.go.

package alloc

import (
	"github.com/go-kit/log"

	"github.com/momentics/blockmem/api"
)

// MaxDimension bounds graphic allocation width and height so that plane
// size arithmetic stays within uint32.
const MaxDimension = 1 << 15

// Config controls the default allocator.
type Config struct {
	// MaxLinearCapacity rejects larger linear requests. 0 means unlimited.
	MaxLinearCapacity uint32

	// Logger receives allocate/map failure events. Nil means no logging.
	Logger log.Logger

	// OnReleaseLinear, if set, is offered every linear allocation whose
	// last owner released it. Returning true takes ownership of the
	// allocation (recycling); returning false frees the backing region.
	OnReleaseLinear func(api.LinearAllocation) bool

	// OnReleaseGraphic is the graphic counterpart of OnReleaseLinear.
	OnReleaseGraphic func(api.GraphicAllocation) bool
}

// DefaultConfig returns a config with no capacity limit and no recycling.
func DefaultConfig() *Config {
	return &Config{}
}

// Allocator implements api.LinearAllocator and api.GraphicAllocator over
// anonymous memory regions.
type Allocator struct {
	cfg    Config
	logger log.Logger
}

// New creates an allocator. A nil cfg selects DefaultConfig.
func New(cfg *Config) *Allocator {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Allocator{cfg: *cfg, logger: logger}
}

// AllocateLinear obtains a flat byte range of the given capacity.
func (a *Allocator) AllocateLinear(capacity uint32, usage api.MemoryUsage) (api.LinearAllocation, error) {
	if capacity == 0 {
		return nil, api.NewError(api.CodeBadValue, "zero capacity")
	}
	if usage == 0 {
		return nil, api.NewError(api.CodeBadValue, "empty usage")
	}
	if max := a.cfg.MaxLinearCapacity; max != 0 && capacity > max {
		return nil, api.NewError(api.CodeRefused, "capacity above provider limit").
			WithContext("capacity", capacity).
			WithContext("limit", max)
	}
	data, err := mapRegion(int(capacity), usage)
	if err != nil {
		_ = a.logger.Log("component", "alloc", "op", "allocate_linear",
			"capacity", capacity, "err", err)
		return nil, api.NewError(api.CodeNoMemory, "region mapping failed").
			WithContext("capacity", capacity).
			WithContext("cause", err.Error())
	}
	al := &linearAllocation{owner: a, data: data, usage: usage}
	al.refs.Store(1)
	return al, nil
}

// AllocateGraphic obtains planar 2D memory. Only YUV 4:2:0 planar is
// produced by this provider.
func (a *Allocator) AllocateGraphic(width, height uint32, format api.PixelFormat, usage api.MemoryUsage) (api.GraphicAllocation, error) {
	if width == 0 || height == 0 || width > MaxDimension || height > MaxDimension {
		return nil, api.NewError(api.CodeBadValue, "invalid dimensions").
			WithContext("width", width).
			WithContext("height", height)
	}
	if usage == 0 {
		return nil, api.NewError(api.CodeBadValue, "empty usage")
	}
	if format != api.PixelFormatYUV420Planar {
		return nil, api.NewError(api.CodeRefused, "pixel format not supported by this provider").
			WithContext("format", format.String())
	}
	layout, total := yuv420Layout(width, height)
	data, err := mapRegion(int(total), usage)
	if err != nil {
		_ = a.logger.Log("component", "alloc", "op", "allocate_graphic",
			"width", width, "height", height, "err", err)
		return nil, api.NewError(api.CodeNoMemory, "region mapping failed").
			WithContext("bytes", total).
			WithContext("cause", err.Error())
	}
	ga := &graphicAllocation{
		owner:  a,
		data:   data,
		width:  width,
		height: height,
		format: format,
		usage:  usage,
		layout: layout,
	}
	ga.refs.Store(1)
	return ga, nil
}

func (a *Allocator) free(data []byte) {
	if err := freeRegion(data); err != nil {
		_ = a.logger.Log("component", "alloc", "op", "free", "err", err)
	}
}

// waitFence blocks on a fence with no deadline. Nil fences are ready.
func waitFence(f api.Fence) error {
	if f == nil {
		return nil
	}
	return f.Wait(-1)
}
