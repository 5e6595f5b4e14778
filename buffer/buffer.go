// File: buffer/buffer.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Buffer aggregate: an ordered collection of same-kind const blocks with
// typed metadata and destroy notification. Kind mixing is unrepresentable:
// NewLinear accepts only linear const blocks and NewGraphic only graphic
// ones, so the classification is derived, never checked at runtime.

package buffer

import (
	"sync"
	"sync/atomic"

	"github.com/momentics/blockmem/api"
	"github.com/momentics/blockmem/block"
)

// Type classifies a buffer by block kind and count.
type Type int

const (
	// Linear is a single linear block.
	Linear Type = iota + 1
	// LinearChunks is two or more linear blocks.
	LinearChunks
	// Graphic is a single graphic block.
	Graphic
	// GraphicChunks is two or more graphic blocks.
	GraphicChunks
)

func (t Type) String() string {
	switch t {
	case Linear:
		return "linear"
	case LinearChunks:
		return "linear_chunks"
	case Graphic:
		return "graphic"
	case GraphicChunks:
		return "graphic_chunks"
	default:
		return "unknown"
	}
}

// Buffer owns an ordered sequence of const blocks of a single kind,
// a set of typed metadata objects and a destroy-notification registry.
//
// A buffer is reference counted. When the last owner calls Release,
// every still-registered callback fires exactly once, in registration
// order, before the block references are dropped. Callbacks must not
// assume the underlying blocks are still mapped.
type Buffer struct {
	linear  []*block.ConstLinear
	graphic []*block.ConstGraphic

	refs  atomic.Int32
	fired atomic.Bool

	mu       sync.Mutex
	infoKeys []InfoType
	infoVals map[InfoType]Info
	notifies []registration
}

// NewLinear creates a buffer over a non-empty ordered list of linear
// const blocks. The buffer takes ownership of the handles.
func NewLinear(blocks []*block.ConstLinear) (*Buffer, error) {
	if len(blocks) == 0 {
		return nil, api.NewError(api.CodeBadValue, "buffer needs at least one block")
	}
	b := &Buffer{
		linear:   append([]*block.ConstLinear(nil), blocks...),
		infoVals: make(map[InfoType]Info),
	}
	b.refs.Store(1)
	return b, nil
}

// NewGraphic creates a buffer over a non-empty ordered list of graphic
// const blocks. The buffer takes ownership of the handles.
func NewGraphic(blocks []*block.ConstGraphic) (*Buffer, error) {
	if len(blocks) == 0 {
		return nil, api.NewError(api.CodeBadValue, "buffer needs at least one block")
	}
	b := &Buffer{
		graphic:  append([]*block.ConstGraphic(nil), blocks...),
		infoVals: make(map[InfoType]Info),
	}
	b.refs.Store(1)
	return b, nil
}

// Type derives the classification from block kind and count.
func (b *Buffer) Type() Type {
	switch {
	case len(b.linear) == 1:
		return Linear
	case len(b.linear) > 1:
		return LinearChunks
	case len(b.graphic) == 1:
		return Graphic
	default:
		return GraphicChunks
	}
}

// LinearBlocks returns the linear blocks in construction order. Empty
// for graphic buffers.
func (b *Buffer) LinearBlocks() []*block.ConstLinear {
	return append([]*block.ConstLinear(nil), b.linear...)
}

// GraphicBlocks returns the graphic blocks in construction order. Empty
// for linear buffers.
func (b *Buffer) GraphicBlocks() []*block.ConstGraphic {
	return append([]*block.ConstGraphic(nil), b.graphic...)
}

// Retain adds an owner reference.
func (b *Buffer) Retain() { b.refs.Add(1) }

// Release drops an owner reference. The thread dropping the last
// reference runs the destroy callbacks; the atomic fired guard keeps the
// firing exactly-once under concurrent releases.
func (b *Buffer) Release() {
	if b.refs.Add(-1) > 0 {
		return
	}
	if !b.fired.CompareAndSwap(false, true) {
		return
	}
	b.mu.Lock()
	notifies := append([]registration(nil), b.notifies...)
	b.notifies = nil
	b.mu.Unlock()
	for _, reg := range notifies {
		reg.fn(b, reg.arg)
	}
	for _, c := range b.linear {
		c.Release()
	}
	for _, c := range b.graphic {
		c.Release()
	}
}
