// File: block/view.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Bounds-checked views over mapped block memory. A view borrows the
// mapped window from its block; it becomes invalid once the window is
// unmapped. SubView is pure arithmetic: it narrows the logical window
// without remapping.

package block

import "github.com/momentics/blockmem/api"

// window carries the shared view state: the mapped byte window plus the
// logical [offset, offset+size) slice of it.
type window struct {
	alloc  api.LinearAllocation
	base   []byte
	offset uint32
	size   uint32
	err    error
}

func errWindow(err error) window { return window{err: err} }

// Err returns the view error, nil for a usable view.
func (w *window) Err() error { return w.err }

// Capacity returns the size of the mapped window.
func (w *window) Capacity() uint32 { return uint32(len(w.base)) }

// Offset returns the logical offset within the mapped window.
func (w *window) Offset() uint32 { return w.offset }

// Size returns the logical size of the view.
func (w *window) Size() uint32 { return w.size }

func (w *window) bytes() []byte {
	if w.err != nil || w.base == nil {
		return nil
	}
	return w.base[w.offset : w.offset+w.size : w.offset+w.size]
}

func (w *window) narrow(offset, size uint32) window {
	if w.err != nil {
		return *w
	}
	if uint64(offset)+uint64(size) > uint64(w.size) {
		return errWindow(api.NewError(api.CodeBadValue, "sub-view exceeds view window").
			WithContext("offset", offset).
			WithContext("size", size).
			WithContext("window", w.size))
	}
	return window{alloc: w.alloc, base: w.base, offset: w.offset + offset, size: size}
}

func (w *window) release() error {
	if w.err != nil {
		return w.err
	}
	if w.alloc == nil {
		return api.NewError(api.CodeBadValue, "view has no mapping")
	}
	return w.alloc.Unmap(w.base, nil)
}

// WriteView is a mutable accessor over a mapped block.
type WriteView struct {
	window
}

// Data returns the writable bytes of the logical window. Nil for error
// views.
func (v *WriteView) Data() []byte { return v.bytes() }

// SubView narrows the view to [offset, offset+size) relative to the
// current logical window. Out-of-range requests yield a view with Err
// set and zero-length data.
func (v *WriteView) SubView(offset, size uint32) *WriteView {
	return &WriteView{v.narrow(offset, size)}
}

// Release unmaps the window this view (and every view derived from it)
// borrows. All derived views become invalid.
func (v *WriteView) Release() error { return v.release() }

// ReadView is an immutable accessor over a mapped const block. The
// returned bytes must not be modified.
type ReadView struct {
	window
}

// Data returns the read-only bytes of the logical window.
func (v *ReadView) Data() []byte { return v.bytes() }

// SubView narrows the view without remapping.
func (v *ReadView) SubView(offset, size uint32) *ReadView {
	return &ReadView{v.narrow(offset, size)}
}

// Release unmaps the underlying window.
func (v *ReadView) Release() error { return v.release() }
