// File: internal/normalize/normalizer.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Unified range and rect validation routines for allocations, blocks and
// views. Ensures all call sites working with offsets, sizes and crop
// rects validate against actual capacity to prevent out-of-bounds
// windows and silent truncation. Should be used by ALL call sites taking
// caller-supplied geometry.

package normalize

import (
	"sync"

	"github.com/go-kit/log"

	"github.com/momentics/blockmem/api"
)

var (
	mu     sync.Mutex
	logger log.Logger = log.NewNopLogger()
)

// SetLogger replaces the logger used for rejected-input events.
func SetLogger(l log.Logger) {
	mu.Lock()
	if l == nil {
		l = log.NewNopLogger()
	}
	logger = l
	mu.Unlock()
}

func logReject(kv ...any) {
	mu.Lock()
	l := logger
	mu.Unlock()
	_ = l.Log(kv...)
}

// CheckRange validates a [offset, offset+size) window against capacity.
// Arithmetic is done in 64 bits so wrap-around cannot pass.
func CheckRange(offset, size, capacity uint32) error {
	if size == 0 {
		logReject("reject", "range", "reason", "zero size")
		return api.NewError(api.CodeBadValue, "zero-sized range")
	}
	if uint64(offset)+uint64(size) > uint64(capacity) {
		logReject("reject", "range", "offset", offset, "size", size, "capacity", capacity)
		return api.NewError(api.CodeBadValue, "range exceeds capacity").
			WithContext("offset", offset).
			WithContext("size", size).
			WithContext("capacity", capacity)
	}
	return nil
}

// CheckRect validates a crop rect against frame dimensions.
func CheckRect(r api.Rect, width, height uint32) error {
	if r.Empty() {
		logReject("reject", "rect", "reason", "empty crop")
		return api.NewError(api.CodeBadValue, "empty crop rect")
	}
	if !r.Within(width, height) {
		logReject("reject", "rect", "left", r.Left, "top", r.Top,
			"width", r.Width, "height", r.Height)
		return api.NewError(api.CodeBadValue, "crop rect exceeds frame").
			WithContext("rect", r).
			WithContext("width", width).
			WithContext("height", height)
	}
	return nil
}

// CheckUsage validates a map request against the usage granted at
// allocation time.
func CheckUsage(granted, requested api.MemoryUsage) error {
	if requested == 0 {
		return api.NewError(api.CodeBadValue, "empty usage")
	}
	if !granted.Permits(requested) {
		logReject("reject", "usage", "granted", granted.String(), "requested", requested.String())
		return api.NewError(api.CodeNoPermission, "usage not granted at allocation time").
			WithContext("granted", granted.String()).
			WithContext("requested", requested.String())
	}
	return nil
}
