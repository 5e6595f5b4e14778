//go:build !linux && !darwin

// File: alloc/region_heap.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Fallback region backend for platforms without x/sys mmap support.
// Usage flags are still validated at map time; the heap cannot enforce
// page protection.

package alloc

import "github.com/momentics/blockmem/api"

func mapRegion(size int, _ api.MemoryUsage) ([]byte, error) {
	return make([]byte, size), nil
}

func freeRegion(_ []byte) error {
	return nil
}
