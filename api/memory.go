// File: api/memory.go
// Package api
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Raw allocator boundary: owned handles to provider memory with
// map/unmap and shared-ownership reference counting.
//
// Allocations may be backed by mmap, shared memory, or device memory.
// All operations must be zero-copy; the model never duplicates backing
// storage on its own.

package api

// LinearAllocation is an owned handle to a flat byte range obtained from
// a raw provider.
//
// An allocation is reference counted: the mutable block created over it
// and every const block sliced from that block co-own it. The backing
// memory is released when the last owner calls Release. Backing memory
// survives Unmap; unmapping only closes the active window.
type LinearAllocation interface {
	// Capacity returns the allocation size in bytes.
	Capacity() uint32

	// Usage returns the access flags granted at allocation time.
	Usage() MemoryUsage

	// Map exposes [offset, offset+size) as a byte window. At most one
	// mapping may be active at a time; the window must be released with
	// Unmap before remapping. A non-nil fence is waited on before the
	// window is returned.
	Map(offset, size uint32, usage MemoryUsage, fence Fence) ([]byte, error)

	// Unmap closes the active window. data must be exactly the slice
	// returned by Map.
	Unmap(data []byte, fence Fence) error

	// Retain adds an owner reference.
	Retain()

	// Release drops an owner reference, freeing the backing memory when
	// the count reaches zero.
	Release()
}

// GraphicAllocation is an owned handle to two-dimensional, multi-plane
// provider memory. Reference counting follows LinearAllocation.
type GraphicAllocation interface {
	Width() uint32
	Height() uint32
	Format() PixelFormat
	Usage() MemoryUsage

	// Map validates the crop against the allocation dimensions and
	// returns one byte window per plane (each starting at the plane
	// base) together with the plane layout. Crop offsets are applied by
	// the caller through PlaneInfo.SampleOffset.
	Map(crop Rect, usage MemoryUsage, fence Fence) ([][]byte, PlaneLayout, error)

	// Unmap closes the active mapping.
	Unmap(fence Fence) error

	Retain()
	Release()
}

// LinearAllocator obtains linear allocations from a backing provider.
type LinearAllocator interface {
	AllocateLinear(capacity uint32, usage MemoryUsage) (LinearAllocation, error)
}

// GraphicAllocator obtains graphic allocations from a backing provider.
type GraphicAllocator interface {
	AllocateGraphic(width, height uint32, format PixelFormat, usage MemoryUsage) (GraphicAllocation, error)
}
