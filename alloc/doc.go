// File: alloc/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package alloc provides the default raw allocator: an in-process
// provider handing out refcounted, map/unmap-disciplined memory regions.
// It stands in for ion/gralloc-style platform backends behind the
// api.LinearAllocator and api.GraphicAllocator boundaries.
package alloc
