// File: block/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package block implements the mutable-block layer over raw allocations:
// exclusively owned writable blocks, fence-guarded immutable const
// blocks produced by Share, and bounds-checked views with zero-copy
// sub-slicing.
//
// Ownership: a block holds one reference on its backing allocation.
// Share grants each const block its own reference, so the allocation
// outlives every handle sliced from it. Sharing never copies memory and
// never invalidates the source block; write/share ordering is the
// caller's responsibility.
package block
