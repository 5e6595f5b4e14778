// File: api/pool.go
// Author: momentics <momentics@gmail.com>
//
// Accounting DTOs for recycling block pools.

package api

// BlockPoolStats aggregates allocation/reuse stats for a block pool.
type BlockPoolStats struct {
	// TotalAlloc counts allocations obtained from the raw provider.
	TotalAlloc int64
	// TotalFree counts allocations returned to the provider.
	TotalFree int64
	// Reused counts fetches satisfied from a free list.
	Reused int64
	// InUse is TotalAlloc - TotalFree.
	InUse int64
}
