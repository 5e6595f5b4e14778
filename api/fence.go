// File: api/fence.go
// Package api defines the Fence boundary.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

import "time"

// Fence is an opaque synchronization token. A producer hands a fence to
// consumers via share; a consumer that waits on the fence before
// dereferencing a view observes every write issued before the share.
//
// Fence internals are supplied by external collaborators; the library
// only waits.
type Fence interface {
	// Wait blocks until the fence signals or the timeout elapses.
	// A negative timeout waits forever. Returns ErrTimedOut on expiry.
	Wait(timeout time.Duration) error

	// IsReady reports whether the fence has already signaled.
	IsReady() bool
}
