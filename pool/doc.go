// File: pool/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package pool implements a recycling block pool with size class
// support. Released allocations return to per-class free lists instead
// of the OS until the lists fill up; fetches are satisfied from the
// lists when possible.
package pool
