// File: pool/classes.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

// Predefined (power-of-two) linear size classes (bytes).
// This table can be tuned for deployment needs.
var sizeClasses = [...]uint32{
	2 * 1024,        // 2K
	4 * 1024,        // 4K
	8 * 1024,        // 8K
	16 * 1024,       // 16K
	32 * 1024,       // 32K
	64 * 1024,       // 64K
	128 * 1024,      // 128K
	256 * 1024,      // 256K
	512 * 1024,      // 512K
	1 * 1024 * 1024, // 1M
}

// sizeClassUpperBound returns the smallest class >= requested size.
// ok is false for requests above the biggest class; those bypass
// pooling.
func sizeClassUpperBound(size uint32) (uint32, bool) {
	for _, c := range sizeClasses {
		if size <= c {
			return c, true
		}
	}
	return 0, false
}

// isSizeClass reports whether size is exactly one of the classes.
func isSizeClass(size uint32) bool {
	for _, c := range sizeClasses {
		if size == c {
			return true
		}
	}
	return false
}
