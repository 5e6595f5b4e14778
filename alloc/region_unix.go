//go:build linux || darwin

// File: alloc/region_unix.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Unix region backend: anonymous private mappings with page protection
// derived from the granted usage.

package alloc

import (
	"golang.org/x/sys/unix"

	"github.com/momentics/blockmem/api"
)

func mapRegion(size int, usage api.MemoryUsage) ([]byte, error) {
	prot := unix.PROT_NONE
	if usage.CanRead() {
		prot |= unix.PROT_READ
	}
	if usage.CanWrite() {
		prot |= unix.PROT_WRITE
	}
	return unix.Mmap(-1, 0, size, prot, unix.MAP_ANON|unix.MAP_PRIVATE)
}

func freeRegion(data []byte) error {
	return unix.Munmap(data)
}
