// File: api/types.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Shared API-level type declarations, DTOs, and constants for the
// block memory model: usage flags, pixel formats, rects and plane layouts.

package api

// MemoryUsage is a set of flags describing intended memory access.
// Every allocate and map call carries a MemoryUsage; map requests are
// validated against the usage the allocation was created with.
type MemoryUsage uint32

const (
	UsageSoftwareRead MemoryUsage = 1 << iota
	UsageSoftwareWrite
)

// UsageSoftwareReadWrite is the usual producer usage.
const UsageSoftwareReadWrite = UsageSoftwareRead | UsageSoftwareWrite

// CanRead reports whether the usage grants CPU reads.
func (u MemoryUsage) CanRead() bool { return u&UsageSoftwareRead != 0 }

// CanWrite reports whether the usage grants CPU writes.
func (u MemoryUsage) CanWrite() bool { return u&UsageSoftwareWrite != 0 }

// Permits reports whether every flag in requested is granted by u.
func (u MemoryUsage) Permits(requested MemoryUsage) bool {
	return requested&^u == 0
}

func (u MemoryUsage) String() string {
	switch {
	case u.CanRead() && u.CanWrite():
		return "rw"
	case u.CanRead():
		return "r"
	case u.CanWrite():
		return "w"
	default:
		return "none"
	}
}

// PixelFormat identifies the sample layout of graphic allocations.
// The enumeration is owned by the platform; this library only interprets
// the formats it allocates itself.
type PixelFormat uint32

const (
	PixelFormatUnknown PixelFormat = iota

	// PixelFormatYUV420Planar is three separate planes: full-resolution
	// luma followed by two chroma planes subsampled by 2 in both
	// directions.
	PixelFormatYUV420Planar
)

func (f PixelFormat) String() string {
	switch f {
	case PixelFormatYUV420Planar:
		return "yuv420p"
	default:
		return "unknown"
	}
}

// Rect is a crop rectangle in sample coordinates.
type Rect struct {
	Left   uint32
	Top    uint32
	Width  uint32
	Height uint32
}

// Empty reports whether the rect covers no samples.
func (r Rect) Empty() bool { return r.Width == 0 || r.Height == 0 }

// Within reports whether the rect fits inside a width x height frame.
func (r Rect) Within(width, height uint32) bool {
	return uint64(r.Left)+uint64(r.Width) <= uint64(width) &&
		uint64(r.Top)+uint64(r.Height) <= uint64(height)
}

// Plane indices within a PlaneLayout.
const (
	PlaneY = 0
	PlaneU = 1
	PlaneV = 2
)

// PlaneInfo describes how samples of one pixel plane map to bytes.
type PlaneInfo struct {
	// Offset is the byte offset of the plane base within the allocation.
	Offset uint32
	// RowInc is the byte distance between vertically adjacent samples.
	RowInc int32
	// ColInc is the byte distance between horizontally adjacent samples.
	ColInc int32
	// HorizSubsampling and VertSubsampling give the number of luma
	// samples per sample of this plane in each direction (1 for luma,
	// typically 2 for 4:2:0 chroma).
	HorizSubsampling uint32
	VertSubsampling  uint32
}

// SampleOffset returns the byte offset, relative to the plane base, of
// sample (col, row) inside crop. Subsampled coordinates truncate: rects
// with dimensions not divisible by the subsampling factor address the
// canonical odd-dimension chroma samples.
func (p PlaneInfo) SampleOffset(col, row uint32, crop Rect) int {
	r := (row + crop.Top) / p.VertSubsampling
	c := (col + crop.Left) / p.HorizSubsampling
	return int(int32(r)*p.RowInc) + int(int32(c)*p.ColInc)
}

// Rows returns how many sample rows of this plane a rect of the given
// height covers.
func (p PlaneInfo) Rows(height uint32) uint32 { return height / p.VertSubsampling }

// Cols returns how many sample columns of this plane a rect of the given
// width covers.
func (p PlaneInfo) Cols(width uint32) uint32 { return width / p.HorizSubsampling }

// PlaneLayout describes every pixel plane of a graphic allocation.
type PlaneLayout struct {
	Planes []PlaneInfo
}

// NumPlanes returns the number of planes in the layout.
func (l PlaneLayout) NumPlanes() int { return len(l.Planes) }
