// File: pool/pool_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/blockmem/api"
)

func TestFetchRoundsToSizeClass(t *testing.T) {
	m := NewManager(nil)
	defer m.Close()

	blk, err := m.FetchLinearBlock(1000, api.UsageSoftwareReadWrite)
	require.NoError(t, err)
	assert.Equal(t, uint32(2048), blk.Capacity())
	blk.Release()
}

func TestLinearReuse(t *testing.T) {
	m := NewManager(nil)
	defer m.Close()

	blk, err := m.FetchLinearBlock(4096, api.UsageSoftwareReadWrite)
	require.NoError(t, err)
	first := blk.Allocation()

	wv, err := blk.Map().Acquire()
	require.NoError(t, err)
	wv.Data()[0] = 0x42
	require.NoError(t, wv.Release())
	blk.Release()

	stats := m.Stats()
	assert.Equal(t, int64(1), stats.TotalAlloc)
	assert.Equal(t, int64(0), stats.TotalFree)

	blk2, err := m.FetchLinearBlock(4096, api.UsageSoftwareReadWrite)
	require.NoError(t, err)
	assert.Same(t, first, blk2.Allocation())

	stats = m.Stats()
	assert.Equal(t, int64(1), stats.TotalAlloc)
	assert.Equal(t, int64(1), stats.Reused)
	blk2.Release()
}

func TestReuseRequiresUsageCoverage(t *testing.T) {
	m := NewManager(nil)
	defer m.Close()

	blk, err := m.FetchLinearBlock(4096, api.UsageSoftwareRead)
	require.NoError(t, err)
	blk.Release()

	// The cached read-only allocation cannot serve a writable fetch.
	blk2, err := m.FetchLinearBlock(4096, api.UsageSoftwareReadWrite)
	require.NoError(t, err)
	assert.True(t, blk2.Allocation().Usage().CanWrite())
	assert.Equal(t, int64(2), m.Stats().TotalAlloc)
	assert.Equal(t, int64(0), m.Stats().Reused)
	blk2.Release()
}

func TestOversizeBypassesPooling(t *testing.T) {
	m := NewManager(nil)
	defer m.Close()

	const big = 3 * 1024 * 1024
	blk, err := m.FetchLinearBlock(big, api.UsageSoftwareReadWrite)
	require.NoError(t, err)
	assert.Equal(t, uint32(big), blk.Capacity())
	blk.Release()

	stats := m.Stats()
	assert.Equal(t, int64(1), stats.TotalAlloc)
	assert.Equal(t, int64(1), stats.TotalFree)
	assert.Equal(t, int64(0), stats.InUse)
}

func TestGraphicReuseByGeometry(t *testing.T) {
	m := NewManager(nil)
	defer m.Close()

	blk, err := m.FetchGraphicBlock(320, 240, api.PixelFormatYUV420Planar, api.UsageSoftwareReadWrite)
	require.NoError(t, err)
	first := blk.Allocation()
	blk.Release()

	// Different geometry allocates fresh.
	other, err := m.FetchGraphicBlock(176, 144, api.PixelFormatYUV420Planar, api.UsageSoftwareReadWrite)
	require.NoError(t, err)
	assert.NotSame(t, first, other.Allocation())
	other.Release()

	same, err := m.FetchGraphicBlock(320, 240, api.PixelFormatYUV420Planar, api.UsageSoftwareReadWrite)
	require.NoError(t, err)
	assert.Same(t, first, same.Allocation())
	same.Release()

	assert.Equal(t, int64(1), m.Stats().Reused)
}

func TestCloseDrainsFreeLists(t *testing.T) {
	m := NewManager(nil)

	blk, err := m.FetchLinearBlock(4096, api.UsageSoftwareReadWrite)
	require.NoError(t, err)
	blk.Release()

	m.Close()
	stats := m.Stats()
	assert.Equal(t, int64(1), stats.TotalFree)
	assert.Equal(t, int64(0), stats.InUse)

	// Blocks released after Close free immediately instead of recycling.
	blk, err = m.FetchLinearBlock(4096, api.UsageSoftwareReadWrite)
	require.NoError(t, err)
	blk.Release()
	assert.Equal(t, int64(2), m.Stats().TotalFree)
}

func TestFetchValidation(t *testing.T) {
	m := NewManager(nil)
	defer m.Close()

	_, err := m.FetchLinearBlock(0, api.UsageSoftwareRead)
	assert.ErrorIs(t, err, api.ErrBadValue)
	_, err = m.FetchLinearBlock(4096, 0)
	assert.ErrorIs(t, err, api.ErrBadValue)
	_, err = m.FetchGraphicBlock(320, 240, api.PixelFormatYUV420Planar, 0)
	assert.ErrorIs(t, err, api.ErrBadValue)
}

func TestDebugProbes(t *testing.T) {
	m := NewManager(nil)
	defer m.Close()

	m.RegisterProbe("custom", func() any { return 7 })

	blk, err := m.FetchLinearBlock(1024, api.UsageSoftwareReadWrite)
	require.NoError(t, err)
	blk.Release()

	state := m.DumpState()
	assert.Equal(t, 7, state["custom"])
	classes, ok := state["linear_free"].(map[uint32]int)
	require.True(t, ok)
	assert.Equal(t, 1, classes[2048])
}

func TestSizeClassLookup(t *testing.T) {
	class, ok := sizeClassUpperBound(1)
	assert.True(t, ok)
	assert.Equal(t, uint32(2048), class)

	class, ok = sizeClassUpperBound(2048)
	assert.True(t, ok)
	assert.Equal(t, uint32(2048), class)

	class, ok = sizeClassUpperBound(2049)
	assert.True(t, ok)
	assert.Equal(t, uint32(4096), class)

	_, ok = sizeClassUpperBound(2*1024*1024 + 1)
	assert.False(t, ok)

	assert.True(t, isSizeClass(65536))
	assert.False(t, isSizeClass(65537))
}
