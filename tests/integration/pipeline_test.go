// File: tests/integration/pipeline_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// End-to-end chain: pool fetch -> exclusive write -> fence-guarded share
// -> buffer aggregation with metadata and destroy notification ->
// concurrent consumer reads after the fence signals.

package integration

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/blockmem/api"
	"github.com/momentics/blockmem/block"
	"github.com/momentics/blockmem/buffer"
	"github.com/momentics/blockmem/fence"
	"github.com/momentics/blockmem/pool"
)

type frameInfo struct {
	pts int64
}

func (frameInfo) InfoType() buffer.InfoType { return 1 }

func TestProducerConsumerPipeline(t *testing.T) {
	const capacity = 64 * 1024

	mgr := pool.NewManager(pool.DefaultConfig())
	defer mgr.Close()

	blk, err := mgr.FetchLinearBlock(capacity, api.UsageSoftwareReadWrite)
	require.NoError(t, err)

	// Producer fills the block under the exclusive write mapping.
	wv, err := blk.Map().Acquire()
	require.NoError(t, err)
	data := wv.Data()
	for i := range data {
		data[i] = byte(i % 100)
	}
	require.NoError(t, wv.Release())

	fn := fence.NewSignal()
	cb, err := blk.Share(0, blk.Capacity(), fn)
	require.NoError(t, err)

	buf, err := buffer.NewLinear([]*block.ConstLinear{cb})
	require.NoError(t, err)
	require.NoError(t, buf.SetInfo(frameInfo{pts: 40}))

	var destroyed atomic.Int32
	require.NoError(t, buf.RegisterOnDestroyNotify(func(_ *buffer.Buffer, _ any) {
		destroyed.Add(1)
	}, nil))

	// One consumer blocks on the share fence and maps the const block;
	// the mapped view is then read concurrently, which is safe because
	// the content is immutable once the fence signals.
	holder := buf.LinearBlocks()[0].Map()
	viewCh := make(chan *block.ReadView, 1)
	go func() {
		rv, err := holder.Acquire()
		if err != nil {
			viewCh <- nil
			return
		}
		viewCh <- rv
	}()

	fn.Signal()
	rv := <-viewCh
	require.NotNil(t, rv)
	require.NoError(t, rv.Err())

	const readers = 4
	var wg sync.WaitGroup
	errs := make(chan error, readers)
	for r := 0; r < readers; r++ {
		wg.Add(1)
		go func(r int) {
			defer wg.Done()
			sub := rv.SubView(uint32(r*1024), 1024)
			if sub.Err() != nil {
				errs <- sub.Err()
				return
			}
			got := sub.Data()
			for i := range got {
				if got[i] != byte((r*1024+i)%100) {
					errs <- assert.AnError
					return
				}
			}
		}(r)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
	require.NoError(t, rv.Release())

	// The producer may drop its block; the buffer keeps the data alive.
	blk.Release()

	assert.Equal(t, buffer.Linear, buf.Type())
	assert.True(t, buf.HasInfo(1))
	assert.Zero(t, destroyed.Load())

	buf.Release()
	assert.Equal(t, int32(1), destroyed.Load())

	// The allocation went back to the pool; the next fetch reuses it.
	stats := mgr.Stats()
	assert.Equal(t, int64(1), stats.TotalAlloc)
	assert.Equal(t, int64(0), stats.TotalFree)
	blk2, err := mgr.FetchLinearBlock(capacity, api.UsageSoftwareReadWrite)
	require.NoError(t, err)
	assert.Equal(t, int64(1), mgr.Stats().Reused)
	blk2.Release()
}

func TestGraphicChunksPipeline(t *testing.T) {
	mgr := pool.NewManager(pool.DefaultConfig())
	defer mgr.Close()

	dims := []struct{ w, h uint32 }{{320, 240}, {176, 144}}
	consts := make([]*block.ConstGraphic, 0, len(dims))
	producers := make([]*block.Graphic, 0, len(dims))
	for i, d := range dims {
		blk, err := mgr.FetchGraphicBlock(d.w, d.h, api.PixelFormatYUV420Planar, api.UsageSoftwareReadWrite)
		require.NoError(t, err)
		producers = append(producers, blk)

		gv, err := blk.Map().Acquire()
		require.NoError(t, err)
		// Mark the first luma sample per chunk.
		gv.Data()[api.PlaneY][0] = byte(0x10 + i)
		require.NoError(t, gv.Release())

		cg, err := blk.Share(api.Rect{Width: d.w, Height: d.h}, fence.Ready())
		require.NoError(t, err)
		consts = append(consts, cg)
	}

	buf, err := buffer.NewGraphic(consts)
	require.NoError(t, err)
	assert.Equal(t, buffer.GraphicChunks, buf.Type())

	for i, cg := range buf.GraphicBlocks() {
		cv, err := cg.Map().Acquire()
		require.NoError(t, err)
		assert.Equal(t, byte(0x10+i), cv.Data()[api.PlaneY][0])
		require.NoError(t, cv.Release())
	}

	for _, blk := range producers {
		blk.Release()
	}
	buf.Release()
}
