// File: fence/fence_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package fence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/blockmem/api"
)

func TestReady(t *testing.T) {
	f := Ready()
	assert.True(t, f.IsReady())
	assert.NoError(t, f.Wait(-1))
	assert.NoError(t, f.Wait(0))
}

func TestSignal(t *testing.T) {
	f := NewSignal()
	assert.False(t, f.IsReady())

	err := f.Wait(10 * time.Millisecond)
	assert.ErrorIs(t, err, api.ErrTimedOut)
	assert.Equal(t, api.CodeTimedOut, api.CodeOf(err))

	f.Signal()
	f.Signal() // safe to repeat
	assert.True(t, f.IsReady())
	assert.NoError(t, f.Wait(0))
	assert.NoError(t, f.Wait(-1))
}

func TestSignalUnblocksWaiter(t *testing.T) {
	f := NewSignal()
	done := make(chan error, 1)
	go func() { done <- f.Wait(-1) }()
	f.Signal()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("waiter was not released")
	}
}
