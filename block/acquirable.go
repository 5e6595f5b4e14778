// File: block/acquirable.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package block

import (
	"sync"

	"github.com/momentics/blockmem/api"
)

// Acquirable is a deferred-acquisition handle for a view. Acquire waits
// on the attached fence and then performs the actual memory mapping.
// Acquisition happens at most once per handle; repeated calls return the
// first outcome.
type Acquirable[V any] struct {
	fence   api.Fence
	once    sync.Once
	acquire func() (V, error)
	val     V
	err     error
}

func newAcquirable[V any](fence api.Fence, acquire func() (V, error)) *Acquirable[V] {
	return &Acquirable[V]{fence: fence, acquire: acquire}
}

// Fence returns the synchronization token guarding the view, if any.
func (a *Acquirable[V]) Fence() api.Fence { return a.fence }

// Acquire waits on the fence and maps the view.
func (a *Acquirable[V]) Acquire() (V, error) {
	a.once.Do(func() {
		if a.fence != nil {
			if a.err = a.fence.Wait(-1); a.err != nil {
				return
			}
		}
		a.val, a.err = a.acquire()
	})
	return a.val, a.err
}
