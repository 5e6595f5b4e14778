// File: fence/fence.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Stock fence implementations for callers that do not bring their own:
// an always-signaled fence for single-threaded use and a one-shot
// signal fence for producer/consumer handoff.

package fence

import (
	"sync"
	"time"

	"github.com/momentics/blockmem/api"
)

type ready struct{}

func (ready) Wait(time.Duration) error { return nil }
func (ready) IsReady() bool            { return true }

// Ready returns an always-signaled fence.
func Ready() api.Fence { return ready{} }

// Signal is a one-shot fence signaled by the producer. The zero value is
// not usable; create with NewSignal.
type Signal struct {
	once sync.Once
	ch   chan struct{}
}

// NewSignal creates an unsignaled fence.
func NewSignal() *Signal {
	return &Signal{ch: make(chan struct{})}
}

// Signal marks the fence ready. Safe to call more than once.
func (s *Signal) Signal() {
	s.once.Do(func() { close(s.ch) })
}

// Wait blocks until Signal or the timeout. A negative timeout waits
// forever.
func (s *Signal) Wait(timeout time.Duration) error {
	if timeout < 0 {
		<-s.ch
		return nil
	}
	select {
	case <-s.ch:
		return nil
	case <-time.After(timeout):
		return api.NewError(api.CodeTimedOut, "fence wait timed out")
	}
}

// IsReady reports whether Signal has been called.
func (s *Signal) IsReady() bool {
	select {
	case <-s.ch:
		return true
	default:
		return false
	}
}
