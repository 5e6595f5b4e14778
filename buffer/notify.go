// File: buffer/notify.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Destroy-notification registry. A registration is identified by the
// callback's function pointer plus its argument, so arguments must be
// comparable values (pointers in the usual case).

package buffer

import (
	"reflect"

	"github.com/momentics/blockmem/api"
)

// OnDestroyFunc runs when the buffer it was registered on is destroyed.
// It receives the buffer identity and the registered argument.
type OnDestroyFunc func(buf *Buffer, arg any)

type registration struct {
	fn  OnDestroyFunc
	ptr uintptr
	arg any
}

func errBadValue(msg string) error { return api.NewError(api.CodeBadValue, msg) }

// RegisterOnDestroyNotify registers a callback to run on destruction.
// Registering an identical (callback, arg) pair twice reports
// ErrDuplicate and does not double-register.
func (b *Buffer) RegisterOnDestroyNotify(fn OnDestroyFunc, arg any) error {
	if fn == nil {
		return errBadValue("nil callback")
	}
	ptr := reflect.ValueOf(fn).Pointer()
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, reg := range b.notifies {
		if reg.ptr == ptr && reg.arg == arg {
			return api.NewError(api.CodeDuplicate, "callback already registered")
		}
	}
	b.notifies = append(b.notifies, registration{fn: fn, ptr: ptr, arg: arg})
	return nil
}

// UnregisterOnDestroyNotify removes a matching registration. Reports
// ErrNotFound if no exact (callback, arg) match exists.
func (b *Buffer) UnregisterOnDestroyNotify(fn OnDestroyFunc, arg any) error {
	if fn == nil {
		return errBadValue("nil callback")
	}
	ptr := reflect.ValueOf(fn).Pointer()
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, reg := range b.notifies {
		if reg.ptr == ptr && reg.arg == arg {
			b.notifies = append(b.notifies[:i], b.notifies[i+1:]...)
			return nil
		}
	}
	return api.NewError(api.CodeNotFound, "no matching registration")
}
