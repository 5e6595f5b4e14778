// File: buffer/info.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Typed metadata store: at most one object per InfoType, last write
// wins, iteration order stable for a given state (insertion order,
// replacement keeps the original slot).

package buffer

// InfoType identifies one kind of buffer metadata. Applications define
// their own values.
type InfoType uint32

// Info is a metadata object attachable to a buffer.
type Info interface {
	InfoType() InfoType
}

// SetInfo inserts or replaces the single metadata object of its type.
func (b *Buffer) SetInfo(info Info) error {
	if info == nil {
		return errBadValue("nil info")
	}
	t := info.InfoType()
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.infoVals[t]; !ok {
		b.infoKeys = append(b.infoKeys, t)
	}
	b.infoVals[t] = info
	return nil
}

// HasInfo reports whether metadata of the given type is attached.
func (b *Buffer) HasInfo(t InfoType) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.infoVals[t]
	return ok
}

// Infos returns the attached metadata objects.
func (b *Buffer) Infos() []Info {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Info, 0, len(b.infoKeys))
	for _, t := range b.infoKeys {
		out = append(out, b.infoVals[t])
	}
	return out
}

// RemoveInfo removes and returns the metadata object of the given type.
// Absence is a normal outcome, reported via ok=false.
func (b *Buffer) RemoveInfo(t InfoType) (Info, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	info, ok := b.infoVals[t]
	if !ok {
		return nil, false
	}
	delete(b.infoVals, t)
	for i, k := range b.infoKeys {
		if k == t {
			b.infoKeys = append(b.infoKeys[:i], b.infoKeys[i+1:]...)
			break
		}
	}
	return info, true
}
