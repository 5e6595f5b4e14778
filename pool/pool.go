// File: pool/pool.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Recycling block pool manager. Linear allocations are rounded up to a
// size class and cached per class; graphic allocations are cached per
// (width, height, format). Reuse requires the cached usage to cover the
// requested one.

package pool

import (
	"sync"
	"sync/atomic"

	"github.com/go-kit/log"

	"github.com/momentics/blockmem/alloc"
	"github.com/momentics/blockmem/api"
	"github.com/momentics/blockmem/block"
)

const defaultClassCapacity = 64

// Config controls the pool manager.
type Config struct {
	// Alloc configures the underlying raw allocator. Recycling hooks are
	// installed by the manager; any hooks set here are overwritten.
	Alloc *alloc.Config

	// ClassCapacity caps each free list. 0 selects the default.
	ClassCapacity int

	// Logger receives pool events. Nil means no logging.
	Logger log.Logger
}

// DefaultConfig returns the stock pool configuration.
func DefaultConfig() *Config {
	return &Config{ClassCapacity: defaultClassCapacity}
}

type gfxKey struct {
	width  uint32
	height uint32
	format api.PixelFormat
}

// Manager is a recycling block pool over the default raw allocator.
// It implements api.Debug.
type Manager struct {
	logger    log.Logger
	allocator *alloc.Allocator
	classCap  int

	mu      sync.Mutex
	linear  map[uint32]*freeList
	graphic map[gfxKey]*freeList
	probes  map[string]func() any
	closed  bool

	totalAlloc atomic.Int64
	totalFree  atomic.Int64
	reused     atomic.Int64
}

// NewManager creates a pool manager. A nil cfg selects DefaultConfig.
func NewManager(cfg *Config) *Manager {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewNopLogger()
	}
	classCap := cfg.ClassCapacity
	if classCap <= 0 {
		classCap = defaultClassCapacity
	}
	m := &Manager{
		logger:   logger,
		classCap: classCap,
		linear:   make(map[uint32]*freeList),
		graphic:  make(map[gfxKey]*freeList),
		probes:   make(map[string]func() any),
	}
	ac := alloc.DefaultConfig()
	if cfg.Alloc != nil {
		c := *cfg.Alloc
		ac = &c
	}
	ac.OnReleaseLinear = m.recycleLinear
	ac.OnReleaseGraphic = m.recycleGraphic
	m.allocator = alloc.New(ac)
	return m
}

// FetchLinearBlock returns a writable linear block with capacity of at
// least the requested size (rounded up to the size class). Requests
// above the biggest class are allocated exactly and bypass pooling.
func (m *Manager) FetchLinearBlock(capacity uint32, usage api.MemoryUsage) (*block.Linear, error) {
	if capacity == 0 || usage == 0 {
		return nil, api.NewError(api.CodeBadValue, "invalid fetch request")
	}
	class, pooled := sizeClassUpperBound(capacity)
	if !pooled {
		class = capacity
	}
	if pooled {
		if fl := m.lookupLinear(class, false); fl != nil {
			if v, ok := fl.get(); ok {
				al := v.(api.LinearAllocation)
				if al.Usage().Permits(usage) && alloc.ReactivateLinear(al) {
					m.reused.Add(1)
					return block.WrapLinear(al), nil
				}
				// Usage mismatch: this entry cannot serve the request.
				if !fl.put(al) && alloc.ReactivateLinear(al) {
					al.Release()
				}
			}
		}
	}
	al, err := m.allocator.AllocateLinear(class, usage)
	if err != nil {
		_ = m.logger.Log("component", "pool", "op", "fetch_linear",
			"capacity", capacity, "err", err)
		return nil, err
	}
	m.totalAlloc.Add(1)
	return block.WrapLinear(al), nil
}

// FetchGraphicBlock returns a writable graphic block, reusing a cached
// allocation with identical geometry when available.
func (m *Manager) FetchGraphicBlock(width, height uint32, format api.PixelFormat, usage api.MemoryUsage) (*block.Graphic, error) {
	if usage == 0 {
		return nil, api.NewError(api.CodeBadValue, "invalid fetch request")
	}
	key := gfxKey{width: width, height: height, format: format}
	if fl := m.lookupGraphic(key, false); fl != nil {
		if v, ok := fl.get(); ok {
			ga := v.(api.GraphicAllocation)
			if ga.Usage().Permits(usage) && alloc.ReactivateGraphic(ga) {
				m.reused.Add(1)
				return block.WrapGraphic(ga), nil
			}
			if !fl.put(ga) && alloc.ReactivateGraphic(ga) {
				ga.Release()
			}
		}
	}
	ga, err := m.allocator.AllocateGraphic(width, height, format, usage)
	if err != nil {
		_ = m.logger.Log("component", "pool", "op", "fetch_graphic",
			"width", width, "height", height, "err", err)
		return nil, err
	}
	m.totalAlloc.Add(1)
	return block.WrapGraphic(ga), nil
}

// Stats exposes resource accounting for observability.
func (m *Manager) Stats() api.BlockPoolStats {
	totalAlloc := m.totalAlloc.Load()
	totalFree := m.totalFree.Load()
	return api.BlockPoolStats{
		TotalAlloc: totalAlloc,
		TotalFree:  totalFree,
		Reused:     m.reused.Load(),
		InUse:      totalAlloc - totalFree,
	}
}

// Close drains the free lists and releases the cached allocations back
// to the provider. Blocks already fetched stay valid; their allocations
// are freed on release instead of recycled.
func (m *Manager) Close() {
	m.mu.Lock()
	m.closed = true
	lists := make([]*freeList, 0, len(m.linear)+len(m.graphic))
	for _, fl := range m.linear {
		lists = append(lists, fl)
	}
	for _, fl := range m.graphic {
		lists = append(lists, fl)
	}
	m.linear = make(map[uint32]*freeList)
	m.graphic = make(map[gfxKey]*freeList)
	m.mu.Unlock()
	for _, fl := range lists {
		for {
			v, ok := fl.get()
			if !ok {
				break
			}
			switch al := v.(type) {
			case api.LinearAllocation:
				if alloc.ReactivateLinear(al) {
					al.Release()
				}
			case api.GraphicAllocation:
				if alloc.ReactivateGraphic(al) {
					al.Release()
				}
			}
		}
	}
}

// recycleLinear is the allocator release hook: it takes back class-sized
// allocations while there is room.
func (m *Manager) recycleLinear(al api.LinearAllocation) bool {
	if !isSizeClass(al.Capacity()) {
		m.totalFree.Add(1)
		return false
	}
	fl := m.lookupLinear(al.Capacity(), true)
	if fl != nil && fl.put(al) {
		return true
	}
	m.totalFree.Add(1)
	return false
}

func (m *Manager) recycleGraphic(ga api.GraphicAllocation) bool {
	key := gfxKey{width: ga.Width(), height: ga.Height(), format: ga.Format()}
	fl := m.lookupGraphic(key, true)
	if fl != nil && fl.put(ga) {
		return true
	}
	m.totalFree.Add(1)
	return false
}

func (m *Manager) lookupLinear(class uint32, create bool) *freeList {
	m.mu.Lock()
	defer m.mu.Unlock()
	fl, ok := m.linear[class]
	if !ok && create && !m.closed {
		fl = newFreeList(m.classCap)
		m.linear[class] = fl
	}
	return fl
}

func (m *Manager) lookupGraphic(key gfxKey, create bool) *freeList {
	m.mu.Lock()
	defer m.mu.Unlock()
	fl, ok := m.graphic[key]
	if !ok && create && !m.closed {
		fl = newFreeList(m.classCap)
		m.graphic[key] = fl
	}
	return fl
}

// DumpState implements api.Debug.
func (m *Manager) DumpState() map[string]any {
	state := map[string]any{
		"stats": m.Stats(),
	}
	m.mu.Lock()
	classes := make(map[uint32]int, len(m.linear))
	for class, fl := range m.linear {
		classes[class] = fl.length()
	}
	frames := make(map[gfxKey]int, len(m.graphic))
	for key, fl := range m.graphic {
		frames[key] = fl.length()
	}
	probes := make(map[string]func() any, len(m.probes))
	for name, fn := range m.probes {
		probes[name] = fn
	}
	m.mu.Unlock()
	state["linear_free"] = classes
	state["graphic_free"] = frames
	for name, fn := range probes {
		state[name] = fn()
	}
	return state
}

// RegisterProbe implements api.Debug.
func (m *Manager) RegisterProbe(name string, fn func() any) {
	m.mu.Lock()
	m.probes[name] = fn
	m.mu.Unlock()
}

var _ api.Debug = (*Manager)(nil)
