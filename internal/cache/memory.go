package cache

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	value     *Snapshot
	fetchedAt time.Time
	ttl       time.Duration
}

func (e *entry) fresh(now time.Time) bool {
	return e != nil && now.Sub(e.fetchedAt) < e.ttl
}

// Memory is a process-local SnapshotCache.
type Memory struct {
	mu    sync.Mutex
	ttl   time.Duration
	entry *entry
	gen   uint64
	now   func() time.Time
}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{ttl: ttl, now: time.Now}
}

func (m *Memory) Get(_ context.Context) (*Snapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.entry.fresh(m.now()) {
		m.entry = nil
		return nil, false
	}
	return m.entry.value, true
}

func (m *Memory) Generation(_ context.Context) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gen
}

func (m *Memory) Set(_ context.Context, s *Snapshot, gen uint64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.gen {
		return false
	}
	m.entry = &entry{value: s, fetchedAt: m.now(), ttl: m.ttl}
	return true
}

func (m *Memory) Invalidate(_ context.Context) {
	m.mu.Lock()
	m.entry = nil
	m.gen++
	m.mu.Unlock()
}
