package cache

import (
	"context"
	"sync"
	"time"
)

type memEntry struct {
	val     []byte
	expires time.Time
	tags    []string
}

// Memory is an in-process Cache for single-instance deployments without
// Redis.
type Memory struct {
	mu      sync.Mutex
	entries map[string]memEntry
	tags    map[string]map[string]struct{}
	now     func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]memEntry),
		tags:    make(map[string]map[string]struct{}),
		now:     time.Now,
	}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !m.now().Before(e.expires) {
		m.dropLocked(key)
		return nil, false, nil
	}
	return e.val, true, nil
}

func (m *Memory) Set(_ context.Context, key string, val []byte, ttl time.Duration, tags ...string) error {
	if ttl <= 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dropLocked(key)
	cp := append([]byte(nil), val...)
	m.entries[key] = memEntry{val: cp, expires: m.now().Add(ttl), tags: tags}
	for _, t := range tags {
		set, ok := m.tags[t]
		if !ok {
			set = make(map[string]struct{})
			m.tags[t] = set
		}
		set[key] = struct{}{}
	}
	return nil
}

func (m *Memory) Invalidate(_ context.Context, tags ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range tags {
		for key := range m.tags[t] {
			m.dropLocked(key)
		}
		delete(m.tags, t)
	}
	return nil
}

func (m *Memory) dropLocked(key string) {
	e, ok := m.entries[key]
	if !ok {
		return
	}
	delete(m.entries, key)
	for _, t := range e.tags {
		if set, ok := m.tags[t]; ok {
			delete(set, key)
			if len(set) == 0 {
				delete(m.tags, t)
			}
		}
	}
}
