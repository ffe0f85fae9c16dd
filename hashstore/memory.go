package hashstore

import (
	"context"
	"maps"
	"sync"
	"time"
)

type memHash struct {
	fields map[string][]byte
	exp    time.Time // zero => no TTL
}

// Memory is an in-process HashStore. PutAll swaps the whole field map under
// a lock, so concurrent replacements never interleave.
type Memory struct {
	mu     sync.RWMutex
	hashes map[string]memHash
	now    func() time.Time
}

var _ HashStore = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{hashes: make(map[string]memHash), now: time.Now}
}

func (m *Memory) PutAll(_ context.Context, key string, fields map[string][]byte, ttl time.Duration) error {
	h := memHash{fields: make(map[string][]byte, len(fields))}
	for f, p := range fields {
		h.fields[f] = append([]byte(nil), p...)
	}
	if ttl > 0 {
		h.exp = m.now().Add(ttl)
	}
	m.mu.Lock()
	m.hashes[key] = h
	m.mu.Unlock()
	return nil
}

func (m *Memory) GetAll(_ context.Context, key string) (map[string][]byte, error) {
	h, ok := m.load(key)
	if !ok {
		return map[string][]byte{}, nil
	}
	return maps.Clone(h.fields), nil
}

func (m *Memory) Get(_ context.Context, key, field string) ([]byte, bool, error) {
	h, ok := m.load(key)
	if !ok {
		return nil, false, nil
	}
	p, ok := h.fields[field]
	return p, ok, nil
}

func (m *Memory) Close(context.Context) error { return nil }

func (m *Memory) load(key string) (memHash, bool) {
	m.mu.RLock()
	h, ok := m.hashes[key]
	m.mu.RUnlock()
	if !ok {
		return memHash{}, false
	}
	if !h.exp.IsZero() && m.now().After(h.exp) {
		m.mu.Lock()
		if cur, ok := m.hashes[key]; ok && cur.exp.Equal(h.exp) {
			delete(m.hashes, key)
		}
		m.mu.Unlock()
		return memHash{}, false
	}
	return h, true
}
