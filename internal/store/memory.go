package store

import "sync"

// Memory is a Store that lives only as long as the process.
type Memory struct {
	mu     sync.RWMutex
	values map[string]int
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]int)}
}

func (m *Memory) Get(key string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return 0, ErrNotFound
	}
	return v, nil
}

func (m *Memory) Put(key string, value int) error {
	m.mu.Lock()
	m.values[key] = value
	m.mu.Unlock()
	return nil
}

func (m *Memory) Close() error { return nil }
