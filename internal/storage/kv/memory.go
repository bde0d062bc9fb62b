package kv

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
)

// Memory is an in-process Store backed by a map.
// List iterates in sorted key order so scans are deterministic.
type Memory struct {
	mu   sync.RWMutex
	data map[string]json.RawMessage
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]json.RawMessage)}
}

// Get returns the value at key, or nil when absent.
func (m *Memory) Get(ctx context.Context, key string) (json.RawMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	out := make(json.RawMessage, len(v))
	copy(out, v)
	return out, nil
}

// Set writes value at key.
func (m *Memory) Set(ctx context.Context, key string, value json.RawMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make(json.RawMessage, len(value))
	copy(stored, value)
	m.data[key] = stored
	return nil
}

// Delete removes the key.
func (m *Memory) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, key)
	return nil
}

// List returns all values under "{prefix}:" in sorted key order.
func (m *Memory) List(ctx context.Context, prefix string) ([]json.RawMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	full := prefix + ":"
	keys := make([]string, 0)
	for k := range m.data {
		if strings.HasPrefix(k, full) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	values := make([]json.RawMessage, 0, len(keys))
	for _, k := range keys {
		v := m.data[k]
		out := make(json.RawMessage, len(v))
		copy(out, v)
		values = append(values, out)
	}
	return values, nil
}

// Keys returns all keys in sorted order.
func (m *Memory) Keys(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

var _ Store = (*Memory)(nil)
