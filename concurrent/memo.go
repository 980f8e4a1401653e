// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package concurrent provides goroutine safe building blocks.
package concurrent

import "sync"

// Memo lazily creates and remembers one value per key. A failed creation
// is not remembered, so the next lookup of that key tries again.
type Memo[K comparable, V any] struct {
	mu     sync.RWMutex
	values map[K]V
	create func(K) (V, error)
}

// NewMemo
func NewMemo[K comparable, V any](create func(K) (V, error)) *Memo[K, V] {
	return &Memo[K, V]{
		values: make(map[K]V),
		create: create,
	}
}

// Get returns the value remembered for k, creating it first if needed.
// Concurrent callers of the same key always observe the same value.
func (m *Memo[K, V]) Get(k K) (V, error) {
	m.mu.RLock()
	v, ok := m.values[k]
	m.mu.RUnlock()
	if ok {
		return v, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok = m.values[k]
	if ok {
		return v, nil
	}

	v, err := m.create(k)
	if err != nil {
		return v, err
	}
	m.values[k] = v
	return v, nil
}

// Len
func (m *Memo[K, V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.values)
}
