package storage

import (
	"context"
	"sync"
)

// MemorySlot keeps values in process memory. Nothing survives a restart.
type MemorySlot struct {
	mu     sync.RWMutex
	values map[string][]byte
}

func NewMemorySlot() *MemorySlot {
	return &MemorySlot{values: make(map[string][]byte)}
}

func (m *MemorySlot) Read(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[key]
	if !ok {
		return nil, ErrEmpty
	}
	return append([]byte(nil), v...), nil
}

func (m *MemorySlot) Write(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	m.values[key] = append([]byte(nil), value...)
	m.mu.Unlock()
	return nil
}

func (m *MemorySlot) Close() error {
	return nil
}
