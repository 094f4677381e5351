package storage

import (
	"context"
	"sync"

	"github.com/rl1809/coffee-maker/internal/core/domain"
)

// MemoryAdapter is an in-process CacheRepository for machines running without Redis.
// Idempotency keys never expire.
type MemoryAdapter struct {
	mu    sync.Mutex
	stock map[string]domain.Stock
	keys  map[string]struct{}
}

func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{
		stock: make(map[string]domain.Stock),
		keys:  make(map[string]struct{}),
	}
}

func (m *MemoryAdapter) SetStock(ctx context.Context, machineID string, stock domain.Stock) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stock[machineID] = stock
	return nil
}

func (m *MemoryAdapter) GetStock(ctx context.Context, machineID string) (domain.Stock, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.stock[machineID]
	return s, ok, nil
}

func (m *MemoryAdapter) SetIdempotency(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.keys[key]; exists {
		return false, nil
	}
	m.keys[key] = struct{}{}
	return true, nil
}

func (m *MemoryAdapter) ReleaseIdempotency(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.keys, key)
	return nil
}
