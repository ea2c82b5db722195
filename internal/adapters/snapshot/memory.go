package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/ports"
)

var _ ports.SnapshotStore = (*MemoryStore)(nil)

// MemoryStore keeps snapshots in process memory. Payloads are JSON encoded so
// loads behave exactly like the SQLite store.
type MemoryStore struct {
	mu    sync.Mutex
	data  map[string][]byte
	saves map[string]int
}

// NewMemory creates an empty in-memory snapshot store
func NewMemory() *MemoryStore {
	return &MemoryStore{
		data:  make(map[string][]byte),
		saves: make(map[string]int),
	}
}

func (m *MemoryStore) Load(ctx context.Context, key string, dst any) (bool, error) {
	m.mu.Lock()
	payload, ok := m.data[key]
	m.mu.Unlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(payload, dst); err != nil {
		return false, fmt.Errorf("decode snapshot %s: %w", key, err)
	}
	return true, nil
}

func (m *MemoryStore) Save(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode snapshot %s: %w", key, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = data
	m.saves[key]++
	return nil
}

// Saves returns how many times key was written
func (m *MemoryStore) Saves(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves[key]
}
