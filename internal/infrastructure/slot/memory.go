// Package slot provides the persistent key-value slots the store snapshots into.
package slot

import (
	"context"
	"sync"

	"github.com/oksasatya/inclusive-studai/internal/domain/repository"
)

// Memory keeps values in process. It is used for tests and throwaway runs.
type Memory struct {
	mu      sync.Mutex
	values  map[string]string
	failSet error
}

func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSet != nil {
		return m.failSet
	}
	m.values[key] = value
	return nil
}

// FailWrites makes every following Set return err. Pass nil to recover.
func (m *Memory) FailWrites(err error) {
	m.mu.Lock()
	m.failSet = err
	m.mu.Unlock()
}

var _ repository.KeyValueSlot = (*Memory)(nil)
