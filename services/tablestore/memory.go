package tablestore

import (
	"context"
	"sync"
)

// MemoryStore keeps tables in process memory. It backs tests and the
// "memory" store backend.
type MemoryStore struct {
	mu     sync.RWMutex
	tables map[string][]Row
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tables: make(map[string][]Row)}
}

// ReadAll returns a copy of the table's non-empty rows.
func (m *MemoryStore) ReadAll(ctx context.Context, table string) ([]Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	rows := make([]Row, 0, len(m.tables[table]))
	for _, r := range m.tables[table] {
		if r.IsEmpty() {
			continue
		}
		rows = append(rows, r.Clone())
	}
	return rows, nil
}

// ReplaceAll stores a copy of rows as the table's full contents.
func (m *MemoryStore) ReplaceAll(ctx context.Context, table string, rows []Row) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.tables[table] = CloneRows(rows)
	return nil
}

// InvalidateCache is a no-op; MemoryStore never caches.
func (m *MemoryStore) InvalidateCache() {}
