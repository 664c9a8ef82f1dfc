package recorder

import (
	"fmt"
	"sync"

	"LLMTradeLab/internal/model"
)

// MemoryStore is an in-memory Store used in tests and dry runs where no
// database should be touched.
type MemoryStore struct {
	mu        sync.Mutex
	nextID    int64
	fixed     []model.FixedStockRecord
	selection []model.SelectionRecord
	pending   []model.PendingSelection
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

func (m *MemoryStore) AppendFixed(rec *model.FixedStockRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec.ID = m.nextID
	m.nextID++
	m.fixed = append(m.fixed, *rec)
	return nil
}

func (m *MemoryStore) AppendSelection(rec *model.SelectionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec.ID = m.nextID
	m.nextID++
	m.selection = append(m.selection, *rec)
	return nil
}

func (m *MemoryStore) ListFixed() ([]model.FixedStockRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.FixedStockRecord, 0, len(m.fixed))
	for i := len(m.fixed) - 1; i >= 0; i-- {
		out = append(out, m.fixed[i])
	}
	return out, nil
}

func (m *MemoryStore) ListSelection() ([]model.SelectionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.SelectionRecord, 0, len(m.selection))
	for i := len(m.selection) - 1; i >= 0; i-- {
		out = append(out, m.selection[i])
	}
	return out, nil
}

func (m *MemoryStore) DeleteFixed(id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.fixed {
		if r.ID == id {
			m.fixed = append(m.fixed[:i], m.fixed[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("fixed experiment id %d: %w", id, ErrNotFound)
}

func (m *MemoryStore) DeleteSelection(id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.selection {
		if r.ID == id {
			m.selection = append(m.selection[:i], m.selection[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("selection experiment id %d: %w", id, ErrNotFound)
}

func (m *MemoryStore) EnqueuePending(p *model.PendingSelection) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = m.nextID
	m.nextID++
	m.pending = append(m.pending, *p)
	return nil
}

func (m *MemoryStore) ListPending() ([]model.PendingSelection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.PendingSelection, len(m.pending))
	copy(out, m.pending)
	return out, nil
}

func (m *MemoryStore) DeletePending(id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, p := range m.pending {
		if p.ID == id {
			m.pending = append(m.pending[:i], m.pending[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("pending selection id %d: %w", id, ErrNotFound)
}

func (m *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
