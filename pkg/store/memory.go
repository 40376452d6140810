package store

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/afawcett/flowextensions/pkg/api"
)

// Memory is an in-memory record store. Records are held in insertion
// order and copied on the way in and out, so callers can mutate their
// own copies freely. Writes accept records as given without validation
type Memory struct {
	records []*api.ConfigRecord
	mu      sync.RWMutex
}

var _ Store = (*Memory)(nil)

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{}
}

// Put stores a record, replacing any existing records with the same name
func (m *Memory) Put(rec *api.ConfigRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removeLocked(rec.Name)
	m.records = append(m.records, rec.Clone())
}

// Add stores a record without replacing existing ones, so several records
// may end up sharing a name
func (m *Memory) Add(rec *api.ConfigRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, rec.Clone())
}

// Delete removes every record with the given name
func (m *Memory) Delete(name api.Name) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.removeLocked(name) {
		return fmt.Errorf("%w: %s", ErrRecordNotFound, name)
	}
	return nil
}

func (m *Memory) removeLocked(name api.Name) bool {
	orig := len(m.records)
	m.records = slices.DeleteFunc(m.records,
		func(rec *api.ConfigRecord) bool { return rec.Name == name },
	)
	return len(m.records) != orig
}

// Query returns every record with the given name
func (m *Memory) Query(
	_ context.Context, name api.Name,
) ([]*api.ConfigRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var res []*api.ConfigRecord
	for _, rec := range m.records {
		if rec.Name == name {
			res = append(res, rec.Clone())
		}
	}
	return res, nil
}

// List returns every record in insertion order
func (m *Memory) List(_ context.Context) ([]*api.ConfigRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]*api.ConfigRecord, 0, len(m.records))
	for _, rec := range m.records {
		res = append(res, rec.Clone())
	}
	return res, nil
}
