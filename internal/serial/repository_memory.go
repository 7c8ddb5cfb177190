package serial

import (
	"context"
	"sync"
)

// MemoryRepository keeps records in process, in insertion order. It backs test
// mode and unit tests.
type MemoryRepository struct {
	mu    sync.RWMutex
	order []string
	m     map[string]Record
}

// NewMemoryRepository returns a repository seeded with records.
func NewMemoryRepository(records ...Record) *MemoryRepository {
	r := &MemoryRepository{m: make(map[string]Record)}
	for _, rec := range records {
		r.order = append(r.order, rec.ID)
		r.m[rec.ID] = rec
	}
	return r
}

func (r *MemoryRepository) List(_ context.Context) ([]Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Record, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.m[id])
	}
	return out, nil
}

func (r *MemoryRepository) Get(_ context.Context, id string) (Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.m[id]
	if !ok {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

func (r *MemoryRepository) Create(_ context.Context, rec Record) (Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.m[rec.ID]; !ok {
		r.order = append(r.order, rec.ID)
	}
	r.m[rec.ID] = rec
	return rec, nil
}

func (r *MemoryRepository) Update(_ context.Context, id string, rec Record) (Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.m[id]; !ok {
		return Record{}, ErrNotFound
	}
	rec.ID = id
	r.m[id] = rec
	return rec, nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.m[id]; !ok {
		return ErrNotFound
	}
	delete(r.m, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
