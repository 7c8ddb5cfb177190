package product

import (
	"context"
	"sync"
)

// MemoryRepository keeps products in process, in insertion order.
type MemoryRepository struct {
	mu    sync.RWMutex
	order []string
	m     map[string]Product
}

// NewMemoryRepository returns a repository seeded with products.
func NewMemoryRepository(products ...Product) *MemoryRepository {
	r := &MemoryRepository{m: make(map[string]Product)}
	for _, p := range products {
		r.order = append(r.order, p.ID)
		r.m[p.ID] = p
	}
	return r
}

func (r *MemoryRepository) List(_ context.Context) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Product, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.m[id])
	}
	return out, nil
}

func (r *MemoryRepository) Get(_ context.Context, id string) (Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.m[id]
	if !ok {
		return Product{}, ErrNotFound
	}
	return p, nil
}

func (r *MemoryRepository) Create(_ context.Context, p Product) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.m[p.ID]; !ok {
		r.order = append(r.order, p.ID)
	}
	r.m[p.ID] = p
	return p, nil
}

func (r *MemoryRepository) Update(_ context.Context, id string, p Product) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.m[id]; !ok {
		return Product{}, ErrNotFound
	}
	p.ID = id
	r.m[id] = p
	return p, nil
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
