package memory

import (
	"context"
	"sync"

	"github.com/mwops/mwops/domain"
	"github.com/mwops/mwops/domain/model"
)

// InMemoryClusterRepository is a thread-safe in-memory implementation.
type InMemoryClusterRepository struct {
	mu    sync.RWMutex
	items map[int64]*model.Cluster
	seq   int64
}

func NewInMemoryClusterRepository() *InMemoryClusterRepository {
	return &InMemoryClusterRepository{items: make(map[int64]*model.Cluster)}
}

func (r *InMemoryClusterRepository) Create(_ context.Context, c *model.Cluster) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.items {
		if v.Name == c.Name {
			return model.NewValidationError("name", "already exists")
		}
	}
	if c.ID == 0 {
		r.seq++
		c.ID = r.seq
	}
	cp := *c
	r.items[c.ID] = &cp
	return nil
}

func (r *InMemoryClusterRepository) Get(_ context.Context, id int64) (*model.Cluster, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.items[id]
	if !ok {
		return nil, model.ErrClusterNotFound
	}
	cp := *v
	return &cp, nil
}

func (r *InMemoryClusterRepository) List(_ context.Context) ([]*model.Cluster, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.Cluster, 0, len(r.items))
	for _, v := range r.items {
		cp := *v
		out = append(out, &cp)
	}
	sortByID(out, func(c *model.Cluster) int64 { return c.ID })
	return out, nil
}

func (r *InMemoryClusterRepository) Update(_ context.Context, c *model.Cluster) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[c.ID]; !ok {
		return model.ErrClusterNotFound
	}
	cp := *c
	r.items[c.ID] = &cp
	return nil
}

func (r *InMemoryClusterRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return model.ErrClusterNotFound
	}
	delete(r.items, id)
	return nil
}

var _ domain.ClusterRepository = (*InMemoryClusterRepository)(nil)
