package memory

import (
	"context"
	"sync"

	"github.com/mwops/mwops/domain"
	"github.com/mwops/mwops/domain/model"
)

// InMemoryProjectRepository is a thread-safe in-memory implementation.
type InMemoryProjectRepository struct {
	mu    sync.RWMutex
	items map[int64]*model.Project
	seq   int64
}

func NewInMemoryProjectRepository() *InMemoryProjectRepository {
	return &InMemoryProjectRepository{items: make(map[int64]*model.Project)}
}

func (r *InMemoryProjectRepository) Create(_ context.Context, p *model.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.items {
		if v.Name == p.Name {
			return model.NewValidationError("name", "already exists")
		}
	}
	if p.ID == 0 {
		r.seq++
		p.ID = r.seq
	}
	cp := *p
	r.items[p.ID] = &cp
	return nil
}

func (r *InMemoryProjectRepository) Get(_ context.Context, id int64) (*model.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.items[id]
	if !ok {
		return nil, model.ErrProjectNotFound
	}
	cp := *v
	return &cp, nil
}

func (r *InMemoryProjectRepository) List(_ context.Context) ([]*model.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.Project, 0, len(r.items))
	for _, v := range r.items {
		cp := *v
		out = append(out, &cp)
	}
	sortByID(out, func(p *model.Project) int64 { return p.ID })
	return out, nil
}

func (r *InMemoryProjectRepository) Update(_ context.Context, p *model.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[p.ID]; !ok {
		return model.ErrProjectNotFound
	}
	cp := *p
	r.items[p.ID] = &cp
	return nil
}

func (r *InMemoryProjectRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return model.ErrProjectNotFound
	}
	delete(r.items, id)
	return nil
}

var _ domain.ProjectRepository = (*InMemoryProjectRepository)(nil)
