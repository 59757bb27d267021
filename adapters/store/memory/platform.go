package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/mwops/mwops/domain"
	"github.com/mwops/mwops/domain/model"
)

// InMemoryPlatformRepository is a thread-safe in-memory implementation.
type InMemoryPlatformRepository struct {
	mu    sync.RWMutex
	items map[int64]*model.PostgresPlatform
	seq   int64
}

func NewInMemoryPlatformRepository() *InMemoryPlatformRepository {
	return &InMemoryPlatformRepository{items: make(map[int64]*model.PostgresPlatform)}
}

func (r *InMemoryPlatformRepository) Create(_ context.Context, p *model.PostgresPlatform) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.items {
		if v.Name == p.Name && v.ProjectID == p.ProjectID {
			return model.NewValidationError("name", "already exists in project")
		}
	}
	if p.ID == 0 {
		r.seq++
		p.ID = r.seq
	}
	if p.UUID == "" {
		p.UUID = uuid.NewString()
	}
	cp := *p
	r.items[p.ID] = &cp
	return nil
}

func (r *InMemoryPlatformRepository) Get(_ context.Context, id int64) (*model.PostgresPlatform, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.items[id]
	if !ok {
		return nil, model.ErrPlatformNotFound
	}
	cp := *v
	return &cp, nil
}

func (r *InMemoryPlatformRepository) List(_ context.Context) ([]*model.PostgresPlatform, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.PostgresPlatform, 0, len(r.items))
	for _, v := range r.items {
		cp := *v
		out = append(out, &cp)
	}
	sortByID(out, func(p *model.PostgresPlatform) int64 { return p.ID })
	return out, nil
}

func (r *InMemoryPlatformRepository) Update(_ context.Context, p *model.PostgresPlatform) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[p.ID]; !ok {
		return model.ErrPlatformNotFound
	}
	cp := *p
	r.items[p.ID] = &cp
	return nil
}

func (r *InMemoryPlatformRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return model.ErrPlatformNotFound
	}
	delete(r.items, id)
	return nil
}

var _ domain.PlatformRepository = (*InMemoryPlatformRepository)(nil)
