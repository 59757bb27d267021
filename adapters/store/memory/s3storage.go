package memory

import (
	"context"
	"sync"

	"github.com/mwops/mwops/domain"
	"github.com/mwops/mwops/domain/model"
)

// InMemoryS3StorageRepository is a thread-safe in-memory implementation.
type InMemoryS3StorageRepository struct {
	mu    sync.RWMutex
	items map[int64]*model.S3Storage
	seq   int64
}

func NewInMemoryS3StorageRepository() *InMemoryS3StorageRepository {
	return &InMemoryS3StorageRepository{items: make(map[int64]*model.S3Storage)}
}

func (r *InMemoryS3StorageRepository) Create(_ context.Context, s *model.S3Storage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.items {
		if v.Name == s.Name {
			return model.NewValidationError("name", "already exists")
		}
	}
	if s.ID == 0 {
		r.seq++
		s.ID = r.seq
	}
	cp := *s
	r.items[s.ID] = &cp
	return nil
}

func (r *InMemoryS3StorageRepository) Get(_ context.Context, id int64) (*model.S3Storage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.items[id]
	if !ok {
		return nil, model.ErrS3StorageNotFound
	}
	cp := *v
	return &cp, nil
}

func (r *InMemoryS3StorageRepository) List(_ context.Context) ([]*model.S3Storage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.S3Storage, 0, len(r.items))
	for _, v := range r.items {
		cp := *v
		out = append(out, &cp)
	}
	sortByID(out, func(s *model.S3Storage) int64 { return s.ID })
	return out, nil
}

func (r *InMemoryS3StorageRepository) Update(_ context.Context, s *model.S3Storage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[s.ID]; !ok {
		return model.ErrS3StorageNotFound
	}
	cp := *s
	r.items[s.ID] = &cp
	return nil
}

func (r *InMemoryS3StorageRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return model.ErrS3StorageNotFound
	}
	delete(r.items, id)
	return nil
}

var _ domain.S3StorageRepository = (*InMemoryS3StorageRepository)(nil)
