package memory

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/mwops/mwops/domain"
	"github.com/mwops/mwops/domain/model"
)

// InMemoryPlatformStateRepository is a thread-safe in-memory implementation,
// including the per-platform poll lease table.
type InMemoryPlatformStateRepository struct {
	mu     sync.Mutex
	items  map[int64]*model.PlatformState
	leases map[int64]*model.PollLease
}

func NewInMemoryPlatformStateRepository() *InMemoryPlatformStateRepository {
	return &InMemoryPlatformStateRepository{
		items:  make(map[int64]*model.PlatformState),
		leases: make(map[int64]*model.PollLease),
	}
}

func copyState(s *model.PlatformState) *model.PlatformState {
	cp := *s
	if s.ExtraData != nil {
		cp.ExtraData = maps.Clone(s.ExtraData)
	}
	return &cp
}

func (r *InMemoryPlatformStateRepository) Load(_ context.Context, platformID int64) (*model.PlatformState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.items[platformID]
	if !ok {
		return nil, nil
	}
	return copyState(v), nil
}

func (r *InMemoryPlatformStateRepository) Upsert(_ context.Context, s *model.PlatformState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[s.PlatformID] = copyState(s)
	return nil
}

func (r *InMemoryPlatformStateRepository) Delete(_ context.Context, platformID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, platformID)
	return nil
}

func (r *InMemoryPlatformStateRepository) AcquirePollLease(_ context.Context, platformID int64, holder string, ttl time.Duration) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	if l, ok := r.leases[platformID]; ok && l.ExpiresAt.After(now) && l.Holder != holder {
		return false, nil
	}
	r.leases[platformID] = &model.PollLease{PlatformID: platformID, Holder: holder, ExpiresAt: now.Add(ttl)}
	return true, nil
}

func (r *InMemoryPlatformStateRepository) ReleasePollLease(_ context.Context, platformID int64, holder string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l, ok := r.leases[platformID]; ok && l.Holder == holder {
		delete(r.leases, platformID)
	}
	return nil
}

var _ domain.PlatformStateRepository = (*InMemoryPlatformStateRepository)(nil)
