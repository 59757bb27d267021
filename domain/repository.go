package domain

import (
	"context"
	"time"

	"github.com/mwops/mwops/domain/model"
)

// ProjectRepository stores and retrieves Project records.
type ProjectRepository interface {
	Create(ctx context.Context, p *model.Project) error
	Get(ctx context.Context, id int64) (*model.Project, error)
	List(ctx context.Context) ([]*model.Project, error)
	Update(ctx context.Context, p *model.Project) error
	Delete(ctx context.Context, id int64) error
}

// ClusterRepository stores and retrieves Cluster records.
type ClusterRepository interface {
	Create(ctx context.Context, c *model.Cluster) error
	Get(ctx context.Context, id int64) (*model.Cluster, error)
	List(ctx context.Context) ([]*model.Cluster, error)
	Update(ctx context.Context, c *model.Cluster) error
	Delete(ctx context.Context, id int64) error
}

// S3StorageRepository stores and retrieves S3Storage records.
type S3StorageRepository interface {
	Create(ctx context.Context, s *model.S3Storage) error
	Get(ctx context.Context, id int64) (*model.S3Storage, error)
	List(ctx context.Context) ([]*model.S3Storage, error)
	Update(ctx context.Context, s *model.S3Storage) error
	Delete(ctx context.Context, id int64) error
}

// PlatformRepository stores and retrieves PostgresPlatform records.
type PlatformRepository interface {
	Create(ctx context.Context, p *model.PostgresPlatform) error
	Get(ctx context.Context, id int64) (*model.PostgresPlatform, error)
	List(ctx context.Context) ([]*model.PostgresPlatform, error)
	Update(ctx context.Context, p *model.PostgresPlatform) error
	Delete(ctx context.Context, id int64) error
}

// PlatformStateRepository persists PlatformState records 1:1 with
// platforms. Upsert must be atomic with respect to concurrent upserts for
// the same platform; last writer wins on the row.
type PlatformStateRepository interface {
	// Load returns nil (not an error) when no state exists yet.
	Load(ctx context.Context, platformID int64) (*model.PlatformState, error)
	Upsert(ctx context.Context, s *model.PlatformState) error
	Delete(ctx context.Context, platformID int64) error

	// AcquirePollLease grabs the single-concurrency poll key for a platform.
	// It returns false when another holder owns an unexpired lease.
	AcquirePollLease(ctx context.Context, platformID int64, holder string, ttl time.Duration) (bool, error)
	ReleasePollLease(ctx context.Context, platformID int64, holder string) error
}
