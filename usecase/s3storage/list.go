package s3storage

import (
	"context"

	"github.com/mwops/mwops/domain/model"
)

// ListInput carries list options. Empty for now.
type ListInput struct{}

// ListOutput contains all records, secret keys redacted, ordered by id.
type ListOutput struct {
	S3Storages []*model.S3Storage `json:"s3_storages"`
}

// List retrieves all object-storage records.
func (u *UseCase) List(ctx context.Context, _ *ListInput) (*ListOutput, error) {
	items, err := u.Repos.S3Storage.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*model.S3Storage, 0, len(items))
	for _, s := range items {
		out = append(out, redactRecord(s))
	}
	return &ListOutput{S3Storages: out}, nil
}
