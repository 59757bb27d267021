package s3storage

import (
	"context"

	"github.com/mwops/mwops/domain/model"
)

// GetInput identifies an object-storage record.
type GetInput struct {
	ID int64 `json:"id"`
}

// GetOutput contains the requested record with the secret key redacted.
type GetOutput struct {
	S3Storage *model.S3Storage `json:"s3_storage"`
}

// Get retrieves a record by id.
func (u *UseCase) Get(ctx context.Context, in *GetInput) (*GetOutput, error) {
	if in == nil || in.ID == 0 {
		return nil, model.ErrS3StorageNotFound
	}
	s, err := u.Repos.S3Storage.Get(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	return &GetOutput{S3Storage: redactRecord(s)}, nil
}
