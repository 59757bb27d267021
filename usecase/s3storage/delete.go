package s3storage

import (
	"context"

	"github.com/mwops/mwops/domain/model"
)

// DeleteInput identifies the object-storage record to delete.
type DeleteInput struct {
	ID int64 `json:"id"`
}

// Delete removes an object-storage record.
func (u *UseCase) Delete(ctx context.Context, in *DeleteInput) error {
	if in == nil || in.ID == 0 {
		return model.ErrS3StorageNotFound
	}
	return u.Repos.S3Storage.Delete(ctx, in.ID)
}
