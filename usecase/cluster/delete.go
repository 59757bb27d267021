package cluster

import (
	"context"

	"github.com/mwops/mwops/domain/model"
)

// DeleteInput identifies the cluster record to delete.
type DeleteInput struct {
	ID int64 `json:"id"`
}

// Delete removes a cluster record.
func (u *UseCase) Delete(ctx context.Context, in *DeleteInput) error {
	if in == nil || in.ID == 0 {
		return model.ErrClusterNotFound
	}
	return u.Repos.Cluster.Delete(ctx, in.ID)
}
