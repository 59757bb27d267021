package cluster

import (
	"context"

	"github.com/mwops/mwops/domain/model"
)

// GetInput identifies a cluster record.
type GetInput struct {
	ID int64 `json:"id"`
}

// GetOutput contains the requested cluster record.
type GetOutput struct {
	Cluster *model.Cluster `json:"cluster"`
}

// Get retrieves a cluster record by id.
func (u *UseCase) Get(ctx context.Context, in *GetInput) (*GetOutput, error) {
	if in == nil || in.ID == 0 {
		return nil, model.ErrClusterNotFound
	}
	c, err := u.Repos.Cluster.Get(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	return &GetOutput{Cluster: c}, nil
}
