package cluster

import (
	"context"

	"github.com/mwops/mwops/domain/model"
)

// ListInput carries list options. Empty for now.
type ListInput struct{}

// ListOutput contains all cluster records ordered by id.
type ListOutput struct {
	Clusters []*model.Cluster `json:"clusters"`
}

// List retrieves all cluster records.
func (u *UseCase) List(ctx context.Context, _ *ListInput) (*ListOutput, error) {
	items, err := u.Repos.Cluster.List(ctx)
	if err != nil {
		return nil, err
	}
	return &ListOutput{Clusters: items}, nil
}
