package cluster

import (
	"context"
	"fmt"
	"time"

	"github.com/mwops/mwops/domain/model"
)

// UpdateInput carries a partial cluster update. Nil fields are left
// unchanged.
type UpdateInput struct {
	ID         int64   `json:"id"`
	Name       *string `json:"name"`
	Type       *string `json:"type"`
	Kubeconfig *string `json:"kubeconfig"`
}

// UpdateOutput contains the updated cluster record.
type UpdateOutput struct {
	Cluster *model.Cluster `json:"cluster"`
}

// Update applies a patch to a stored cluster record and revalidates the
// type/credential pairing on the result.
func (u *UseCase) Update(ctx context.Context, in *UpdateInput) (*UpdateOutput, error) {
	if in == nil {
		return nil, fmt.Errorf("UpdateInput is required")
	}
	c, err := u.Repos.Cluster.Get(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		c.Name = *in.Name
	}
	if in.Type != nil {
		c.Type = model.ClusterType(*in.Type)
	}
	if in.Kubeconfig != nil {
		c.Kubeconfig = *in.Kubeconfig
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	c.UpdatedAt = time.Now().UTC()
	if err := u.Repos.Cluster.Update(ctx, c); err != nil {
		return nil, err
	}
	return &UpdateOutput{Cluster: c}, nil
}
