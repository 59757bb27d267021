package cluster

import (
	"context"
	"time"

	"github.com/mwops/mwops/domain/model"
)

// CreateInput contains the data required to register a target cluster.
type CreateInput struct {
	Name string `json:"name"`
	// Type is "in-cluster" or "remote".
	Type string `json:"type"`
	// Kubeconfig is required iff Type is "remote".
	Kubeconfig string `json:"kubeconfig"`
}

// CreateOutput contains the created cluster record.
type CreateOutput struct {
	Cluster *model.Cluster `json:"cluster"`
}

// Create persists a new cluster record after checking the type/credential
// pairing.
func (u *UseCase) Create(ctx context.Context, in *CreateInput) (*CreateOutput, error) {
	if in == nil || in.Name == "" {
		return nil, model.NewValidationError("name", "name is required")
	}
	now := time.Now().UTC()
	c := &model.Cluster{
		Name:       in.Name,
		Type:       model.ClusterType(in.Type),
		Kubeconfig: in.Kubeconfig,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := u.Repos.Cluster.Create(ctx, c); err != nil {
		return nil, err
	}
	return &CreateOutput{Cluster: c}, nil
}
