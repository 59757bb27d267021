package project

import (
	"context"

	"github.com/mwops/mwops/domain/model"
)

// ListInput carries list options. Empty for now.
type ListInput struct{}

// ListOutput contains all projects ordered by id.
type ListOutput struct {
	Projects []*model.Project `json:"projects"`
}

// List retrieves all projects.
func (u *UseCase) List(ctx context.Context, _ *ListInput) (*ListOutput, error) {
	items, err := u.Repos.Project.List(ctx)
	if err != nil {
		return nil, err
	}
	return &ListOutput{Projects: items}, nil
}
