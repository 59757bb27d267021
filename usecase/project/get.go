package project

import (
	"context"

	"github.com/mwops/mwops/domain/model"
)

// GetInput identifies a project.
type GetInput struct {
	ID int64 `json:"id"`
}

// GetOutput contains the requested project.
type GetOutput struct {
	Project *model.Project `json:"project"`
}

// Get retrieves a project by id.
func (u *UseCase) Get(ctx context.Context, in *GetInput) (*GetOutput, error) {
	if in == nil || in.ID == 0 {
		return nil, model.ErrProjectNotFound
	}
	p, err := u.Repos.Project.Get(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	return &GetOutput{Project: p}, nil
}
