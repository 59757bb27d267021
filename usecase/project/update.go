package project

import (
	"context"
	"fmt"
	"time"

	"github.com/mwops/mwops/domain/model"
)

// UpdateInput carries a partial project update. Nil fields are left
// unchanged. Name is immutable: it anchors the namespace of every
// platform in the project.
type UpdateInput struct {
	ID    int64   `json:"id"`
	Name  *string `json:"name"`
	Title *string `json:"title"`
}

// UpdateOutput contains the updated project.
type UpdateOutput struct {
	Project *model.Project `json:"project"`
}

// Update applies a patch to a stored project.
func (u *UseCase) Update(ctx context.Context, in *UpdateInput) (*UpdateOutput, error) {
	if in == nil {
		return nil, fmt.Errorf("UpdateInput is required")
	}
	p, err := u.Repos.Project.Get(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if in.Name != nil && *in.Name != p.Name {
		return nil, model.NewValidationError("name", "Field 'name' is immutable")
	}
	if in.Title != nil {
		p.Title = *in.Title
	}
	p.UpdatedAt = time.Now().UTC()
	if err := u.Repos.Project.Update(ctx, p); err != nil {
		return nil, err
	}
	return &UpdateOutput{Project: p}, nil
}
