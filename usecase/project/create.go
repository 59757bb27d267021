package project

import (
	"context"
	"fmt"
	"time"

	"github.com/mwops/mwops/domain/model"
	"github.com/mwops/mwops/internal/naming"
)

// CreateInput contains the data required to create a new project.
type CreateInput struct {
	// Name doubles as the Kubernetes namespace of the project's platforms,
	// so it must be a valid DNS label.
	Name  string `json:"name"`
	Title string `json:"title"`
}

// CreateOutput contains the created project.
type CreateOutput struct {
	Project *model.Project `json:"project"`
}

// Create persists a new project.
func (u *UseCase) Create(ctx context.Context, in *CreateInput) (*CreateOutput, error) {
	if in == nil {
		return nil, fmt.Errorf("CreateInput is required")
	}
	if err := naming.ValidateProjectName(in.Name); err != nil {
		return nil, model.NewValidationError("name", "%v", err)
	}
	now := time.Now().UTC()
	p := &model.Project{Name: in.Name, Title: in.Title, CreatedAt: now, UpdatedAt: now}
	if err := u.Repos.Project.Create(ctx, p); err != nil {
		return nil, err
	}
	return &CreateOutput{Project: p}, nil
}
