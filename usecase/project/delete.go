package project

import (
	"context"

	"github.com/mwops/mwops/domain/model"
)

// DeleteInput identifies the project to delete.
type DeleteInput struct {
	ID int64 `json:"id"`
}

// Delete removes a project. Platforms referencing it keep the store's
// foreign-key protection: the delete fails with a conflict while any
// platform still points here.
func (u *UseCase) Delete(ctx context.Context, in *DeleteInput) error {
	if in == nil || in.ID == 0 {
		return model.ErrProjectNotFound
	}
	return u.Repos.Project.Delete(ctx, in.ID)
}
