package platform

import (
	"context"

	"github.com/mwops/mwops/domain/model"
)

// DeleteInput identifies the platform to delete.
type DeleteInput struct {
	ID int64 `json:"id"`
}

// Delete removes a platform record and its state row. A platform whose
// state is still active must be decommissioned first; the before-delete
// hook rejects the call otherwise.
func (u *UseCase) Delete(ctx context.Context, in *DeleteInput) error {
	if in == nil || in.ID == 0 {
		return model.ErrPlatformNotFound
	}
	p, err := u.Repos.Platform.Get(ctx, in.ID)
	if err != nil {
		return err
	}
	state, err := u.Repos.State.Load(ctx, p.ID)
	if err != nil {
		return err
	}
	ev := &DeleteEvent{Platform: p, State: state}
	if err := u.Hooks.BeforeDelete.Run(ctx, ev); err != nil {
		return unwrapHookError(err)
	}
	if err := u.Repos.Platform.Delete(ctx, p.ID); err != nil {
		return err
	}
	if err := u.Hooks.AfterDelete.Run(ctx, ev); err != nil {
		return unwrapHookError(err)
	}
	return nil
}
