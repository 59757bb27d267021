package platform

import (
	"context"
	"fmt"

	"github.com/mwops/mwops/domain/model"
)

// UpdateInput carries a partial update. Nil fields are left unchanged.
// Immutable fields present with a value different from the stored one are
// rejected with a field-scoped validation error.
type UpdateInput struct {
	ID    int64                        `json:"id"`
	Patch *model.PostgresPlatformPatch `json:"patch"`
}

// UpdateOutput contains the updated platform.
type UpdateOutput struct {
	Platform *model.PostgresPlatform `json:"platform"`
}

// Update applies a patch to a stored platform, enforcing immutability and
// revalidating the patched spec before persisting.
func (u *UseCase) Update(ctx context.Context, in *UpdateInput) (*UpdateOutput, error) {
	if in == nil || in.Patch == nil {
		return nil, fmt.Errorf("UpdateInput.Patch is required")
	}
	p, err := u.Repos.Platform.Get(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	ev := &UpdateEvent{Platform: p, Patch: in.Patch}
	if err := u.Hooks.BeforeUpdate.Run(ctx, ev); err != nil {
		return nil, unwrapHookError(err)
	}
	applyPatch(p, in.Patch)
	p.UpdatedAt = u.now().UTC()
	if err := u.Repos.Platform.Update(ctx, p); err != nil {
		return nil, err
	}
	if err := u.Hooks.AfterUpdate.Run(ctx, ev); err != nil {
		return nil, unwrapHookError(err)
	}
	return &UpdateOutput{Platform: p}, nil
}
