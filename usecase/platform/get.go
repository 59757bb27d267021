package platform

import (
	"context"

	"github.com/mwops/mwops/domain/model"
)

// GetInput identifies a platform.
type GetInput struct {
	ID int64 `json:"id"`
}

// GetOutput contains the requested platform.
type GetOutput struct {
	Platform *model.PostgresPlatform `json:"platform"`
}

// Get retrieves a platform by id.
func (u *UseCase) Get(ctx context.Context, in *GetInput) (*GetOutput, error) {
	if in == nil || in.ID == 0 {
		return nil, model.ErrPlatformNotFound
	}
	p, err := u.Repos.Platform.Get(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	return &GetOutput{Platform: p}, nil
}
