package platform

import (
	"context"

	"github.com/mwops/mwops/domain/model"
	"github.com/mwops/mwops/internal/render"
)

// ListInput carries list options. Empty for now.
type ListInput struct{}

// ListOutput contains all platforms ordered by id.
type ListOutput struct {
	Platforms []*model.PostgresPlatform `json:"platforms"`
}

// List retrieves all platforms.
func (u *UseCase) List(ctx context.Context, _ *ListInput) (*ListOutput, error) {
	items, err := u.Repos.Platform.List(ctx)
	if err != nil {
		return nil, err
	}
	return &ListOutput{Platforms: items}, nil
}

// ListImagesOutput contains the image selector options of the kind.
type ListImagesOutput struct {
	Images []render.ImageOption `json:"images"`
}

// ListImages surfaces the shipped image catalog for UI selectors.
func (u *UseCase) ListImages(ctx context.Context) (*ListImagesOutput, error) {
	options, err := u.Renderer.Images(model.PlatformKindPostgres)
	if err != nil {
		return nil, err
	}
	return &ListImagesOutput{Images: options}, nil
}
