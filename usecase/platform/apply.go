package platform

import (
	"context"
	"fmt"

	"github.com/mwops/mwops/domain/model"
	"github.com/mwops/mwops/internal/logging"
	"github.com/mwops/mwops/internal/render"
)

// ApplyInput identifies the platform to deploy.
type ApplyInput struct {
	ID int64 `json:"id"`
}

// ApplyOutput reports what the apply did against the cluster.
type ApplyOutput struct {
	// Created is the number of resources newly created.
	Created int `json:"created"`
	// Existing is the number of resources that already existed.
	Existing int `json:"existing"`
}

// Apply renders the platform's manifests and submits each document as a
// create, in render order. AlreadyExists is success, so repeated calls
// converge: a later Apply finishes the work an earlier one left undone.
// On completion the state is pending until the next Poll.
func (u *UseCase) Apply(ctx context.Context, in *ApplyInput) (*ApplyOutput, error) {
	if in == nil || in.ID == 0 {
		return nil, model.ErrPlatformNotFound
	}
	logger := logging.FromContext(ctx)

	p, err := u.Repos.Platform.Get(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if err := u.validateSpec(p); err != nil {
		return nil, err
	}

	namespace := u.resolveNamespace(ctx, p)
	vars, err := u.templateVars(ctx, p, namespace)
	if err != nil {
		return nil, err
	}
	stream, err := u.Renderer.Render(p.Kind(), vars)
	if err != nil {
		return nil, fmt.Errorf("render %s templates: %w", p.Kind(), err)
	}
	docs, err := render.SplitDocuments(stream)
	if err != nil {
		return nil, fmt.Errorf("split rendered manifests: %w", err)
	}
	if len(docs) == 0 {
		logger.Warn(ctx, "no manifests rendered, nothing to apply", "platform", p.Name)
		return &ApplyOutput{}, nil
	}

	kubeconfig, err := u.resolveKubeconfig(ctx, p)
	if err != nil {
		return nil, err
	}
	handle, err := u.Gateway.Resolve(ctx, kubeconfig)
	if err != nil {
		return nil, err
	}
	if err := handle.EnsureNamespace(ctx, namespace); err != nil {
		return nil, err
	}

	out := &ApplyOutput{}
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		created, err := handle.CreateDocument(ctx, doc, namespace)
		if err != nil {
			return out, err
		}
		if created {
			out.Created++
		} else {
			out.Existing++
		}
	}

	state, err := u.Repos.State.Load(ctx, p.ID)
	if err != nil {
		return out, err
	}
	if state == nil {
		state = &model.PlatformState{PlatformID: p.ID}
	}
	state.Active = true
	state.Status = model.StatusPending
	state.Message = "Deployment submitted"
	if err := u.Repos.State.Upsert(ctx, state); err != nil {
		return out, err
	}
	logger.Info(ctx, "platform applied", "platform", p.Name,
		"created", out.Created, "existing", out.Existing)
	return out, nil
}
