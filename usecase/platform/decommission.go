package platform

import (
	"context"
	"fmt"

	"github.com/mwops/mwops/domain/model"
	"github.com/mwops/mwops/internal/logging"
	"github.com/mwops/mwops/internal/render"
)

// DecommissionInput identifies the platform to tear down.
type DecommissionInput struct {
	ID int64 `json:"id"`
}

// DecommissionOutput reports what the teardown did against the cluster.
type DecommissionOutput struct {
	// Deleted is the number of resources actually removed.
	Deleted int `json:"deleted"`
	// Missing is the number of resources that were already gone.
	Missing int `json:"missing"`
}

// Decommission renders the same manifest set used by Apply and deletes
// each document in render order; the operator handles dependency ordering
// on its side. NotFound is success. Credentials in the state row are
// cleared and the record is kept with active=false.
func (u *UseCase) Decommission(ctx context.Context, in *DecommissionInput) (*DecommissionOutput, error) {
	if in == nil || in.ID == 0 {
		return nil, model.ErrPlatformNotFound
	}
	logger := logging.FromContext(ctx)

	p, err := u.Repos.Platform.Get(ctx, in.ID)
	if err != nil {
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

	out := &DecommissionOutput{}
	if len(docs) > 0 {
		kubeconfig, err := u.resolveKubeconfig(ctx, p)
		if err != nil {
			return nil, err
		}
		handle, err := u.Gateway.Resolve(ctx, kubeconfig)
		if err != nil {
			return nil, err
		}
		for _, doc := range docs {
			if err := ctx.Err(); err != nil {
				return out, err
			}
			deleted, err := handle.DeleteDocument(ctx, doc, namespace)
			if err != nil {
				return out, err
			}
			if deleted {
				out.Deleted++
			} else {
				out.Missing++
			}
		}
	}

	state, err := u.Repos.State.Load(ctx, p.ID)
	if err != nil {
		return out, err
	}
	if state == nil {
		state = &model.PlatformState{PlatformID: p.ID}
	}
	state.ClearCredentials()
	state.Active = false
	state.Status = model.StatusOffline
	state.Message = "Cluster is stopped"
	if err := u.Repos.State.Upsert(ctx, state); err != nil {
		return out, err
	}
	logger.Info(ctx, "platform decommissioned", "platform", p.Name,
		"deleted", out.Deleted, "missing", out.Missing)
	return out, nil
}
