package platform

import (
	"context"
	"fmt"

	"github.com/mwops/mwops/domain"
	"github.com/mwops/mwops/domain/model"
)

// ListActionsInput identifies the platform to list actions for.
type ListActionsInput struct {
	ID int64 `json:"id"`
}

// ListActionsOutput contains the names of the currently available actions.
type ListActionsOutput struct {
	Actions []string `json:"actions"`
}

// ExecuteActionInput names an action to run with its arguments.
type ExecuteActionInput struct {
	ID   int64          `json:"id"`
	Name string         `json:"name"`
	Args map[string]any `json:"args"`
}

// ExecuteActionOutput contains the action's result map.
type ExecuteActionOutput struct {
	Result map[string]any `json:"result"`
}

// ListActions returns the registered actions whose availability predicate
// holds for the platform's current state.
func (u *UseCase) ListActions(ctx context.Context, in *ListActionsInput) (*ListActionsOutput, error) {
	if in == nil || in.ID == 0 {
		return nil, model.ErrPlatformNotFound
	}
	ac, err := u.actionContext(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	out := &ListActionsOutput{Actions: []string{}}
	for _, name := range u.actions.Names() {
		a, _ := u.actions.Get(name)
		if a.Available(ctx, ac) {
			out.Actions = append(out.Actions, name)
		}
	}
	return out, nil
}

// ExecuteAction runs a named action against the live platform. An unknown
// name is an error; a known name whose predicate returns false yields
// ErrActionUnavailable.
func (u *UseCase) ExecuteAction(ctx context.Context, in *ExecuteActionInput) (*ExecuteActionOutput, error) {
	if in == nil || in.ID == 0 {
		return nil, model.ErrPlatformNotFound
	}
	a, ok := u.actions.Get(in.Name)
	if !ok {
		return nil, fmt.Errorf("action %q: %w", in.Name, model.ErrActionNotFound)
	}
	ac, err := u.actionContext(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if !a.Available(ctx, ac) {
		return nil, fmt.Errorf("action %q: %w", in.Name, model.ErrActionUnavailable)
	}
	result, err := a.Run(ctx, ac, in.Args)
	if err != nil {
		return nil, fmt.Errorf("action %q: %w", in.Name, err)
	}
	return &ExecuteActionOutput{Result: result}, nil
}

// actionContext resolves the platform, its state, and a live cluster
// handle for action predicates and runs.
func (u *UseCase) actionContext(ctx context.Context, id int64) (*domain.ActionContext, error) {
	p, err := u.Repos.Platform.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	state, err := u.Repos.State.Load(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	kubeconfig, err := u.resolveKubeconfig(ctx, p)
	if err != nil {
		return nil, err
	}
	handle, err := u.Gateway.Resolve(ctx, kubeconfig)
	if err != nil {
		return nil, err
	}
	return &domain.ActionContext{
		Platform:  p,
		State:     state,
		Handle:    handle,
		Namespace: u.resolveNamespace(ctx, p),
	}, nil
}
