package domain

import (
	"context"
	"fmt"
	"sort"

	"github.com/mwops/mwops/domain/model"
)

// ActionContext carries the live platform an action operates on. The
// handle is already resolved against the platform's cluster.
type ActionContext struct {
	Platform  *model.PostgresPlatform
	State     *model.PlatformState // nil when no state exists yet
	Handle    model.ClusterHandle
	Namespace string
}

// Action is a named, kind-specific, side-effecting operation invoked
// against a live platform (e.g. trigger a backup).
type Action interface {
	// Available reports whether the action can run for the current state.
	Available(ctx context.Context, ac *ActionContext) bool
	// Run executes the action and returns a result map for the caller.
	Run(ctx context.Context, ac *ActionContext, args map[string]any) (map[string]any, error)
}

// ActionRegistry is a per-kind table of named actions. It is populated at
// service construction time and read-only afterward, so it is safe to read
// concurrently without locking.
type ActionRegistry struct {
	actions map[string]Action
}

// NewActionRegistry returns an empty registry.
func NewActionRegistry() *ActionRegistry {
	return &ActionRegistry{actions: map[string]Action{}}
}

// Register adds an action. Registering the same name twice in one registry
// is a construction error.
func (r *ActionRegistry) Register(name string, a Action) error {
	if name == "" {
		return fmt.Errorf("action name must not be empty")
	}
	if _, ok := r.actions[name]; ok {
		return fmt.Errorf("action %q registered twice", name)
	}
	r.actions[name] = a
	return nil
}

// Get looks up an action by name.
func (r *ActionRegistry) Get(name string) (Action, bool) {
	a, ok := r.actions[name]
	return a, ok
}

// Names returns the registered action names in sorted order.
func (r *ActionRegistry) Names() []string {
	out := make([]string, 0, len(r.actions))
	for name := range r.actions {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// MergeActionRegistries composes registries base-first: later registries
// inherit everything before them and may override by name. This replaces
// inheritance-chain collection with explicit composition.
func MergeActionRegistries(regs ...*ActionRegistry) *ActionRegistry {
	out := NewActionRegistry()
	for _, r := range regs {
		if r == nil {
			continue
		}
		for name, a := range r.actions {
			out.actions[name] = a
		}
	}
	return out
}
