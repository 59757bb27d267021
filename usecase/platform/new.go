package platform

import (
	"fmt"
	"time"

	"github.com/mwops/mwops/domain"
	"github.com/mwops/mwops/domain/hook"
	"github.com/mwops/mwops/domain/model"
	"github.com/mwops/mwops/internal/render"
	"github.com/mwops/mwops/internal/secrets"
)

// Options configures a platform UseCase.
type Options struct {
	Repos    *Repos
	Gateway  model.ClusterGateway
	Renderer *render.Renderer
	Cipher   *secrets.Cipher

	// Customize runs after the built-in hooks and actions are registered
	// and before the chains are finalized. A composing service uses it to
	// contribute or override hooks and actions by name.
	Customize func(u *UseCase) error

	// Now overrides the clock, used by tests.
	Now func() time.Time
}

// New constructs a platform UseCase, registers the built-in lifecycle
// hooks and actions, and finalizes the hook chains. A hook ordering cycle
// or a duplicate action registration fails here, not at request time.
func New(opts *Options) (*UseCase, error) {
	if opts == nil || opts.Repos == nil {
		return nil, fmt.Errorf("platform: Repos is required")
	}
	u := &UseCase{
		Repos:    opts.Repos,
		Gateway:  opts.Gateway,
		Renderer: opts.Renderer,
		Cipher:   opts.Cipher,
		Hooks: Hooks{
			BeforeCreate: hook.NewChain[*CreateEvent](),
			AfterCreate:  hook.NewChain[*CreateEvent](),
			BeforeUpdate: hook.NewChain[*UpdateEvent](),
			AfterUpdate:  hook.NewChain[*UpdateEvent](),
			BeforeDelete: hook.NewChain[*DeleteEvent](),
			AfterDelete:  hook.NewChain[*DeleteEvent](),
		},
		actions: domain.NewActionRegistry(),
		now:     opts.Now,
	}
	if u.now == nil {
		u.now = time.Now
	}

	u.registerDefaultHooks()
	if err := u.actions.Register("backup", &backupAction{now: u.now}); err != nil {
		return nil, err
	}

	if opts.Customize != nil {
		if err := opts.Customize(u); err != nil {
			return nil, err
		}
	}

	for _, c := range []interface{ Finalize() error }{
		u.Hooks.BeforeCreate, u.Hooks.AfterCreate,
		u.Hooks.BeforeUpdate, u.Hooks.AfterUpdate,
		u.Hooks.BeforeDelete, u.Hooks.AfterDelete,
	} {
		if err := c.Finalize(); err != nil {
			return nil, err
		}
	}
	return u, nil
}

// RegisterAction adds an action during Customize. Duplicate names fail.
func (u *UseCase) RegisterAction(name string, a domain.Action) error {
	return u.actions.Register(name, a)
}
