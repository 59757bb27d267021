package platform

import (
	"time"

	"github.com/mwops/mwops/domain"
	"github.com/mwops/mwops/domain/hook"
	"github.com/mwops/mwops/domain/model"
	"github.com/mwops/mwops/internal/render"
	"github.com/mwops/mwops/internal/secrets"
)

// Repos holds repositories needed for platform use cases.
type Repos struct {
	Project   domain.ProjectRepository
	Cluster   domain.ClusterRepository
	S3Storage domain.S3StorageRepository
	Platform  domain.PlatformRepository
	State     domain.PlatformStateRepository
}

// CreateEvent is the payload of the create lifecycle chains. Before-create
// hooks may mutate the platform before it is persisted.
type CreateEvent struct {
	Platform *model.PostgresPlatform
}

// UpdateEvent is the payload of the update lifecycle chains. Before-update
// hooks receive the stored platform and the incoming patch and may mutate
// the patch; after-update hooks see the updated platform.
type UpdateEvent struct {
	Platform *model.PostgresPlatform
	Patch    *model.PostgresPlatformPatch
}

// DeleteEvent is the payload of the delete lifecycle chains. The platform
// stays readable through after-delete hooks.
type DeleteEvent struct {
	Platform *model.PostgresPlatform
	State    *model.PlatformState // nil when no state row exists
}

// Hooks holds the lifecycle chains of the service. They are open for
// registration until New finalizes them and immutable afterward.
type Hooks struct {
	BeforeCreate *hook.Chain[*CreateEvent]
	AfterCreate  *hook.Chain[*CreateEvent]
	BeforeUpdate *hook.Chain[*UpdateEvent]
	AfterUpdate  *hook.Chain[*UpdateEvent]
	BeforeDelete *hook.Chain[*DeleteEvent]
	AfterDelete  *hook.Chain[*DeleteEvent]
}

// UseCase wires repositories and ports needed for platform use cases.
type UseCase struct {
	Repos    *Repos
	Gateway  model.ClusterGateway
	Renderer *render.Renderer
	Cipher   *secrets.Cipher

	Hooks   Hooks
	actions *domain.ActionRegistry

	now func() time.Time
}
