package platform

import (
	"context"

	"github.com/mwops/mwops/domain/hook"
	"github.com/mwops/mwops/domain/model"
)

// registerDefaultHooks wires the built-in lifecycle hooks. A composing
// service may override any of them by re-registering the same name in
// Options.Customize.
func (u *UseCase) registerDefaultHooks() {
	u.Hooks.BeforeCreate.Register(hook.Hook[*CreateEvent]{
		Name: "validate-spec",
		Fn: func(ctx context.Context, ev *CreateEvent) error {
			return u.validateSpec(ev.Platform)
		},
	})
	u.Hooks.BeforeCreate.Register(hook.Hook[*CreateEvent]{
		Name:  "check-references",
		After: []string{"validate-spec"},
		Fn: func(ctx context.Context, ev *CreateEvent) error {
			if _, err := u.Repos.Project.Get(ctx, ev.Platform.ProjectID); err != nil {
				return err
			}
			_, err := u.Repos.Cluster.Get(ctx, ev.Platform.ClusterID)
			return err
		},
	})

	u.Hooks.BeforeUpdate.Register(hook.Hook[*UpdateEvent]{
		Name: "reject-immutable-fields",
		Fn: func(ctx context.Context, ev *UpdateEvent) error {
			return checkImmutableFields(ev.Platform, ev.Patch)
		},
	})
	u.Hooks.BeforeUpdate.Register(hook.Hook[*UpdateEvent]{
		Name:  "validate-spec",
		After: []string{"reject-immutable-fields"},
		Fn: func(ctx context.Context, ev *UpdateEvent) error {
			next := *ev.Platform
			applyPatch(&next, ev.Patch)
			return u.validateSpec(&next)
		},
	})

	u.Hooks.BeforeDelete.Register(hook.Hook[*DeleteEvent]{
		Name: "require-decommission",
		Fn: func(ctx context.Context, ev *DeleteEvent) error {
			if ev.State != nil && ev.State.Active {
				return &model.ConflictError{Message: "platform is active; decommission it before deleting"}
			}
			return nil
		},
	})
	u.Hooks.AfterDelete.Register(hook.Hook[*DeleteEvent]{
		Name: "cascade-state",
		Fn: func(ctx context.Context, ev *DeleteEvent) error {
			return u.Repos.State.Delete(ctx, ev.Platform.ID)
		},
	})
}

// checkImmutableFields rejects a patch that changes an immutable field.
// Re-sending the stored value is allowed.
func checkImmutableFields(stored *model.PostgresPlatform, patch *model.PostgresPlatformPatch) error {
	if patch.Name != nil && *patch.Name != stored.Name {
		return model.NewValidationError("name", "Field 'name' is immutable")
	}
	if patch.ProjectID != nil && *patch.ProjectID != stored.ProjectID {
		return model.NewValidationError("project_id", "Field 'project_id' is immutable")
	}
	if patch.StorageSize != nil && *patch.StorageSize != stored.StorageSize {
		return model.NewValidationError("storage_size", "Field 'storage_size' is immutable")
	}
	if patch.Image != nil && *patch.Image != stored.Image {
		return model.NewValidationError("image", "Field 'image' is immutable")
	}
	return nil
}

// applyPatch copies non-nil patch fields onto the platform.
func applyPatch(p *model.PostgresPlatform, patch *model.PostgresPlatformPatch) {
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.ClusterID != nil {
		p.ClusterID = *patch.ClusterID
	}
	if patch.Instances != nil {
		p.Instances = *patch.Instances
	}
	if patch.CPURequest != nil {
		p.CPURequest = *patch.CPURequest
	}
	if patch.CPULimit != nil {
		p.CPULimit = *patch.CPULimit
	}
	if patch.MemoryRequest != nil {
		p.MemoryRequest = *patch.MemoryRequest
	}
	if patch.MemoryLimit != nil {
		p.MemoryLimit = *patch.MemoryLimit
	}
	if patch.BackupEnabled != nil {
		p.BackupEnabled = *patch.BackupEnabled
	}
	if patch.BackupDestination != nil {
		p.BackupDestination = *patch.BackupDestination
	}
	if patch.BackupRetention != nil {
		p.BackupRetention = *patch.BackupRetention
	}
	if patch.S3StorageID != nil {
		p.S3StorageID = *patch.S3StorageID
	}
}
