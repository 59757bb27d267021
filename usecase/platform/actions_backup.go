package platform

import (
	"context"
	"time"

	"github.com/mwops/mwops/domain"
)

// backupAction submits a CNPG Backup custom resource targeting the
// platform's cluster. Available only while the platform has state and is
// desired active.
type backupAction struct {
	now func() time.Time
}

func (a *backupAction) Available(_ context.Context, ac *domain.ActionContext) bool {
	return ac.State != nil && ac.State.Active
}

func (a *backupAction) Run(ctx context.Context, ac *domain.ActionContext, _ map[string]any) (map[string]any, error) {
	name := "backup-" + a.now().UTC().Format("20060102-150405")
	body := map[string]any{
		"apiVersion": cnpgGroup + "/" + cnpgVersion,
		"kind":       "Backup",
		"metadata": map[string]any{
			"name":      name,
			"namespace": ac.Namespace,
		},
		"spec": map[string]any{
			"cluster": map[string]any{"name": ac.Platform.Name},
		},
	}
	if err := ac.Handle.CreateCustomObject(ctx, cnpgGroup, cnpgVersion, ac.Namespace, cnpgBackupsPlural, body); err != nil {
		return nil, err
	}
	return map[string]any{"backup": name}, nil
}
