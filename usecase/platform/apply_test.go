package platform

import (
	"context"
	"errors"
	"testing"

	"github.com/mwops/mwops/domain/model"
)

func TestApplyHappyPath(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()

	out, err := h.uc.Apply(ctx, &ApplyInput{ID: h.platform.ID})
	if err != nil {
		t.Fatalf("Apply() error: %v", err)
	}
	if out.Created != 2 || out.Existing != 0 {
		t.Errorf("Apply() = created %d existing %d, want 2/0", out.Created, out.Existing)
	}

	// Namespace comes from the owning project.
	if len(h.handle.namespaces) != 1 || h.handle.namespaces[0] != "proj-a" {
		t.Errorf("EnsureNamespace calls = %v, want [proj-a]", h.handle.namespaces)
	}

	// Documents are submitted in template order.
	if len(h.handle.created) != 2 {
		t.Fatalf("created %d documents, want 2", len(h.handle.created))
	}
	if got := docKey(h.handle.created[0]); got != "Cluster/pg1" {
		t.Errorf("first document = %q, want Cluster/pg1", got)
	}
	if got := docKey(h.handle.created[1]); got != "Service/pg1-rw" {
		t.Errorf("second document = %q, want Service/pg1-rw", got)
	}

	// The remote cluster's kubeconfig was used.
	if len(h.gateway.kubeconfigs) != 1 || string(h.gateway.kubeconfigs[0]) != h.cluster.Kubeconfig {
		t.Errorf("gateway resolved with unexpected kubeconfig")
	}

	state := h.loadState(t)
	if state == nil {
		t.Fatal("state row not created")
	}
	if state.Status != model.StatusPending || !state.Active {
		t.Errorf("state = %s active=%v, want pending active=true", state.Status, state.Active)
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()

	if _, err := h.uc.Apply(ctx, &ApplyInput{ID: h.platform.ID}); err != nil {
		t.Fatalf("first Apply() error: %v", err)
	}
	out, err := h.uc.Apply(ctx, &ApplyInput{ID: h.platform.ID})
	if err != nil {
		t.Fatalf("second Apply() error: %v", err)
	}
	if out.Created != 0 || out.Existing != 2 {
		t.Errorf("second Apply() = created %d existing %d, want 0/2", out.Created, out.Existing)
	}
}

func TestApplyEmptyBundleWarnsAndSucceeds(t *testing.T) {
	h := newHarness(t, map[string]string{"README.md": "not a manifest"})
	ctx := context.Background()

	out, err := h.uc.Apply(ctx, &ApplyInput{ID: h.platform.ID})
	if err != nil {
		t.Fatalf("Apply() error: %v", err)
	}
	if out.Created != 0 || out.Existing != 0 {
		t.Errorf("Apply() = %+v, want zero counts", out)
	}
	if len(h.handle.namespaces) != 0 || len(h.handle.created) != 0 {
		t.Error("Apply() touched the cluster despite an empty render")
	}
	if state := h.loadState(t); state != nil {
		t.Error("Apply() wrote state despite an empty render")
	}
}

func TestApplyRejectsInClusterRecordWithKubeconfig(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()

	h.cluster.Type = model.ClusterTypeInCluster
	if err := h.repos.Cluster.Update(ctx, h.cluster); err != nil {
		t.Fatalf("updating cluster: %v", err)
	}

	_, err := h.uc.Apply(ctx, &ApplyInput{ID: h.platform.ID})
	var cce *model.ClusterConfigError
	if !errors.As(err, &cce) {
		t.Fatalf("Apply() error = %v, want ClusterConfigError", err)
	}
	if len(h.handle.created) != 0 {
		t.Error("Apply() issued creates despite the config error")
	}
}

func TestApplyAbortsOnCreateFailure(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()

	wantErr := &model.ClusterFatalError{Err: errors.New("forbidden")}
	h.handle.createErr = wantErr

	_, err := h.uc.Apply(ctx, &ApplyInput{ID: h.platform.ID})
	var cfe *model.ClusterFatalError
	if !errors.As(err, &cfe) {
		t.Fatalf("Apply() error = %v, want ClusterFatalError", err)
	}
	if state := h.loadState(t); state != nil {
		t.Error("Apply() wrote pending state despite an aborted submission")
	}
}
