package platform

import (
	"context"
	"testing"

	"github.com/mwops/mwops/domain/model"
)

func TestDecommissionDeletesInRenderOrderAndClearsCredentials(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()

	if _, err := h.uc.Apply(ctx, &ApplyInput{ID: h.platform.ID}); err != nil {
		t.Fatalf("Apply() error: %v", err)
	}
	state := h.loadState(t)
	state.DBUser = "app"
	state.DBName = "app"
	state.DBPass = "ciphertext"
	state.DBCACert = "cert"
	if err := h.repos.State.Upsert(ctx, state); err != nil {
		t.Fatalf("seeding credentials: %v", err)
	}

	out, err := h.uc.Decommission(ctx, &DecommissionInput{ID: h.platform.ID})
	if err != nil {
		t.Fatalf("Decommission() error: %v", err)
	}
	if out.Deleted != 2 || out.Missing != 0 {
		t.Errorf("Decommission() = deleted %d missing %d, want 2/0", out.Deleted, out.Missing)
	}

	// Same order as Apply, not reversed.
	if got := docKey(h.handle.deleted[0]); got != "Cluster/pg1" {
		t.Errorf("first delete = %q, want Cluster/pg1", got)
	}
	if got := docKey(h.handle.deleted[1]); got != "Service/pg1-rw" {
		t.Errorf("second delete = %q, want Service/pg1-rw", got)
	}

	state = h.loadState(t)
	if state == nil {
		t.Fatal("state row deleted, want kept")
	}
	if state.Active {
		t.Error("active = true after decommission")
	}
	if state.Status != model.StatusOffline {
		t.Errorf("status = %s, want offline", state.Status)
	}
	if state.DBUser != "" || state.DBName != "" || state.DBPass != "" || state.DBCACert != "" {
		t.Errorf("credentials not cleared: %+v", state)
	}
}

func TestDecommissionIsIdempotent(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()

	if _, err := h.uc.Apply(ctx, &ApplyInput{ID: h.platform.ID}); err != nil {
		t.Fatalf("Apply() error: %v", err)
	}
	if _, err := h.uc.Decommission(ctx, &DecommissionInput{ID: h.platform.ID}); err != nil {
		t.Fatalf("first Decommission() error: %v", err)
	}

	// Everything is gone now; deletes come back NotFound.
	h.handle.absent["Cluster/pg1"] = true
	h.handle.absent["Service/pg1-rw"] = true

	out, err := h.uc.Decommission(ctx, &DecommissionInput{ID: h.platform.ID})
	if err != nil {
		t.Fatalf("second Decommission() error: %v", err)
	}
	if out.Deleted != 0 || out.Missing != 2 {
		t.Errorf("second Decommission() = deleted %d missing %d, want 0/2", out.Deleted, out.Missing)
	}
}
