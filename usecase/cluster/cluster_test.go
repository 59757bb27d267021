package cluster

import (
	"context"
	"errors"
	"testing"

	"github.com/mwops/mwops/adapters/store/memory"
	"github.com/mwops/mwops/domain/model"
)

func newTestUseCase() *UseCase {
	return &UseCase{Repos: &Repos{Cluster: memory.NewInMemoryClusterRepository()}}
}

func TestCreateValidatesTypePairing(t *testing.T) {
	u := newTestUseCase()
	ctx := context.Background()

	tests := []struct {
		name       string
		typ        string
		kubeconfig string
		wantErr    bool
	}{
		{"remote with kubeconfig", "remote", "apiVersion: v1\nkind: Config\n", false},
		{"remote without kubeconfig", "remote", "", true},
		{"in-cluster without kubeconfig", "in-cluster", "", false},
		{"in-cluster with kubeconfig", "in-cluster", "apiVersion: v1\n", true},
		{"unknown type", "ssh", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := u.Create(ctx, &CreateInput{Name: tt.name, Type: tt.typ, Kubeconfig: tt.kubeconfig})
			if (err != nil) != tt.wantErr {
				t.Fatalf("Create error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var ce *model.ClusterConfigError
				if !errors.As(err, &ce) {
					t.Errorf("error = %v, want ClusterConfigError", err)
				}
			}
		})
	}
}

func TestUpdateRevalidatesPairing(t *testing.T) {
	u := newTestUseCase()
	ctx := context.Background()

	out, err := u.Create(ctx, &CreateInput{Name: "remote-1", Type: "remote", Kubeconfig: "apiVersion: v1\n"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	id := out.Cluster.ID

	// Switching to in-cluster while a kubeconfig is still stored must fail.
	typ := "in-cluster"
	_, err = u.Update(ctx, &UpdateInput{ID: id, Type: &typ})
	var ce *model.ClusterConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("Update error = %v, want ClusterConfigError", err)
	}

	// Clearing the kubeconfig in the same patch is fine.
	empty := ""
	updated, err := u.Update(ctx, &UpdateInput{ID: id, Type: &typ, Kubeconfig: &empty})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Cluster.Type != model.ClusterTypeInCluster {
		t.Errorf("type = %q", updated.Cluster.Type)
	}
}

func TestGetListDelete(t *testing.T) {
	u := newTestUseCase()
	ctx := context.Background()

	a, err := u.Create(ctx, &CreateInput{Name: "a", Type: "in-cluster"})
	if err != nil {
		t.Fatalf("Create a: %v", err)
	}
	if _, err := u.Create(ctx, &CreateInput{Name: "b", Type: "in-cluster"}); err != nil {
		t.Fatalf("Create b: %v", err)
	}

	list, err := u.List(ctx, &ListInput{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list.Clusters) != 2 {
		t.Fatalf("len = %d, want 2", len(list.Clusters))
	}

	if err := u.Delete(ctx, &DeleteInput{ID: a.Cluster.ID}); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := u.Get(ctx, &GetInput{ID: a.Cluster.ID}); !errors.Is(err, model.ErrClusterNotFound) {
		t.Errorf("Get after delete = %v, want ErrClusterNotFound", err)
	}
}
