package platform

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mwops/mwops/domain/model"
)

func strptr(s string) *string { return &s }
func intptr(n int) *int       { return &n }
func i64ptr(n int64) *int64   { return &n }
func boolptr(b bool) *bool    { return &b }

func TestCreateValidation(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()

	base := CreateInput{
		Name: "pg2", ProjectID: h.project.ID, ClusterID: h.cluster.ID,
		Instances: 3, StorageSize: "1Gi", Image: "ghcr.io/cloudnative-pg/postgresql:18",
	}

	tests := []struct {
		name      string
		mutate    func(in *CreateInput)
		wantField string
	}{
		{"valid", func(in *CreateInput) {}, ""},
		{"even instances", func(in *CreateInput) { in.Instances = 4 }, "instances"},
		{"zero instances", func(in *CreateInput) { in.Instances = 0 }, "instances"},
		{"bad storage size", func(in *CreateInput) { in.StorageSize = "lots" }, "storage_size"},
		{"uppercase name", func(in *CreateInput) { in.Name = "PG2" }, "name"},
		{"request over limit", func(in *CreateInput) {
			in.CPURequest = "2"
			in.CPULimit = "500m"
		}, "cpu_request"},
		{"bad backup uri", func(in *CreateInput) { in.BackupDestination = "http://bucket/x" }, "backup_destination"},
		{"backup uri without bucket", func(in *CreateInput) { in.BackupDestination = "s3://" }, "backup_destination"},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base
			in.Name = in.Name + string(rune('a'+i))
			tt.mutate(&in)
			_, err := h.uc.Create(ctx, &in)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Create() error: %v", err)
				}
				return
			}
			var ve *model.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("Create() error = %v, want ValidationError", err)
			}
			if ve.Field != tt.wantField {
				t.Errorf("error field = %q, want %q", ve.Field, tt.wantField)
			}
		})
	}
}

func TestCreateChecksImageCatalog(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()

	dir := filepath.Join(h.uc.Renderer.Root, model.PlatformKindPostgres, "resources")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("creating catalog dir: %v", err)
	}
	catalog := "images:\n  - image: ghcr.io/cloudnative-pg/postgresql:18\n    label: PostgreSQL 18\n"
	if err := os.WriteFile(filepath.Join(dir, "images.yml"), []byte(catalog), 0o644); err != nil {
		t.Fatalf("writing catalog: %v", err)
	}

	base := CreateInput{
		Name: "pg2", ProjectID: h.project.ID, ClusterID: h.cluster.ID,
		Instances: 1, StorageSize: "1Gi", Image: "ghcr.io/cloudnative-pg/postgresql:18",
	}
	if _, err := h.uc.Create(ctx, &base); err != nil {
		t.Fatalf("Create() with cataloged image: %v", err)
	}

	unlisted := base
	unlisted.Name = "pg3"
	unlisted.Image = "ghcr.io/cloudnative-pg/postgresql:14"
	_, err := h.uc.Create(ctx, &unlisted)
	var ve *model.ValidationError
	if !errors.As(err, &ve) || ve.Field != "image" {
		t.Fatalf("Create() error = %v, want image ValidationError", err)
	}
}

func TestCreateAssignsUUIDAndTimestamps(t *testing.T) {
	h := newHarness(t, nil)
	out, err := h.uc.Create(context.Background(), &CreateInput{
		Name: "pg2", ProjectID: h.project.ID, ClusterID: h.cluster.ID,
		Instances: 1, StorageSize: "1Gi", Image: "ghcr.io/cloudnative-pg/postgresql:18",
	})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if out.Platform.ID == 0 || out.Platform.UUID == "" {
		t.Errorf("platform = id %d uuid %q, want assigned", out.Platform.ID, out.Platform.UUID)
	}
	if out.Platform.CreatedAt.IsZero() || out.Platform.UpdatedAt.IsZero() {
		t.Error("timestamps not set")
	}
}

func TestCreateRejectsMissingProject(t *testing.T) {
	h := newHarness(t, nil)
	_, err := h.uc.Create(context.Background(), &CreateInput{
		Name: "pg2", ProjectID: 999, ClusterID: h.cluster.ID,
		Instances: 1, StorageSize: "1Gi", Image: "ghcr.io/cloudnative-pg/postgresql:18",
	})
	if !errors.Is(err, model.ErrProjectNotFound) {
		t.Fatalf("Create() error = %v, want ErrProjectNotFound", err)
	}
}

func TestUpdateImmutableFields(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()

	tests := []struct {
		name    string
		patch   *model.PostgresPlatformPatch
		field   string
		message string
	}{
		{"storage_size", &model.PostgresPlatformPatch{StorageSize: strptr("2Gi")}, "storage_size", "Field 'storage_size' is immutable"},
		{"name", &model.PostgresPlatformPatch{Name: strptr("pg1-renamed")}, "name", "Field 'name' is immutable"},
		{"project_id", &model.PostgresPlatformPatch{ProjectID: i64ptr(42)}, "project_id", "Field 'project_id' is immutable"},
		{"image", &model.PostgresPlatformPatch{Image: strptr("other:16")}, "image", "Field 'image' is immutable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.uc.Update(ctx, &UpdateInput{ID: h.platform.ID, Patch: tt.patch})
			var ve *model.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("Update() error = %v, want ValidationError", err)
			}
			if ve.Field != tt.field || ve.Message != tt.message {
				t.Errorf("error = %q/%q, want %q/%q", ve.Field, ve.Message, tt.field, tt.message)
			}
		})
	}

	// No state change happened.
	got, err := h.repos.Platform.Get(ctx, h.platform.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.StorageSize != "1Gi" || got.Name != "pg1" {
		t.Errorf("platform mutated: %+v", got)
	}
}

func TestUpdateSameImmutableValueIsAllowed(t *testing.T) {
	h := newHarness(t, nil)
	out, err := h.uc.Update(context.Background(), &UpdateInput{
		ID: h.platform.ID,
		Patch: &model.PostgresPlatformPatch{
			StorageSize: strptr("1Gi"),
			Instances:   intptr(5),
			Title:       strptr("primary"),
		},
	})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if out.Platform.Instances != 5 || out.Platform.Title != "primary" {
		t.Errorf("update not applied: %+v", out.Platform)
	}
}

func TestUpdateRevalidatesPatchedSpec(t *testing.T) {
	h := newHarness(t, nil)
	_, err := h.uc.Update(context.Background(), &UpdateInput{
		ID:    h.platform.ID,
		Patch: &model.PostgresPlatformPatch{Instances: intptr(2)},
	})
	var ve *model.ValidationError
	if !errors.As(err, &ve) || ve.Field != "instances" {
		t.Fatalf("Update() error = %v, want instances ValidationError", err)
	}
}

func TestDeleteRequiresDecommissionWhenActive(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()

	if _, err := h.uc.Apply(ctx, &ApplyInput{ID: h.platform.ID}); err != nil {
		t.Fatalf("Apply() error: %v", err)
	}

	err := h.uc.Delete(ctx, &DeleteInput{ID: h.platform.ID})
	var ce *model.ConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("Delete() error = %v, want ConflictError", err)
	}

	if _, err := h.uc.Decommission(ctx, &DecommissionInput{ID: h.platform.ID}); err != nil {
		t.Fatalf("Decommission() error: %v", err)
	}
	if err := h.uc.Delete(ctx, &DeleteInput{ID: h.platform.ID}); err != nil {
		t.Fatalf("Delete() after decommission error: %v", err)
	}

	if _, err := h.repos.Platform.Get(ctx, h.platform.ID); !errors.Is(err, model.ErrPlatformNotFound) {
		t.Errorf("platform still present after delete: %v", err)
	}
	if state := h.loadState(t); state != nil {
		t.Error("state row not cascaded on delete")
	}
}
