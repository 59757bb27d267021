package project

import (
	"context"
	"errors"
	"testing"

	"github.com/mwops/mwops/adapters/store/memory"
	"github.com/mwops/mwops/domain/model"
)

func newTestUseCase() *UseCase {
	return &UseCase{Repos: &Repos{Project: memory.NewInMemoryProjectRepository()}}
}

func TestCreateValidatesName(t *testing.T) {
	u := newTestUseCase()
	ctx := context.Background()

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"lowercase dns label", "proj-a", false},
		{"uppercase", "Proj", true},
		{"leading dash", "-proj", true},
		{"empty", "", true},
		{"dots", "proj.a", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := u.Create(ctx, &CreateInput{Name: tt.input, Title: "T"})
			if !tt.wantErr {
				if err != nil {
					t.Errorf("Create(%q) error = %v", tt.input, err)
				}
				return
			}
			var ve *model.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("Create(%q) error = %v, want ValidationError", tt.input, err)
			}
			if ve.Field != "name" {
				t.Errorf("error field = %q, want name", ve.Field)
			}
		})
	}
}

func TestCreateRejectsDuplicateName(t *testing.T) {
	u := newTestUseCase()
	ctx := context.Background()

	if _, err := u.Create(ctx, &CreateInput{Name: "proj-a"}); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	_, err := u.Create(ctx, &CreateInput{Name: "proj-a"})
	var ve *model.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("duplicate Create error = %v, want ValidationError", err)
	}
}

func TestUpdateNameIsImmutable(t *testing.T) {
	u := newTestUseCase()
	ctx := context.Background()

	out, err := u.Create(ctx, &CreateInput{Name: "proj-a", Title: "Old"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	id := out.Project.ID

	other := "proj-b"
	_, err = u.Update(ctx, &UpdateInput{ID: id, Name: &other})
	var ve *model.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Update error = %v, want ValidationError", err)
	}
	if ve.Message != "Field 'name' is immutable" {
		t.Errorf("message = %q", ve.Message)
	}

	// Same value is a no-op, not a violation.
	same := "proj-a"
	title := "New"
	updated, err := u.Update(ctx, &UpdateInput{ID: id, Name: &same, Title: &title})
	if err != nil {
		t.Fatalf("Update with unchanged name: %v", err)
	}
	if updated.Project.Title != "New" {
		t.Errorf("title = %q, want New", updated.Project.Title)
	}
}

func TestGetAndDelete(t *testing.T) {
	u := newTestUseCase()
	ctx := context.Background()

	out, err := u.Create(ctx, &CreateInput{Name: "proj-a"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err := u.Get(ctx, &GetInput{ID: out.Project.ID})
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Project.Name != "proj-a" {
		t.Errorf("name = %q", got.Project.Name)
	}

	if err := u.Delete(ctx, &DeleteInput{ID: out.Project.ID}); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := u.Get(ctx, &GetInput{ID: out.Project.ID}); !errors.Is(err, model.ErrProjectNotFound) {
		t.Errorf("Get after delete = %v, want ErrProjectNotFound", err)
	}
}
