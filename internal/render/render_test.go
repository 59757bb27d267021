package render

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeBundle(t *testing.T, files map[string]string) *Renderer {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, "postgres")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return NewRenderer(root)
}

func TestRenderOrderAndSubstitution(t *testing.T) {
	r := writeBundle(t, map[string]string{
		"10-second.yaml.j2": "kind: Service\nmetadata:\n  name: {{ .Values.name }}-svc\n",
		"00-first.yaml.j2":  "kind: Cluster\nmetadata:\n  name: {{ .Values.name }}\n",
		"notes.txt":         "not a manifest",
	})
	out, err := r.Render("postgres", map[string]any{"name": "pg1"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(out, "not a manifest") {
		t.Fatal("non-manifest file leaked into output")
	}
	first := strings.Index(out, "name: pg1\n")
	second := strings.Index(out, "name: pg1-svc")
	if first < 0 || second < 0 || first > second {
		t.Fatalf("lexical file order not preserved:\n%s", out)
	}

	docs, err := SplitDocuments(out)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	if docs[0]["kind"] != "Cluster" || docs[1]["kind"] != "Service" {
		t.Fatalf("document order wrong: %v", docs)
	}
}

func TestRenderStrictMissingVariable(t *testing.T) {
	r := writeBundle(t, map[string]string{
		"a.yaml": "kind: Cluster\nmetadata:\n  name: {{ .Values.missing }}\n",
	})
	if _, err := r.Render("postgres", map[string]any{}); err == nil {
		t.Fatal("expected strict-mode error for missing variable")
	}
}

func TestRenderEmptyBundle(t *testing.T) {
	r := writeBundle(t, map[string]string{"readme.md": "docs only"})
	out, err := r.Render("postgres", map[string]any{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "" {
		t.Fatalf("expected empty output, got %q", out)
	}
}

func TestRenderMissingBundle(t *testing.T) {
	r := NewRenderer(t.TempDir())
	_, err := r.Render("postgres", map[string]any{})
	if !errors.Is(err, ErrBundleNotFound) {
		t.Fatalf("expected ErrBundleNotFound, got %v", err)
	}
}

func TestSplitDocumentsRoundTrip(t *testing.T) {
	stream := "kind: A\n---\n# comment only\n---\nkind: B\n"
	docs, err := SplitDocuments(stream)
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 2 || docs[0]["kind"] != "A" || docs[1]["kind"] != "B" {
		t.Fatalf("unexpected docs: %v", docs)
	}
}

func TestImages(t *testing.T) {
	r := writeBundle(t, map[string]string{
		"resources/images.yml": "images:\n  - image: ghcr.io/cloudnative-pg/postgresql:16\n    label: PostgreSQL 16\n  - image: ghcr.io/cloudnative-pg/postgresql:18\n    label: PostgreSQL 18\n",
	})
	opts, err := r.Images("postgres")
	if err != nil {
		t.Fatal(err)
	}
	if len(opts) != 2 || opts[1].Label != "PostgreSQL 18" {
		t.Fatalf("unexpected catalog: %v", opts)
	}
}
