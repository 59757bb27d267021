// Package render expands a per-platform-kind template bundle into a
// multi-document manifest stream. Bundles are plain directories shipped
// with the controller; rendering goes through the Helm template engine in
// strict mode so a missing variable fails before any cluster call.
package render

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"helm.sh/helm/v3/pkg/chart"
	"helm.sh/helm/v3/pkg/chartutil"
	"helm.sh/helm/v3/pkg/engine"
)

// manifestExtensions are the file suffixes treated as manifest templates.
// Anything else in the bundle directory is skipped.
var manifestExtensions = []string{".yaml.j2", ".yml.j2", ".yaml", ".yml"}

// Renderer expands template bundles under Root, one subdirectory per
// platform kind.
type Renderer struct {
	Root string
}

// NewRenderer returns a Renderer rooted at dir.
func NewRenderer(dir string) *Renderer { return &Renderer{Root: dir} }

func isManifestFile(name string) bool {
	for _, ext := range manifestExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// Render expands every manifest template of the kind's bundle against vars
// and returns the concatenation separated by YAML document boundaries.
// Files render and concatenate in lexical filename order; that order is
// also the apply/delete order downstream. An empty bundle yields "".
func (r *Renderer) Render(kind string, vars map[string]any) (string, error) {
	dir := filepath.Join(r.Root, kind)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("template bundle %s: %w", dir, ErrBundleNotFound)
		}
		return "", fmt.Errorf("read template bundle %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !isManifestFile(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	if len(names) == 0 {
		return "", nil
	}

	chrt := &chart.Chart{
		Metadata: &chart.Metadata{Name: kind, Version: "0.0.0", APIVersion: chart.APIVersionV2},
	}
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return "", fmt.Errorf("read template %s: %w", name, err)
		}
		chrt.Templates = append(chrt.Templates, &chart.File{Name: "templates/" + name, Data: data})
	}

	eng := engine.Engine{Strict: true}
	rendered, err := eng.Render(chrt, chartutil.Values{"Values": chartutil.Values(vars)})
	if err != nil {
		return "", fmt.Errorf("render template bundle %s: %w", kind, err)
	}

	var sb strings.Builder
	for _, name := range names {
		doc := strings.TrimSpace(rendered[path.Join(kind, "templates", name)])
		if doc == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n---\n")
		}
		sb.WriteString(doc)
	}
	out := sb.String()
	if out != "" {
		out += "\n"
	}
	return out, nil
}
