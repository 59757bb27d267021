package render

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// ImageOption is one selectable container image of a platform kind,
// surfaced to the UI as image selector options.
type ImageOption struct {
	Image string `yaml:"image"`
	Label string `yaml:"label"`
}

type imageCatalog struct {
	Images []ImageOption `yaml:"images"`
}

// catalogCache holds one lazily-loaded catalog per bundle for the process
// lifetime. The bundle ships with the binary, so no invalidation is needed.
var catalogCache sync.Map // catalog path -> []ImageOption

// Images returns the image catalog of a kind, read once per process from
// the bundle's resources/images.yml. A missing catalog file yields an
// empty list.
func (r *Renderer) Images(kind string) ([]ImageOption, error) {
	path := filepath.Join(r.Root, kind, "resources", "images.yml")
	if v, ok := catalogCache.Load(path); ok {
		return v.([]ImageOption), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			catalogCache.Store(path, []ImageOption(nil))
			return nil, nil
		}
		return nil, fmt.Errorf("read image catalog %s: %w", path, err)
	}
	var cat imageCatalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("parse image catalog %s: %w", path, err)
	}
	catalogCache.Store(path, cat.Images)
	return cat.Images, nil
}
