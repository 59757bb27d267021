package render

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrBundleNotFound is returned when a platform kind has no template
// bundle directory under the renderer root.
var ErrBundleNotFound = errors.New("template bundle not found")

// SplitDocuments parses a multi-document YAML stream into one map per
// document. Empty documents (bare separators, comments-only) are dropped.
func SplitDocuments(stream string) ([]map[string]any, error) {
	dec := yaml.NewDecoder(strings.NewReader(stream))
	var docs []map[string]any
	for {
		var doc map[string]any
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("decode manifest document: %w", err)
		}
		if len(doc) == 0 {
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
