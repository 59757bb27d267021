package kube

import (
	"context"
	"fmt"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/client-go/dynamic"

	"github.com/mwops/mwops/domain/model"
	"github.com/mwops/mwops/internal/logging"
)

// CreateDocument submits one manifest document as a create. AlreadyExists
// is success (created=false). Documents without kind or metadata.name are
// empty separators and are skipped silently.
func (c *Client) CreateDocument(ctx context.Context, doc map[string]any, defaultNamespace string) (bool, error) {
	u, ri, err := c.resolveDocument(doc, defaultNamespace)
	if err != nil || u == nil {
		return false, err
	}
	logger := logging.FromContext(ctx).With("ns", u.GetNamespace(), "kind", u.GetKind(), "name", u.GetName())
	if _, err := ri.Create(ctx, u, metav1.CreateOptions{}); err != nil {
		if apierrors.IsAlreadyExists(err) {
			logger.Info(ctx, "KubeClient:Create/exists")
			return false, nil
		}
		logger.Error(ctx, "KubeClient:Create/efail", "err", err)
		return false, fmt.Errorf("create %s %s: %w", u.GetKind(), u.GetName(), classify(err))
	}
	logger.Info(ctx, "KubeClient:Create/eok")
	return true, nil
}

// DeleteDocument deletes the resource described by one manifest document.
// NotFound is success (deleted=false).
func (c *Client) DeleteDocument(ctx context.Context, doc map[string]any, defaultNamespace string) (bool, error) {
	u, ri, err := c.resolveDocument(doc, defaultNamespace)
	if err != nil || u == nil {
		return false, err
	}
	logger := logging.FromContext(ctx).With("ns", u.GetNamespace(), "kind", u.GetKind(), "name", u.GetName())
	if err := ri.Delete(ctx, u.GetName(), metav1.DeleteOptions{}); err != nil {
		if apierrors.IsNotFound(err) {
			logger.Info(ctx, "KubeClient:Delete/absent")
			return false, nil
		}
		logger.Error(ctx, "KubeClient:Delete/efail", "err", err)
		return false, fmt.Errorf("delete %s %s: %w", u.GetKind(), u.GetName(), classify(err))
	}
	logger.Info(ctx, "KubeClient:Delete/eok")
	return true, nil
}

// resolveDocument maps a decoded manifest onto its dynamic resource
// interface, substituting defaultNamespace for namespaced resources that
// omit one and dropping the namespace for cluster-scoped resources.
// It returns a nil object for skippable documents.
func (c *Client) resolveDocument(doc map[string]any, defaultNamespace string) (*unstructured.Unstructured, dynamic.ResourceInterface, error) {
	u := &unstructured.Unstructured{Object: normalize(doc)}
	if u.GetKind() == "" || u.GetName() == "" {
		return nil, nil, nil
	}
	gvk := schema.FromAPIVersionAndKind(u.GetAPIVersion(), u.GetKind())
	mapping, err := c.Mapper.RESTMapping(gvk.GroupKind(), gvk.Version)
	if err != nil {
		return nil, nil, &model.ClusterFatalError{Err: fmt.Errorf("rest mapping %s: %w", gvk.String(), err)}
	}
	if mapping.Scope.Name() == meta.RESTScopeNameNamespace {
		if u.GetNamespace() == "" {
			ns := defaultNamespace
			if ns == "" {
				ns = "default"
			}
			u.SetNamespace(ns)
		}
		return u, c.Dynamic.Resource(mapping.Resource).Namespace(u.GetNamespace()), nil
	}
	u.SetNamespace("")
	return u, c.Dynamic.Resource(mapping.Resource), nil
}

// normalize deep-converts a YAML-decoded document into the JSON-compatible
// shape unstructured expects (string-keyed maps, int64 integers).
func normalize(v any) map[string]any {
	out, _ := normalizeValue(v).(map[string]any)
	return out
}

func normalizeValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[k] = normalizeValue(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[fmt.Sprintf("%v", k)] = normalizeValue(val)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = normalizeValue(val)
		}
		return out
	case int:
		return int64(x)
	case int32:
		return int64(x)
	case float32:
		return float64(x)
	default:
		return x
	}
}
