package kube

import (
	"context"
	"fmt"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"

	"github.com/mwops/mwops/internal/logging"
)

// CreateCustomObject submits a namespaced custom resource identified by
// group/version/plural. AlreadyExists is success, matching CreateDocument.
func (c *Client) CreateCustomObject(ctx context.Context, group, version, namespace, plural string, body map[string]any) error {
	gvr := schema.GroupVersionResource{Group: group, Version: version, Resource: plural}
	u := &unstructured.Unstructured{Object: normalize(body)}
	logger := logging.FromContext(ctx).With("ns", namespace, "gvr", gvr.String(), "name", u.GetName())
	if _, err := c.Dynamic.Resource(gvr).Namespace(namespace).Create(ctx, u, metav1.CreateOptions{}); err != nil {
		if apierrors.IsAlreadyExists(err) {
			logger.Info(ctx, "KubeClient:CreateCustom/exists")
			return nil
		}
		logger.Error(ctx, "KubeClient:CreateCustom/efail", "err", err)
		return fmt.Errorf("create %s %s/%s: %w", plural, namespace, u.GetName(), classify(err))
	}
	logger.Info(ctx, "KubeClient:CreateCustom/eok")
	return nil
}

// GetCustomObject reads a namespaced custom resource and returns its
// object map. NotFound propagates untranslated so callers can branch on it
// with apierrors.IsNotFound.
func (c *Client) GetCustomObject(ctx context.Context, group, version, namespace, plural, name string) (map[string]any, error) {
	gvr := schema.GroupVersionResource{Group: group, Version: version, Resource: plural}
	u, err := c.Dynamic.Resource(gvr).Namespace(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		if apierrors.IsNotFound(err) {
			return nil, err
		}
		return nil, fmt.Errorf("get %s %s/%s: %w", plural, namespace, name, classify(err))
	}
	return u.Object, nil
}
