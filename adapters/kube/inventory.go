package kube

import (
	"context"
	"fmt"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/mwops/mwops/domain/model"
)

// ListServices returns the services of a namespace with their ports.
func (c *Client) ListServices(ctx context.Context, namespace string) ([]model.ServiceInfo, error) {
	list, err := c.Clientset.CoreV1().Services(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("list services in %s: %w", namespace, classify(err))
	}
	out := make([]model.ServiceInfo, 0, len(list.Items))
	for _, svc := range list.Items {
		info := model.ServiceInfo{Name: svc.Name}
		for _, p := range svc.Spec.Ports {
			info.Ports = append(info.Ports, model.ServicePortInfo{Name: p.Name, Port: p.Port, NodePort: p.NodePort})
		}
		out = append(out, info)
	}
	return out, nil
}

// ListNodes returns the cluster node inventory.
func (c *Client) ListNodes(ctx context.Context) ([]model.NodeInfo, error) {
	list, err := c.Clientset.CoreV1().Nodes().List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("list nodes: %w", classify(err))
	}
	out := make([]model.NodeInfo, 0, len(list.Items))
	for _, node := range list.Items {
		info := model.NodeInfo{Name: node.Name}
		for _, addr := range node.Status.Addresses {
			if addr.Type == corev1.NodeInternalIP {
				info.InternalIP = addr.Address
				break
			}
		}
		for _, cond := range node.Status.Conditions {
			if cond.Type == corev1.NodeReady {
				info.Ready = cond.Status == corev1.ConditionTrue
				break
			}
		}
		out = append(out, info)
	}
	return out, nil
}

// ReadSecret returns the decoded data of a namespaced secret. The caller
// distinguishes absence via apierrors.IsNotFound.
func (c *Client) ReadSecret(ctx context.Context, namespace, name string) (map[string][]byte, error) {
	secret, err := c.Clientset.CoreV1().Secrets(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		if apierrors.IsNotFound(err) {
			return nil, err
		}
		return nil, fmt.Errorf("read secret %s/%s: %w", namespace, name, classify(err))
	}
	return secret.Data, nil
}
