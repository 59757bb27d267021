package model

import "context"

// ClusterGateway is the domain port for obtaining a handle to a target
// Kubernetes cluster. Passing a nil kubeconfig resolves the controller's
// own in-cluster credentials.
type ClusterGateway interface {
	Resolve(ctx context.Context, kubeconfig []byte) (ClusterHandle, error)
}

// ClusterHandle exposes the cluster operations the orchestrator needs.
// Creates are idempotent (AlreadyExists is reported, not failed) and
// deletes tolerate NotFound. Handles are cheap and scoped to one logical
// operation.
type ClusterHandle interface {
	// EnsureNamespace creates the namespace if it does not exist.
	EnsureNamespace(ctx context.Context, name string) error

	// CreateDocument submits one manifest document. It returns created=false
	// with a nil error when the resource already exists. Documents missing
	// kind or metadata.name are skipped (created=false, nil).
	CreateDocument(ctx context.Context, doc map[string]any, defaultNamespace string) (created bool, err error)

	// DeleteDocument deletes the resource described by one manifest document.
	// It returns deleted=false with a nil error when the resource is absent.
	DeleteDocument(ctx context.Context, doc map[string]any, defaultNamespace string) (deleted bool, err error)

	ListServices(ctx context.Context, namespace string) ([]ServiceInfo, error)
	ListNodes(ctx context.Context) ([]NodeInfo, error)

	// ReadSecret returns the decoded data of a namespaced secret.
	ReadSecret(ctx context.Context, namespace, name string) (map[string][]byte, error)

	CreateCustomObject(ctx context.Context, group, version, namespace, plural string, body map[string]any) error
	GetCustomObject(ctx context.Context, group, version, namespace, plural, name string) (map[string]any, error)
}

// ServiceInfo is the slice of a Service the poller cares about.
type ServiceInfo struct {
	Name  string
	Ports []ServicePortInfo
}

// ServicePortInfo describes one exposed service port.
type ServicePortInfo struct {
	Name     string
	Port     int32
	NodePort int32
}

// NodeInfo is one entry of the cluster node inventory.
type NodeInfo struct {
	Name       string
	InternalIP string
	Ready      bool
}
