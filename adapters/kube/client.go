// Package kube is the cluster gateway: it resolves credentials for a
// target Kubernetes cluster and exposes the idempotent create/delete and
// read operations the platform service needs. Keep this package focused on
// API access; deciding which cluster to talk to lives in the use cases.
package kube

import (
	"context"
	"fmt"

	"k8s.io/client-go/discovery"
	"k8s.io/client-go/discovery/cached/memory"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/restmapper"
	"k8s.io/client-go/tools/clientcmd"

	"github.com/mwops/mwops/domain/model"
)

// Client wraps the typed and dynamic Kubernetes clients plus the REST
// mapper used to route arbitrary manifest documents. A Client is scoped to
// one logical operation; construction is cheap.
type Client struct {
	RESTConfig *rest.Config
	Clientset  kubernetes.Interface
	Dynamic    dynamic.Interface
	Mapper     *restmapper.DeferredDiscoveryRESTMapper
}

// Options controls client construction tuning. All fields are optional.
type Options struct {
	// UserAgent adds a custom user agent to the REST config.
	UserAgent string
	// QPS sets the allowed queries per second on the REST client.
	QPS float32
	// Burst sets the client-side rate limiter burst.
	Burst int
}

func (o *Options) applyDefaults() {
	if o.QPS <= 0 {
		o.QPS = 20
	}
	if o.Burst <= 0 {
		o.Burst = 50
	}
}

// NewClientFromKubeconfig constructs a Client from kubeconfig bytes.
func NewClientFromKubeconfig(_ context.Context, kubeconfig []byte, opts *Options) (*Client, error) {
	if len(kubeconfig) == 0 {
		return nil, &model.ClusterConfigError{Message: "kubeconfig is empty"}
	}
	cfg, err := clientcmd.RESTConfigFromKubeConfig(kubeconfig)
	if err != nil {
		return nil, &model.ClusterConfigError{Message: fmt.Sprintf("build REST config from kubeconfig: %v", err)}
	}
	return NewClientFromRESTConfig(cfg, opts)
}

// NewInClusterClient constructs a Client from the controller's own
// execution environment (service account token and CA).
func NewInClusterClient(_ context.Context, opts *Options) (*Client, error) {
	cfg, err := rest.InClusterConfig()
	if err != nil {
		return nil, &model.ClusterConfigError{Message: fmt.Sprintf("in-cluster config: %v", err)}
	}
	return NewClientFromRESTConfig(cfg, opts)
}

// NewClientFromRESTConfig constructs a Client from an existing rest.Config.
func NewClientFromRESTConfig(cfg *rest.Config, opts *Options) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("REST config is nil")
	}
	if opts == nil {
		opts = &Options{}
	}
	opts.applyDefaults()

	cfg.QPS = opts.QPS
	cfg.Burst = opts.Burst
	if opts.UserAgent != "" {
		_ = rest.AddUserAgent(cfg, opts.UserAgent)
	}

	cs, err := kubernetes.NewForConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("build clientset: %w", err)
	}
	dy, err := dynamic.NewForConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("build dynamic client: %w", err)
	}
	dc, err := discovery.NewDiscoveryClientForConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("build discovery client: %w", err)
	}
	mapper := restmapper.NewDeferredDiscoveryRESTMapper(memory.NewMemCacheClient(dc))

	return &Client{RESTConfig: cfg, Clientset: cs, Dynamic: dy, Mapper: mapper}, nil
}

// Gateway implements model.ClusterGateway. A nil kubeconfig resolves the
// controller's in-cluster credentials.
type Gateway struct {
	Options *Options
}

// Resolve obtains a cluster handle for the given credentials.
func (g *Gateway) Resolve(ctx context.Context, kubeconfig []byte) (model.ClusterHandle, error) {
	if kubeconfig == nil {
		return NewInClusterClient(ctx, g.Options)
	}
	return NewClientFromKubeconfig(ctx, kubeconfig, g.Options)
}

var _ model.ClusterGateway = (*Gateway)(nil)
var _ model.ClusterHandle = (*Client)(nil)
