package model

import "time"

// ClusterType distinguishes the cluster the controller itself runs inside
// from a remote one reached via a supplied kubeconfig.
type ClusterType string

const (
	ClusterTypeInCluster ClusterType = "in-cluster"
	ClusterTypeRemote    ClusterType = "remote"
)

// Cluster represents a target Kubernetes cluster record.
type Cluster struct {
	ID         int64
	Name       string
	Type       ClusterType
	Kubeconfig string // opaque kubeconfig contents; required iff Type is remote
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Validate checks the type/credential pairing. An in-cluster record must
// carry no kubeconfig; a remote record must carry one.
func (c *Cluster) Validate() error {
	switch c.Type {
	case ClusterTypeInCluster:
		if c.Kubeconfig != "" {
			return &ClusterConfigError{Message: "in-cluster record must not carry a kubeconfig"}
		}
	case ClusterTypeRemote:
		if c.Kubeconfig == "" {
			return &ClusterConfigError{Message: "remote cluster record requires a kubeconfig"}
		}
	default:
		return &ClusterConfigError{Message: "unknown cluster type: " + string(c.Type)}
	}
	return nil
}
