package cluster

import (
	"github.com/mwops/mwops/domain"
)

// Repos holds repositories needed for cluster use cases.
type Repos struct {
	Cluster domain.ClusterRepository
}

// UseCase wires repositories needed for cluster use cases.
type UseCase struct {
	Repos *Repos
}
