package project

import (
	"github.com/mwops/mwops/domain"
)

// Repos holds repositories needed for project use cases.
type Repos struct {
	Project domain.ProjectRepository
}

// UseCase wires repositories needed for project use cases.
type UseCase struct {
	Repos *Repos
}
