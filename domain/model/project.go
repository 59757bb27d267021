package model

import "time"

// Project owns platforms and supplies the target Kubernetes namespace
// (a platform's resources are applied into the namespace named after the
// owning project).
type Project struct {
	ID        int64
	Name      string
	Title     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
