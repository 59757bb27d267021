package platform

import (
	"context"
	"fmt"

	"github.com/mwops/mwops/domain/model"
)

// CreateInput contains the data required to create a new platform.
type CreateInput struct {
	Name      string `json:"name"`
	Title     string `json:"title"`
	ProjectID int64  `json:"project_id"`
	ClusterID int64  `json:"cluster_id"`

	Instances   int    `json:"instances"`
	StorageSize string `json:"storage_size"`
	Image       string `json:"image"`

	CPURequest    string `json:"cpu_request"`
	CPULimit      string `json:"cpu_limit"`
	MemoryRequest string `json:"memory_request"`
	MemoryLimit   string `json:"memory_limit"`

	BackupEnabled     bool   `json:"backup_enabled"`
	BackupDestination string `json:"backup_destination"`
	BackupRetention   string `json:"backup_retention"`
	S3StorageID       int64  `json:"s3_storage_id"`
}

// CreateOutput contains the created platform.
type CreateOutput struct {
	Platform *model.PostgresPlatform `json:"platform"`
}

// Create validates and persists a new platform. No cluster resources are
// touched until the first Apply.
func (u *UseCase) Create(ctx context.Context, in *CreateInput) (*CreateOutput, error) {
	if in == nil {
		return nil, fmt.Errorf("CreateInput is required")
	}
	now := u.now().UTC()
	p := &model.PostgresPlatform{
		Name:              in.Name,
		Title:             in.Title,
		ProjectID:         in.ProjectID,
		ClusterID:         in.ClusterID,
		Instances:         in.Instances,
		StorageSize:       in.StorageSize,
		Image:             in.Image,
		CPURequest:        in.CPURequest,
		CPULimit:          in.CPULimit,
		MemoryRequest:     in.MemoryRequest,
		MemoryLimit:       in.MemoryLimit,
		BackupEnabled:     in.BackupEnabled,
		BackupDestination: in.BackupDestination,
		BackupRetention:   in.BackupRetention,
		S3StorageID:       in.S3StorageID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	ev := &CreateEvent{Platform: p}
	if err := u.Hooks.BeforeCreate.Run(ctx, ev); err != nil {
		return nil, unwrapHookError(err)
	}
	if err := u.Repos.Platform.Create(ctx, p); err != nil {
		return nil, err
	}
	if err := u.Hooks.AfterCreate.Run(ctx, ev); err != nil {
		return nil, unwrapHookError(err)
	}
	return &CreateOutput{Platform: p}, nil
}
