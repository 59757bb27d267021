package platform

import (
	"net/url"

	"k8s.io/apimachinery/pkg/api/resource"

	"github.com/mwops/mwops/domain/model"
	"github.com/mwops/mwops/internal/naming"
)

// validateSpec checks the kind-specific shape rules of a PostgreSQL
// platform. It runs on create and on update (against the patched copy).
func (u *UseCase) validateSpec(p *model.PostgresPlatform) error {
	if err := naming.ValidatePlatformName(p.Name); err != nil {
		return model.NewValidationError("name", "%v", err)
	}
	if p.ProjectID == 0 {
		return model.NewValidationError("project_id", "project_id is required")
	}
	if p.ClusterID == 0 {
		return model.NewValidationError("cluster_id", "cluster_id is required")
	}
	if p.Instances < 1 || p.Instances%2 == 0 {
		return model.NewValidationError("instances", "Instances must be an odd number (1, 3, 5, ...)")
	}
	if _, err := resource.ParseQuantity(p.StorageSize); err != nil {
		return model.NewValidationError("storage_size", "invalid quantity %q", p.StorageSize)
	}
	if p.Image == "" {
		return model.NewValidationError("image", "image is required")
	}
	if err := checkRequestLimit("cpu", p.CPURequest, p.CPULimit); err != nil {
		return err
	}
	if err := checkRequestLimit("memory", p.MemoryRequest, p.MemoryLimit); err != nil {
		return err
	}
	if p.BackupDestination != "" {
		if err := validateBackupDestination(p.BackupDestination); err != nil {
			return err
		}
	}
	if err := u.checkImageCatalog(p.Image); err != nil {
		return err
	}
	return nil
}

// checkRequestLimit enforces request <= limit for one resource dimension.
// Either side may be empty, which means unconstrained.
func checkRequestLimit(dim, request, limit string) error {
	if request == "" || limit == "" {
		if request != "" {
			if _, err := resource.ParseQuantity(request); err != nil {
				return model.NewValidationError(dim+"_request", "invalid quantity %q", request)
			}
		}
		if limit != "" {
			if _, err := resource.ParseQuantity(limit); err != nil {
				return model.NewValidationError(dim+"_limit", "invalid quantity %q", limit)
			}
		}
		return nil
	}
	req, err := resource.ParseQuantity(request)
	if err != nil {
		return model.NewValidationError(dim+"_request", "invalid quantity %q", request)
	}
	lim, err := resource.ParseQuantity(limit)
	if err != nil {
		return model.NewValidationError(dim+"_limit", "invalid quantity %q", limit)
	}
	if req.Cmp(lim) > 0 {
		return model.NewValidationError(dim+"_request", "%s request %s exceeds limit %s", dim, request, limit)
	}
	return nil
}

// validateBackupDestination requires an S3-style URI with a non-empty
// bucket, e.g. s3://bucket/path.
func validateBackupDestination(dest string) error {
	parsed, err := url.Parse(dest)
	if err != nil || parsed.Scheme != "s3" || parsed.Host == "" {
		return model.NewValidationError("backup_destination", "must be an s3://bucket/... URI")
	}
	return nil
}

// checkImageCatalog rejects an image tag absent from the shipped catalog.
// An empty or missing catalog accepts any tag.
func (u *UseCase) checkImageCatalog(image string) error {
	if u.Renderer == nil {
		return nil
	}
	options, err := u.Renderer.Images(model.PlatformKindPostgres)
	if err != nil || len(options) == 0 {
		return nil
	}
	for _, opt := range options {
		if opt.Image == image {
			return nil
		}
	}
	return model.NewValidationError("image", "unknown image %q", image)
}
