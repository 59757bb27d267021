package platform

import (
	"context"
	"errors"
	"strings"

	"github.com/mwops/mwops/domain/model"
	"github.com/mwops/mwops/internal/logging"
)

const (
	defaultImageCatalog = "default"
	defaultImageMajor   = "15"
)

// resolveNamespace returns the owning project's name, or "default" when
// the project cannot be resolved. FK integrity should make the fallback
// unreachable.
func (u *UseCase) resolveNamespace(ctx context.Context, p *model.PostgresPlatform) string {
	proj, err := u.Repos.Project.Get(ctx, p.ProjectID)
	if err != nil || proj == nil || proj.Name == "" {
		logging.FromContext(ctx).Warn(ctx, "falling back to default namespace",
			"platform", p.Name, "project_id", p.ProjectID)
		return "default"
	}
	return proj.Name
}

// resolveKubeconfig validates the platform's cluster record and returns
// its kubeconfig bytes, or nil for an in-cluster record.
func (u *UseCase) resolveKubeconfig(ctx context.Context, p *model.PostgresPlatform) ([]byte, error) {
	c, err := u.Repos.Cluster.Get(ctx, p.ClusterID)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if c.Type == model.ClusterTypeInCluster {
		return nil, nil
	}
	return []byte(c.Kubeconfig), nil
}

// templateVars builds the renderer variable map: all platform fields
// flattened to primitives, the target namespace, image derivations, and
// the linked object-storage record when one exists.
func (u *UseCase) templateVars(ctx context.Context, p *model.PostgresPlatform, namespace string) (map[string]any, error) {
	vars := map[string]any{
		"id":                 p.ID,
		"uuid":               p.UUID,
		"name":               p.Name,
		"title":              p.Title,
		"project_id":         p.ProjectID,
		"cluster_id":         p.ClusterID,
		"instances":          p.Instances,
		"storage_size":       p.StorageSize,
		"image":              p.Image,
		"cpu_request":        p.CPURequest,
		"cpu_limit":          p.CPULimit,
		"memory_request":     p.MemoryRequest,
		"memory_limit":       p.MemoryLimit,
		"backup_enabled":     p.BackupEnabled,
		"backup_destination": p.BackupDestination,
		"backup_retention":   p.BackupRetention,
		"namespace":          namespace,
	}

	catalog, major := parseImageTag(p.Image)
	vars["image_catalog_name"] = catalog
	vars["image_major_version"] = major
	vars["image_name"] = p.Image

	if p.S3StorageID != 0 {
		s3, err := u.Repos.S3Storage.Get(ctx, p.S3StorageID)
		if err != nil {
			if errors.Is(err, model.ErrS3StorageNotFound) {
				logging.FromContext(ctx).Warn(ctx, "linked s3 storage not found",
					"platform", p.Name, "s3_storage_id", p.S3StorageID)
				return vars, nil
			}
			return nil, err
		}
		vars["s3_region"] = s3.Region
		vars["s3_endpoint_url"] = s3.EndpointURL
		vars["s3_access_key"] = s3.AccessKey
		secretKey := s3.SecretKey
		if u.Cipher != nil && secretKey != "" {
			if plain, err := u.Cipher.Decrypt(secretKey); err == nil {
				secretKey = plain
			} else {
				// Pass the ciphertext through; the render result will be
				// unusable but the operator can see what happened.
				logging.FromContext(ctx).Warn(ctx, "s3 secret key decryption failed",
					"platform", p.Name, "s3_storage_id", p.S3StorageID, "error", err)
			}
		}
		vars["s3_secret_key"] = secretKey
	}
	return vars, nil
}

// parseImageTag splits an image tag of the shape {catalog}:{major} at the
// last colon. Tags of any other shape fall back to the defaults.
func parseImageTag(image string) (catalog, major string) {
	i := strings.LastIndex(image, ":")
	if i <= 0 || i == len(image)-1 || strings.Contains(image[i+1:], "/") {
		return defaultImageCatalog, defaultImageMajor
	}
	return image[:i], image[i+1:]
}
