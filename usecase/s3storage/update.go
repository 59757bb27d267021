package s3storage

import (
	"context"
	"fmt"
	"time"

	"github.com/mwops/mwops/domain/model"
)

// UpdateInput carries a partial update. Nil fields are left unchanged.
// SecretKey follows the sentinel discipline: __REDACTED__ keeps the stored
// ciphertext, __CLEAR__ erases it, anything else is encrypted and stored.
type UpdateInput struct {
	ID          int64   `json:"id"`
	Name        *string `json:"name"`
	Region      *string `json:"region"`
	EndpointURL *string `json:"endpoint_url"`
	AccessKey   *string `json:"access_key"`
	SecretKey   *string `json:"secret_key"`
}

// UpdateOutput contains the updated record with the secret key redacted.
type UpdateOutput struct {
	S3Storage *model.S3Storage `json:"s3_storage"`
}

// Update applies a patch to a stored record.
func (u *UseCase) Update(ctx context.Context, in *UpdateInput) (*UpdateOutput, error) {
	if in == nil {
		return nil, fmt.Errorf("UpdateInput is required")
	}
	s, err := u.Repos.S3Storage.Get(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		s.Name = *in.Name
	}
	if in.Region != nil {
		s.Region = *in.Region
	}
	if in.EndpointURL != nil {
		s.EndpointURL = *in.EndpointURL
	}
	if in.AccessKey != nil {
		s.AccessKey = *in.AccessKey
	}
	if in.SecretKey != nil {
		resolved, err := u.Cipher.ApplyRedactedUpdate(s.SecretKey, *in.SecretKey)
		if err != nil {
			return nil, err
		}
		s.SecretKey = resolved
	}
	s.UpdatedAt = time.Now().UTC()
	if err := u.Repos.S3Storage.Update(ctx, s); err != nil {
		return nil, err
	}
	return &UpdateOutput{S3Storage: redactRecord(s)}, nil
}
