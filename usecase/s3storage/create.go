package s3storage

import (
	"context"
	"time"

	"github.com/mwops/mwops/domain/model"
)

// CreateInput contains the data required to register an object-storage
// endpoint. SecretKey arrives in plaintext and is encrypted before it is
// persisted.
type CreateInput struct {
	Name        string `json:"name"`
	Region      string `json:"region"`
	EndpointURL string `json:"endpoint_url"`
	AccessKey   string `json:"access_key"`
	SecretKey   string `json:"secret_key"`
}

// CreateOutput contains the created record with the secret key redacted.
type CreateOutput struct {
	S3Storage *model.S3Storage `json:"s3_storage"`
}

// Create encrypts the secret key and persists the record. An encryption
// failure aborts the create; a half-encrypted record is never stored.
func (u *UseCase) Create(ctx context.Context, in *CreateInput) (*CreateOutput, error) {
	if in == nil || in.Name == "" {
		return nil, model.NewValidationError("name", "name is required")
	}
	secretKey := ""
	if in.SecretKey != "" {
		enc, err := u.Cipher.Encrypt(in.SecretKey)
		if err != nil {
			return nil, err
		}
		secretKey = enc
	}
	now := time.Now().UTC()
	s := &model.S3Storage{
		Name:        in.Name,
		Region:      in.Region,
		EndpointURL: in.EndpointURL,
		AccessKey:   in.AccessKey,
		SecretKey:   secretKey,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := u.Repos.S3Storage.Create(ctx, s); err != nil {
		return nil, err
	}
	return &CreateOutput{S3Storage: redactRecord(s)}, nil
}
