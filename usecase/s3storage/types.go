package s3storage

import (
	"github.com/mwops/mwops/domain"
	"github.com/mwops/mwops/domain/model"
	"github.com/mwops/mwops/internal/secrets"
)

// Repos holds repositories needed for object-storage use cases.
type Repos struct {
	S3Storage domain.S3StorageRepository
}

// UseCase wires repositories and the cipher needed for object-storage use
// cases. SecretKey is a redacted field: encrypted at rest, returned to
// clients as the redaction sentinel, updated under the sentinel
// discipline.
type UseCase struct {
	Repos  *Repos
	Cipher *secrets.Cipher
}

// redactRecord replaces the stored ciphertext with the client-visible
// sentinel on a copy.
func redactRecord(s *model.S3Storage) *model.S3Storage {
	cp := *s
	cp.SecretKey = secrets.Redact(cp.SecretKey)
	return &cp
}
