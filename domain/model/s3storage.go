package model

import "time"

// S3Storage references an S3-compatible object storage endpoint used as a
// backup destination. SecretKey is ciphertext at rest and is decrypted only
// when injected into the template variable map.
type S3Storage struct {
	ID          int64
	Name        string
	Region      string
	EndpointURL string // optional; for MinIO-style services
	AccessKey   string
	SecretKey   string // encrypted at rest (redacted field)
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
