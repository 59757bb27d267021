package model

import "time"

// PlatformKindPostgres is the only platform kind shipped with the
// controller. The template bundle and action registry are keyed by kind.
const PlatformKindPostgres = "postgres"

// PostgresPlatform is the desired state of one managed PostgreSQL cluster
// driven through the CNPG operator.
//
// Name, ProjectID, StorageSize, and Image are immutable after creation.
type PostgresPlatform struct {
	ID        int64
	UUID      string
	Name      string // lowercase kebab, unique within the owning project
	Title     string
	ProjectID int64
	ClusterID int64

	Instances   int    // odd, >= 1
	StorageSize string // quantity like "1Gi"
	Image       string // catalog tag, usually "{catalog}:{major}"

	CPURequest    string
	CPULimit      string
	MemoryRequest string
	MemoryLimit   string

	BackupEnabled     bool
	BackupDestination string // s3://bucket/path
	BackupRetention   string // e.g. "30d"
	S3StorageID       int64  // 0 when no object storage is linked

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Kind returns the platform kind tag for registries and template lookup.
func (p *PostgresPlatform) Kind() string { return PlatformKindPostgres }

// PostgresPlatformPatch carries an update request. Nil fields are left
// unchanged. Immutable fields are present so that the service can reject
// attempts to change them with a field-scoped error.
type PostgresPlatformPatch struct {
	Name              *string
	Title             *string
	ProjectID         *int64
	ClusterID         *int64
	Instances         *int
	StorageSize       *string
	Image             *string
	CPURequest        *string
	CPULimit          *string
	MemoryRequest     *string
	MemoryLimit       *string
	BackupEnabled     *bool
	BackupDestination *string
	BackupRetention   *string
	S3StorageID       *int64
}
