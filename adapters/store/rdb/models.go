package rdb

import "time"

// ProjectRecord is the persistence model for domain Project.
// Table name: mw_project
type ProjectRecord struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Name      string    `gorm:"type:text;not null;uniqueIndex"`
	Title     string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (ProjectRecord) TableName() string { return "mw_project" }

// ClusterRecord persistence model
type ClusterRecord struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	Name       string    `gorm:"type:text;not null;uniqueIndex"`
	Type       string    `gorm:"type:text;not null"`
	Kubeconfig string    `gorm:"type:text"`
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`
}

func (ClusterRecord) TableName() string { return "mw_k8s_cluster" }

// S3StorageRecord persistence model. SecretKey is ciphertext.
type S3StorageRecord struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	Name        string    `gorm:"type:text;not null;uniqueIndex"`
	Region      string    `gorm:"type:text"`
	EndpointURL string    `gorm:"type:text"`
	AccessKey   string    `gorm:"type:text"`
	SecretKey   string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

func (S3StorageRecord) TableName() string { return "mw_s3_storage" }

// PostgresPlatformRecord persistence model for the PG platform kind.
type PostgresPlatformRecord struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	UUID      string `gorm:"type:text;not null;uniqueIndex"`
	Name      string `gorm:"type:text;not null;index:idx_mw_platform_postgres_project_name,unique"`
	Title     string `gorm:"type:text"`
	ProjectID int64  `gorm:"not null;index:idx_mw_platform_postgres_project_name,unique"`
	ClusterID int64  `gorm:"not null"`

	Instances   int    `gorm:"not null"`
	StorageSize string `gorm:"type:text;not null"`
	Image       string `gorm:"type:text;not null"`

	CPURequest    string `gorm:"type:text"`
	CPULimit      string `gorm:"type:text"`
	MemoryRequest string `gorm:"type:text"`
	MemoryLimit   string `gorm:"type:text"`

	BackupEnabled     bool   `gorm:"not null"`
	BackupDestination string `gorm:"type:text"`
	BackupRetention   string `gorm:"type:text"`
	S3StorageID       int64

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (PostgresPlatformRecord) TableName() string { return "mw_platform_postgres" }

// PlatformStateRecord persistence model, 1:1 by platform id.
// ExtraData is a JSON-encoded cache of kind-specific observed fields.
type PlatformStateRecord struct {
	PlatformID    int64     `gorm:"primaryKey"`
	Status        string    `gorm:"type:text;not null"`
	Active        bool      `gorm:"not null"`
	Message       string    `gorm:"type:text"`
	LastHeartbeat time.Time `gorm:""`
	ExtraData     string    `gorm:"type:text"`

	DBUser   string `gorm:"type:text"`
	DBName   string `gorm:"type:text"`
	DBPass   string `gorm:"type:text"` // ciphertext
	DBCACert string `gorm:"type:text"`
}

func (PlatformStateRecord) TableName() string { return "mw_platform_state_postgres" }

// PollLeaseRecord is the single-concurrency poll key per platform.
type PollLeaseRecord struct {
	PlatformID int64     `gorm:"primaryKey"`
	Holder     string    `gorm:"type:text;not null"`
	ExpiresAt  time.Time `gorm:"not null"`
}

func (PollLeaseRecord) TableName() string { return "mw_poll_lease" }
