// Package rdb is the relational store adapter backed by GORM. It persists
// the mw_* tables and implements the repository interfaces of the domain
// package.
package rdb

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// OpenFromURL opens a GORM DB based on a db-url string.
// Supported:
//   - sqlite:<dsn>    e.g., sqlite:./mwops.db or sqlite::memory:
//   - sqlite3:<dsn>   alias of sqlite
//   - postgres://...  standard PostgreSQL DSN
func OpenFromURL(dbURL string) (*gorm.DB, error) {
	switch {
	case strings.HasPrefix(dbURL, "sqlite:"):
		dsn := strings.TrimPrefix(dbURL, "sqlite:")
		if dsn == "" {
			dsn = "./mwops.db"
		}
		return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	case strings.HasPrefix(dbURL, "sqlite3:"):
		dsn := strings.TrimPrefix(dbURL, "sqlite3:")
		if dsn == "" {
			dsn = "./mwops.db"
		}
		return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	case strings.HasPrefix(dbURL, "postgres://") || strings.HasPrefix(dbURL, "postgresql://"):
		return gorm.Open(postgres.Open(dbURL), &gorm.Config{})
	default:
		return nil, fmt.Errorf("unsupported db scheme: %s", dbURL)
	}
}

// AutoMigrate applies schema migrations for all RDB models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&ProjectRecord{},
		&ClusterRecord{},
		&S3StorageRecord{},
		&PostgresPlatformRecord{},
		&PlatformStateRecord{},
		&PollLeaseRecord{},
	)
}
