package main

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gorm.io/gorm"

	"github.com/mwops/mwops/adapters/store/memory"
	"github.com/mwops/mwops/adapters/store/rdb"
	"github.com/mwops/mwops/usecase/platform"
)

// findFlag walks up the command hierarchy looking for a persistent flag.
func findFlag(cmd *cobra.Command, name string) *pflag.Flag {
	for c := cmd; c != nil; c = c.Parent() {
		if f := c.PersistentFlags().Lookup(name); f != nil {
			return f
		}
		if f := c.Flags().Lookup(name); f != nil {
			return f
		}
	}
	return nil
}

// getDBURL extracts the db-url flag value from the command hierarchy.
func getDBURL(cmd *cobra.Command) string {
	f := findFlag(cmd, "db-url")
	if f != nil && f.Value.String() != "" {
		return f.Value.String()
	}
	return "sqlite:./mwops.db"
}

// buildRepos opens the store behind db-url and returns the full repository
// set. "memory:" serves throwaway runs and tests.
func buildRepos(cmd *cobra.Command) (*platform.Repos, error) {
	dbURL := getDBURL(cmd)
	if strings.HasPrefix(dbURL, "memory:") {
		return &platform.Repos{
			Project:   memory.NewInMemoryProjectRepository(),
			Cluster:   memory.NewInMemoryClusterRepository(),
			S3Storage: memory.NewInMemoryS3StorageRepository(),
			Platform:  memory.NewInMemoryPlatformRepository(),
			State:     memory.NewInMemoryPlatformStateRepository(),
		}, nil
	}
	db, err := openDB(dbURL)
	if err != nil {
		return nil, err
	}
	return &platform.Repos{
		Project:   rdb.NewProjectRepository(db),
		Cluster:   rdb.NewClusterRepository(db),
		S3Storage: rdb.NewS3StorageRepository(db),
		Platform:  rdb.NewPlatformRepository(db),
		State:     rdb.NewPlatformStateRepository(db),
	}, nil
}

// openDB opens and migrates the relational store.
func openDB(dbURL string) (*gorm.DB, error) {
	db, err := rdb.OpenFromURL(dbURL)
	if err != nil {
		return nil, err
	}
	if err := rdb.AutoMigrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
