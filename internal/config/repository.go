package config

import (
	"fmt"
	"os"
	"path/filepath"

	"clockit/internal/repository/sqlite"
)

// CreateRepository opens the configured database, creating its directory when needed
func CreateRepository(config *Config) (sqlite.Repository, error) {
	dbPath := config.GetDatabasePath()

	if dbPath != ":memory:" {
		perm := os.FileMode(config.Database.DirPermissions)
		if perm == 0 {
			perm = 0755
		}
		if err := os.MkdirAll(filepath.Dir(dbPath), perm); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	repo, err := sqlite.NewWithOptions(dbPath, sqlite.Options{
		BusyTimeout:  config.Database.BusyTimeout,
		QueryTimeout: config.Database.QueryTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return repo, nil
}

// CreateTestRepository creates an in-memory repository for testing
func CreateTestRepository() (sqlite.Repository, error) {
	repo, err := sqlite.New(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize test database: %w", err)
	}

	return repo, nil
}
