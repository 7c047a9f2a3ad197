package config

import (
	"context"
	"fmt"
	"os"

	"workclock/internal/repository/mongodb"
	"workclock/internal/repository/postgres"
	"workclock/internal/repository/sqlite"
	"workclock/internal/storage"
)

// CreateStore opens the storage backend selected by the configuration
func CreateStore(ctx context.Context, config *Config) (storage.Store, error) {
	switch config.Storage.Backend {
	case BackendMemory:
		return storage.NewMemoryStore(), nil

	case BackendSQLite:
		if err := os.MkdirAll(config.Storage.Dir, os.FileMode(config.Storage.DirPermissions)); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		repo, err := sqlite.NewWithOptions(config.GetDatabasePath(), sqlite.Options{
			QueryTimeout: config.GetQueryTimeout(),
			WriteTimeout: config.GetWriteTimeout(),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		return repo, nil

	case BackendPostgres:
		repo, err := postgres.New(ctx, config.Storage.PostgresDSN, postgres.Options{
			QueryTimeout: config.GetQueryTimeout(),
			WriteTimeout: config.GetWriteTimeout(),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		return repo, nil

	case BackendMongo:
		repo, err := mongodb.New(ctx, config.Storage.MongoURI, mongodb.Options{
			Database:     config.Storage.MongoDatabase,
			Collection:   config.Storage.MongoCollection,
			QueryTimeout: config.GetQueryTimeout(),
			WriteTimeout: config.GetWriteTimeout(),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to mongo: %w", err)
		}
		return repo, nil

	default:
		return nil, &ConfigError{Field: "storage.backend", Message: fmt.Sprintf("unknown backend %q", config.Storage.Backend)}
	}
}

// CreateTestStore creates an in-memory SQLite store for testing
func CreateTestStore() (storage.Store, error) {
	repo, err := sqlite.New(sqlite.MemoryPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize test database: %w", err)
	}
	return repo, nil
}
