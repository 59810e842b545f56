// Package backend selects and constructs the persistence backend the ledger
// record is mirrored to.
package backend

import (
	"context"
	"fmt"
	"log/slog"

	"spareplan/internal/config"
	"spareplan/internal/kvstore"
	filestore "spareplan/internal/kvstore/file"
	"spareplan/internal/kvstore/memory"
	mongostore "spareplan/internal/kvstore/mongo"
	sqlitestore "spareplan/internal/kvstore/sqlite"
)

// BackendType represents the type of backend
type BackendType string

const (
	MemoryBackend BackendType = "memory"
	FileBackend   BackendType = "file"
	SQLiteBackend BackendType = "sqlite"
	MongoBackend  BackendType = "mongo"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case MemoryBackend, FileBackend, SQLiteBackend, MongoBackend:
		return true
	default:
		return false
	}
}

// CleanupFunc releases backend resources on shutdown. May be nil.
type CleanupFunc func(ctx context.Context) error

// Result contains the backend instance and optional cleanup function
type Result struct {
	Store   kvstore.Store
	Cleanup CleanupFunc
}

// Create builds the kvstore backend named by the application config.
func Create(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}

	backendType := BackendType(cfg.StorageBackend)
	switch backendType {
	case MemoryBackend:
		logger.Info("Initialized memory backend")
		return &Result{Store: memory.New()}, nil

	case FileBackend:
		store, err := filestore.New(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("initialize file backend: %w", err)
		}
		logger.Info("Initialized file backend", "data_dir", cfg.DataDir)
		return &Result{Store: store}, nil

	case SQLiteBackend:
		store, err := sqlitestore.New(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite backend: %w", err)
		}
		logger.Info("Initialized sqlite backend", "db_path", cfg.SQLiteDBPath)
		return &Result{
			Store:   store,
			Cleanup: func(context.Context) error { return store.Close() },
		}, nil

	case MongoBackend:
		store, err := mongostore.New(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection)
		if err != nil {
			return nil, fmt.Errorf("initialize mongo backend: %w", err)
		}
		logger.Info("Initialized mongo backend", "database", cfg.MongoDatabase, "collection", cfg.MongoCollection)
		return &Result{Store: store, Cleanup: store.Close}, nil

	default:
		return nil, fmt.Errorf("invalid backend type: %s", backendType)
	}
}
