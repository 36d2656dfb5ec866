package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mmynk/catalog/internal/config"
	"github.com/mmynk/catalog/internal/storage/sqlstore"
)

// openStore connects to the configured database and applies pending
// migrations.
func openStore(ctx context.Context, db config.DatabaseConfig) (*sqlstore.Store, error) {
	if db.Driver == sqlstore.DriverSQLite {
		// Create parent directory if it doesn't exist
		if err := os.MkdirAll(filepath.Dir(db.Path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	store, err := sqlstore.Open(ctx, sqlstore.Options{
		Driver:       db.Driver,
		DSN:          db.DSN(),
		MaxOpenConns: db.MaxOpenConns,
	})
	if err != nil {
		return nil, err
	}

	applied, err := store.Migrate(ctx)
	if err != nil {
		store.Close()
		return nil, err
	}
	if len(applied) > 0 {
		slog.Info("Applied migrations", "versions", applied)
	}
	return store, nil
}
