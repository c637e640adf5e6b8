package main

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/mazerunner70/housef3/internal/config"
	"github.com/mazerunner70/housef3/internal/storage"
)

// databasePath resolves the SQLite database location from config, falling
// back to the standard data directory.
func databasePath() (string, error) {
	if path := viper.GetString("database.path"); path != "" {
		return config.ExpandPath(path), nil
	}
	return config.DefaultDatabasePath()
}

// openStorage opens the database and ensures the schema is current.
func openStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	path, err := databasePath()
	if err != nil {
		return nil, err
	}

	db, err := storage.NewSQLiteStorage(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database at %s: %w", path, err)
	}

	if err := db.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}
