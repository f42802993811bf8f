package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/viper"

	"github.com/chrishsmith/sourcify-sub003/internal/config"
	"github.com/chrishsmith/sourcify-sub003/internal/oracle"
	"github.com/chrishsmith/sourcify-sub003/internal/service"
	"github.com/chrishsmith/sourcify-sub003/internal/storage"
)

// initStorage opens the hierarchy database, runs migrations, and wraps
// it in the read cache. Callers own both handles and must Close them;
// closing the cache stops its cleanup goroutine.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, *storage.CachedStore, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDBPath()
	} else {
		dbPath = config.ExpandPath(dbPath)
	}

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	ttl := viper.GetDuration("database.cache_ttl")
	if ttl == 0 {
		ttl = 15 * time.Minute
	}
	return store, storage.NewCachedStore(store, ttl), nil
}

// initOracle builds the oracle client, or returns nil when no API key
// is configured so classification runs on deterministic resolvers only.
func initOracle(logger *slog.Logger) (service.Oracle, error) {
	cfg := config.LoadOracleConfig()
	if cfg.APIKey == "" {
		logger.Warn("no oracle API key configured, oracle consultation disabled")
		return nil, nil
	}
	client, err := oracle.NewClient(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create oracle client: %w", err)
	}
	return client, nil
}
