package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/volunteer-board/internal/config"
	"github.com/jakechorley/volunteer-board/pkg/kvstore"
	"github.com/jakechorley/volunteer-board/pkg/kvstore/redisstore"
	"github.com/jakechorley/volunteer-board/pkg/kvstore/sqlitestore"
	"github.com/jakechorley/volunteer-board/pkg/postgres"
)

// openStore connects the key-value backend named in cfg
func openStore(ctx context.Context, cfg config.StoreConfig, logger *zap.Logger) (kvstore.Store, error) {
	logger.Info("Opening store", zap.String("backend", cfg.Backend))

	switch cfg.Backend {
	case config.BackendMemory:
		logger.Warn("Using in-memory store: data is lost on exit")
		return kvstore.NewMemory(), nil

	case config.BackendFile:
		logger.Debug("File store", zap.String("path", cfg.FilePath))
		s, err := kvstore.NewFile(cfg.FilePath)
		if err != nil {
			return nil, err
		}
		return s, nil

	case config.BackendSQLite:
		logger.Debug("SQLite store", zap.String("path", cfg.SQLitePath))
		s, err := sqlitestore.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return s, nil

	case config.BackendPostgres:
		s, err := postgres.Open(ctx, cfg.PostgresURL, logger)
		if err != nil {
			return nil, err
		}
		return s, nil

	case config.BackendRedis:
		s, err := redisstore.New(cfg.RedisURL, cfg.RedisPrefix)
		if err != nil {
			return nil, err
		}
		return s, nil
	}

	return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
}
