package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/notexe/reminder-buddy/internal/config"
	"github.com/redis/go-redis/v9"
)

// Open creates the Slot selected by cfg.Backend.
func Open(ctx context.Context, cfg config.StorageConfig) (Slot, error) {
	switch cfg.Backend {
	case config.BackendFile:
		slot, err := NewFileSlot(cfg.File.Dir)
		if err != nil {
			return nil, err
		}
		return slot, nil

	case config.BackendSQLite:
		slot, err := NewSQLiteSlot(cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		return slot, nil

	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		pingCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.Timeout)*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to reach redis at %s: %w", cfg.Redis.Addr, err)
		}
		return NewRedisSlot(client, cfg.Redis.Prefix), nil

	case config.BackendMemory:
		return NewMemorySlot(), nil

	default:
		return nil, fmt.Errorf("unknown storage backend: %s (supported: %s, %s, %s, %s)",
			cfg.Backend, config.BackendFile, config.BackendSQLite, config.BackendRedis, config.BackendMemory)
	}
}
