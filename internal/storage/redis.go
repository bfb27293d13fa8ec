package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisSlot keeps each key as a plain Redis string under prefix+key, with no TTL.
type RedisSlot struct {
	client *redis.Client
	prefix string
}

// NewRedisSlot wraps an existing client. The slot closes the client on Close.
func NewRedisSlot(client *redis.Client, prefix string) *RedisSlot {
	return &RedisSlot{client: client, prefix: prefix}
}

func (r *RedisSlot) key(key string) string {
	return r.prefix + key
}

func (r *RedisSlot) Read(ctx context.Context, key string) ([]byte, error) {
	value, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrEmpty
		}
		return nil, fmt.Errorf("failed to read slot: %w", err)
	}
	return value, nil
}

func (r *RedisSlot) Write(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to write slot: %w", err)
	}
	return nil
}

func (r *RedisSlot) Close() error {
	return r.client.Close()
}
