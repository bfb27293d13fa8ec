// Package storage provides durable key-value slots. Each slot holds one opaque
// value per key and replaces it atomically on write.
package storage

import (
	"context"
	"errors"
)

// ErrEmpty is returned by Read when nothing has been written under the key.
var ErrEmpty = errors.New("slot is empty")

// Slot is a durable key-value cell.
type Slot interface {
	// Read returns the value last written under key, or ErrEmpty.
	Read(ctx context.Context, key string) ([]byte, error)
	// Write replaces the value under key. A concurrent Read observes either
	// the previous value or the new one, never a mix.
	Write(ctx context.Context, key string, value []byte) error
	Close() error
}
