package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileSlot stores each key as <dir>/<key>.json. Writes go to a temp file in the
// same directory and are renamed over the target.
type FileSlot struct {
	dir string
}

// NewFileSlot creates dir if needed.
func NewFileSlot(dir string) (*FileSlot, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &FileSlot{dir: dir}, nil
}

// Path returns the file backing key.
func (f *FileSlot) Path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

func (f *FileSlot) Read(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.Path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrEmpty
		}
		return nil, fmt.Errorf("failed to read slot file: %w", err)
	}
	return data, nil
}

func (f *FileSlot) Write(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(f.dir, "."+key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to set slot file mode: %w", err)
	}

	if err := os.Rename(tmpName, f.Path(key)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace slot file: %w", err)
	}
	return nil
}

func (f *FileSlot) Close() error {
	return nil
}
