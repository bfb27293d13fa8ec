package reminder

import (
	"context"
	"errors"
	"fmt"

	"github.com/notexe/reminder-buddy/internal/storage"
	"go.uber.org/zap"
)

// SlotKey is the fixed key the reminder list is stored under.
const SlotKey = "reminders-app-data"

// Persister reads and writes the whole reminder list in one storage slot.
type Persister struct {
	slot storage.Slot
	key  string
	log  *zap.Logger
}

// NewPersister binds slot to key. An empty key means SlotKey; a nil logger
// discards diagnostics.
func NewPersister(slot storage.Slot, key string, log *zap.Logger) *Persister {
	if key == "" {
		key = SlotKey
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Persister{slot: slot, key: key, log: log}
}

// Key returns the slot key in use.
func (p *Persister) Key() string {
	return p.key
}

// Read returns the raw stored list. ok is false when nothing is stored or the
// slot could not be read; read failures are logged, not returned.
func (p *Persister) Read(ctx context.Context) (data []byte, ok bool) {
	data, err := p.slot.Read(ctx, p.key)
	if err != nil {
		if !errors.Is(err, storage.ErrEmpty) {
			p.log.Warn("reminder slot unavailable, starting empty",
				zap.String("key", p.key), zap.Error(err))
		}
		return nil, false
	}
	return data, true
}

// Write serialises list and replaces the stored value.
func (p *Persister) Write(ctx context.Context, list []Reminder) error {
	data, err := Encode(list)
	if err != nil {
		return err
	}
	if err := p.slot.Write(ctx, p.key, data); err != nil {
		return fmt.Errorf("failed to save %d reminders: %w", len(list), err)
	}
	p.log.Debug("reminders saved", zap.String("key", p.key), zap.Int("count", len(list)))
	return nil
}
