package reminder

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultWriteTimeout = 5 * time.Second

type storeOptions struct {
	now          func() time.Time
	newID        func() string
	log          *zap.Logger
	syncWrites   bool
	writeTimeout time.Duration
}

func defaultStoreOptions() storeOptions {
	return storeOptions{
		now:          time.Now,
		newID:        uuid.NewString,
		log:          zap.NewNop(),
		writeTimeout: defaultWriteTimeout,
	}
}

// Option configures a Store.
type Option func(*storeOptions)

// WithClock replaces time.Now as the source of CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(o *storeOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// WithIDGenerator replaces the UUID generator.
func WithIDGenerator(newID func() string) Option {
	return func(o *storeOptions) {
		if newID != nil {
			o.newID = newID
		}
	}
}

// WithLogger sets the logger for store diagnostics.
func WithLogger(log *zap.Logger) Option {
	return func(o *storeOptions) {
		if log != nil {
			o.log = log
		}
	}
}

// WithSyncWrites saves inside each mutating call instead of on the
// background writer. Save errors are still only logged.
func WithSyncWrites() Option {
	return func(o *storeOptions) {
		o.syncWrites = true
	}
}

// WithWriteTimeout bounds each slot write.
func WithWriteTimeout(d time.Duration) Option {
	return func(o *storeOptions) {
		if d > 0 {
			o.writeTimeout = d
		}
	}
}
