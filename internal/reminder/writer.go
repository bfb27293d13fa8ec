package reminder

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// writer saves snapshots on its own goroutine. Only the newest pending
// snapshot is kept, so a burst of mutations costs one write.
type writer struct {
	persister *Persister
	timeout   time.Duration
	log       *zap.Logger

	mu      sync.Mutex
	cond    *sync.Cond
	pending []Reminder
	dirty   bool
	queued  uint64 // generation of the newest enqueued snapshot
	written uint64 // generation of the newest snapshot handled
	closed  bool
	stopped chan struct{}
}

func newWriter(p *Persister, timeout time.Duration, log *zap.Logger) *writer {
	w := &writer{
		persister: p,
		timeout:   timeout,
		log:       log,
		stopped:   make(chan struct{}),
	}
	w.cond = sync.NewCond(&w.mu)

	go w.run()
	return w
}

// enqueue never blocks on I/O.
func (w *writer) enqueue(list []Reminder) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		w.log.Warn("reminder writer closed, change not saved", zap.Int("count", len(list)))
		return
	}
	w.pending = list
	w.dirty = true
	w.queued++
	w.cond.Broadcast()
}

func (w *writer) run() {
	defer close(w.stopped)

	w.mu.Lock()
	for {
		for !w.dirty && !w.closed {
			w.cond.Wait()
		}
		if !w.dirty {
			w.mu.Unlock()
			return
		}

		list, gen := w.pending, w.queued
		w.pending, w.dirty = nil, false
		w.mu.Unlock()

		save(w.persister, list, w.timeout, w.log)

		w.mu.Lock()
		w.written = gen
		w.cond.Broadcast()
	}
}

// flush blocks until every snapshot enqueued so far has been handled.
func (w *writer) flush() {
	w.mu.Lock()
	defer w.mu.Unlock()

	target := w.queued
	for w.written < target {
		w.cond.Wait()
	}
}

// close drains the pending snapshot and stops the goroutine.
func (w *writer) close() {
	w.mu.Lock()
	w.closed = true
	w.cond.Broadcast()
	w.mu.Unlock()

	<-w.stopped
}

// save writes list and logs any failure. In-memory state is never rolled back.
func save(p *Persister, list []Reminder, timeout time.Duration, log *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := p.Write(ctx, list); err != nil {
		log.Error("failed to persist reminders", zap.Int("count", len(list)), zap.Error(err))
	}
}
