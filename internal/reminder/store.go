package reminder

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Store owns the ordered reminder list, newest first, and keeps the
// persisted copy in step with it.
type Store struct {
	mu        sync.RWMutex
	reminders []Reminder
	used      map[string]struct{} // every id loaded or issued, including deleted ones

	persister *Persister
	writer    *writer
	opts      storeOptions

	lmu          sync.Mutex
	listeners    map[int]Listener
	nextListener int
}

// LoadReport describes what Load found in the slot.
type LoadReport struct {
	Found   bool           // the slot held a value
	Loaded  int            // reminders now in memory
	Skipped []*RecordError // records dropped from the stored list
	Corrupt error          // non-nil when the stored value was unusable as a whole
}

// DataLost reports whether anything stored could not be loaded.
func (r LoadReport) DataLost() bool {
	return r.Corrupt != nil || len(r.Skipped) > 0
}

// NewStore creates an empty store. A nil persister keeps the store in memory
// only. Call Load once before use and Close when done.
func NewStore(p *Persister, opts ...Option) *Store {
	o := defaultStoreOptions()
	for _, opt := range opts {
		opt(&o)
	}

	s := &Store{
		reminders: []Reminder{},
		used:      make(map[string]struct{}),
		persister: p,
		opts:      o,
		listeners: make(map[int]Listener),
	}
	if p != nil && !o.syncWrites {
		s.writer = newWriter(p, o.writeTimeout, o.log)
	}
	return s
}

// Load replaces the in-memory list with the stored one. It never fails: an
// absent, unreadable or corrupt slot yields an empty list, and malformed
// records are skipped. Nothing is written back.
func (s *Store) Load(ctx context.Context) LoadReport {
	var report LoadReport
	loaded := []Reminder{}

	if s.persister != nil {
		if data, ok := s.persister.Read(ctx); ok {
			report.Found = true

			list, skipped, err := Decode(data)
			switch {
			case err != nil:
				report.Corrupt = err
				s.opts.log.Warn("stored reminders are corrupt, starting empty", zap.Error(err))
			default:
				loaded = list
				report.Skipped = skipped
				for _, rec := range skipped {
					s.opts.log.Warn("skipped malformed reminder", zap.Int("index", rec.Index),
						zap.String("id", rec.ID), zap.Error(rec.Err))
				}
			}
		}
	}

	s.mu.Lock()
	s.reminders = loaded
	for _, r := range loaded {
		s.used[r.ID] = struct{}{}
	}
	for _, rec := range report.Skipped {
		if rec.ID != "" {
			s.used[rec.ID] = struct{}{}
		}
	}
	counts := CountsOf(s.reminders)
	s.mu.Unlock()

	report.Loaded = len(loaded)
	s.opts.log.Info("reminders loaded", zap.Int("count", report.Loaded),
		zap.Int("skipped", len(report.Skipped)), zap.Bool("corrupt", report.Corrupt != nil))

	s.notify(Event{Kind: EventLoaded, Counts: counts})
	return report
}

// Create adds a reminder at the front of the list and schedules a save. in
// must already have passed ValidateInput.
func (s *Store) Create(in Input) Reminder {
	s.mu.Lock()
	r := Reminder{
		ID:          s.uniqueIDLocked(),
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate.UTC(),
		Completed:   false,
		CreatedAt:   s.opts.now().UTC(),
	}
	r = r.clone()

	list := make([]Reminder, 0, len(s.reminders)+1)
	list = append(list, r)
	s.reminders = append(list, s.reminders...)

	counts := CountsOf(s.reminders)
	s.saveLocked()
	s.mu.Unlock()

	s.opts.log.Debug("reminder created", zap.String("id", r.ID))
	s.notify(Event{Kind: EventCreated, Reminder: r.clone(), Counts: counts})
	return r.clone()
}

// ToggleComplete flips Completed on the reminder with id and returns its new
// state. ok is false, and nothing happens, when id is unknown.
func (s *Store) ToggleComplete(id string) (r Reminder, ok bool) {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return Reminder{}, false
	}

	s.reminders[i].Completed = !s.reminders[i].Completed
	r = s.reminders[i].clone()

	counts := CountsOf(s.reminders)
	s.saveLocked()
	s.mu.Unlock()

	s.opts.log.Debug("reminder toggled", zap.String("id", id), zap.Bool("completed", r.Completed))
	s.notify(Event{Kind: EventToggled, Reminder: r.clone(), Counts: counts})
	return r, true
}

// Delete removes the reminder with id and returns it. ok is false, and
// nothing happens, when id is unknown.
func (s *Store) Delete(id string) (r Reminder, ok bool) {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return Reminder{}, false
	}

	r = s.reminders[i]
	list := make([]Reminder, 0, len(s.reminders)-1)
	list = append(list, s.reminders[:i]...)
	s.reminders = append(list, s.reminders[i+1:]...)

	counts := CountsOf(s.reminders)
	s.saveLocked()
	s.mu.Unlock()

	s.opts.log.Debug("reminder deleted", zap.String("id", id))
	s.notify(Event{Kind: EventDeleted, Reminder: r.clone(), Counts: counts})
	return r.clone(), true
}

// Counts tallies the current list.
func (s *Store) Counts() Counts {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return CountsOf(s.reminders)
}

// Snapshot returns a copy of the list, newest first.
func (s *Store) Snapshot() []Reminder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// View returns the reminders matching mode.
func (s *Store) View(mode Filter) []Reminder {
	return Apply(s.Snapshot(), mode)
}

// Get returns the reminder with id.
func (s *Store) Get(id string) (Reminder, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexLocked(id)
	if i < 0 {
		return Reminder{}, false
	}
	return s.reminders[i].clone(), true
}

// Subscribe registers fn for every subsequent event. The returned function
// removes it.
func (s *Store) Subscribe(fn Listener) (cancel func()) {
	s.lmu.Lock()
	id := s.nextListener
	s.nextListener++
	s.listeners[id] = fn
	s.lmu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.lmu.Lock()
			delete(s.listeners, id)
			s.lmu.Unlock()
		})
	}
}

// Flush waits until every change made so far has been handed to the slot.
func (s *Store) Flush() {
	if s.writer != nil {
		s.writer.flush()
	}
}

// Close flushes pending saves and stops the background writer. Mutations
// after Close stay in memory only.
func (s *Store) Close() error {
	if s.writer != nil {
		s.writer.close()
	}
	return nil
}

func (s *Store) notify(ev Event) {
	s.lmu.Lock()
	fns := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.lmu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

func (s *Store) saveLocked() {
	if s.persister == nil {
		return
	}
	snap := s.snapshotLocked()
	if s.writer != nil {
		s.writer.enqueue(snap)
		return
	}
	save(s.persister, snap, s.opts.writeTimeout, s.opts.log)
}

func (s *Store) snapshotLocked() []Reminder {
	out := make([]Reminder, len(s.reminders))
	for i, r := range s.reminders {
		out[i] = r.clone()
	}
	return out
}

func (s *Store) indexLocked(id string) int {
	for i := range s.reminders {
		if s.reminders[i].ID == id {
			return i
		}
	}
	return -1
}

// uniqueIDLocked draws from the configured generator and falls back to a
// fresh UUID if the generator repeats any id this store has seen, deleted
// ones included.
func (s *Store) uniqueIDLocked() string {
	id := s.opts.newID()
	for id == "" || s.seenLocked(id) {
		s.opts.log.Warn("id generator returned a used id, falling back to uuid", zap.String("id", id))
		id = uuid.NewString()
	}
	s.used[id] = struct{}{}
	return id
}

func (s *Store) seenLocked(id string) bool {
	_, ok := s.used[id]
	return ok
}

// Now reads the store's clock.
func (s *Store) Now() time.Time {
	return s.opts.now()
}
