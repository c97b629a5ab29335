// Package store holds the current canonical state of every active schedule
// under an opaque handle.
//
// The store is the only mutable shared resource in the engine, so it owns
// two guarantees: handles expire after a configurable idle TTL, and the
// read-modify-write cycle of a mutation is serialized per handle — two
// edits racing on the same schedule can never interleave and lose an
// update. Different handles proceed fully independently.
package store

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nmoreno/semplan/internal/plan"
)

// nowFunc is a package-level variable for testability.
// Tests can replace this to control time in assertions.
var nowFunc = time.Now

// maxActionHistory bounds the per-handle audit trail.
const maxActionHistory = 20

// Config holds store tuning knobs.
type Config struct {
	// TTL is the sliding idle timeout: a handle neither read nor written
	// for this long is evicted.
	TTL time.Duration
	// SweepInterval controls the background eviction pass. Zero disables
	// the sweeper; expired handles are still rejected lazily on access.
	SweepInterval time.Duration
	Logger        zerolog.Logger
}

// DefaultConfig returns the store defaults: 30-minute TTL, 5-minute sweep.
func DefaultConfig() Config {
	return Config{
		TTL:           30 * time.Minute,
		SweepInterval: 5 * time.Minute,
		Logger:        zerolog.Nop(),
	}
}

// Action is one audit entry: what happened to a handle and when.
type Action struct {
	Label string    `json:"label"`
	At    time.Time `json:"at"`
}

// entry is the per-handle state. mu serializes read-modify-write cycles;
// lastAccess is atomic so the sweeper can inspect it without taking the
// per-handle lock.
type entry struct {
	mu         sync.Mutex
	plan       *plan.SchedulePlan
	actions    []Action
	lastAccess atomic.Int64 // unix nanos
}

func (e *entry) touch() { e.lastAccess.Store(nowFunc().UnixNano()) }

// Store is the handle-keyed schedule registry.
type Store struct {
	cfg Config
	log zerolog.Logger

	mu      sync.Mutex
	entries map[string]*entry

	stop     chan struct{}
	stopOnce sync.Once
}

// New creates a Store and starts its background sweeper (if configured).
// Call Close on shutdown to stop the sweeper.
func New(cfg Config) *Store {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultConfig().TTL
	}
	s := &Store{
		cfg:     cfg,
		log:     cfg.Logger,
		entries: make(map[string]*entry),
		stop:    make(chan struct{}),
	}
	if cfg.SweepInterval > 0 {
		go s.sweepLoop()
	}
	return s
}

// Close stops the background sweeper. Safe to call more than once.
func (s *Store) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
}

// Create registers a new canonical schedule and returns its handle.
func (s *Store) Create(p *plan.SchedulePlan) string {
	handle := uuid.NewString()
	e := &entry{
		plan:    p.Clone(),
		actions: []Action{{Label: "created", At: nowFunc()}},
	}
	e.touch()

	s.mu.Lock()
	s.entries[handle] = e
	s.mu.Unlock()

	s.log.Debug().Str("handle", handle).Msg("schedule registered")
	return handle
}

// Get returns a snapshot of the handle's current state and refreshes its
// TTL. The snapshot is a deep copy: callers may read or edit it freely
// without affecting stored state.
func (s *Store) Get(handle string) (*plan.SchedulePlan, error) {
	e, err := s.acquire(handle)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.touch()
	return e.plan.Clone(), nil
}

// Update atomically replaces the handle's state, recording actionLabel in
// the audit trail and refreshing the TTL.
func (s *Store) Update(handle string, p *plan.SchedulePlan, actionLabel string) error {
	e, err := s.acquire(handle)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.replace(p, actionLabel)
	return nil
}

// Mutate runs fn under the handle's exclusive lock: fn receives a snapshot
// of current state and returns the replacement plus an action label. If fn
// errors, nothing is written and stored state is unchanged. The new state
// is returned as a snapshot.
func (s *Store) Mutate(handle string, fn func(*plan.SchedulePlan) (*plan.SchedulePlan, string, error)) (*plan.SchedulePlan, error) {
	e, err := s.acquire(handle)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	next, label, err := fn(e.plan.Clone())
	if err != nil {
		return nil, err
	}
	e.replace(next, label)
	return next.Clone(), nil
}

// LastAction returns the most recent audit entry for a handle.
func (s *Store) LastAction(handle string) (Action, error) {
	e, err := s.acquire(handle)
	if err != nil {
		return Action{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.actions[len(e.actions)-1], nil
}

// replace swaps in the new plan under e.mu.
func (e *entry) replace(p *plan.SchedulePlan, label string) {
	e.plan = p.Clone()
	e.actions = append(e.actions, Action{Label: label, At: nowFunc()})
	if len(e.actions) > maxActionHistory {
		e.actions = e.actions[len(e.actions)-maxActionHistory:]
	}
	e.touch()
}

// acquire looks up a live entry. Expired handles are evicted on the spot
// and reported identically to handles that never existed.
func (s *Store) acquire(handle string) (*entry, error) {
	s.mu.Lock()
	e, ok := s.entries[handle]
	if ok && s.expired(e) {
		delete(s.entries, handle)
		s.log.Debug().Str("handle", handle).Msg("schedule expired on access")
		ok = false
	}
	s.mu.Unlock()

	if !ok {
		return nil, plan.Errf(plan.KindNotFound, "scheduleId", "schedule %q not found — it may have expired", handle)
	}
	return e, nil
}

func (s *Store) expired(e *entry) bool {
	return nowFunc().Sub(time.Unix(0, e.lastAccess.Load())) > s.cfg.TTL
}

// sweepLoop evicts idle handles so abandoned schedules don't accumulate.
func (s *Store) sweepLoop() {
	ticker := time.NewTicker(s.cfg.SweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *Store) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for handle, e := range s.entries {
		if s.expired(e) {
			delete(s.entries, handle)
			s.log.Debug().Str("handle", handle).Msg("schedule evicted by sweeper")
		}
	}
}

// Len reports the number of live handles. Used by stats and tests.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
