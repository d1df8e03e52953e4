// internal/session/store.go
//
// In-memory store of live contact forms, one per session.
//
// Context
//   Store lazily creates a *form.Form the first time a session id is seen
//   and hands back the same instance on every later request, so the form's
//   values, errors, and last submission survive across HTTP round-trips.
//   Entries are dropped when idle longer than IdleTTL (see evictor.go) or
//   when the store exceeds MaxEntries (least recently used first).
//
// Notes
//   •  The LRU is guarded by mu.  Form instances carry their own lock, so
//      mu is never held while a form event runs.
//   •  Every insert and eviction updates the active-sessions gauge.
//
//------------------------------------------------------------------------------

package session

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/yanizio/contactform/internal/cache"
	"github.com/yanizio/contactform/internal/form"
	"github.com/yanizio/contactform/internal/metrics"
)

// Static defaults.  Override via config.
const (
	IdleTTL       = 30 * time.Minute
	MaxEntries    = 10000
	EvictInterval = time.Minute
)

// Options tunes a Store.  Zero values fall back to the package defaults.
type Options struct {
	IdleTTL       time.Duration
	MaxEntries    int
	EvictInterval time.Duration
}

type entry struct {
	form     *form.Form
	lastSeen time.Time
}

// Store maps session ids to form instances.
type Store struct {
	newForm func() *form.Form
	idleTTL time.Duration
	log     *zap.SugaredLogger
	now     func() time.Time

	mu  sync.Mutex
	lru *cache.LRU[string, *entry]

	evictTicker *time.Ticker
	done        chan struct{}
	closeOnce   sync.Once
}

// NewStore constructs a Store and starts the background evictor.  newForm
// builds the instance for a fresh session.
func NewStore(newForm func() *form.Form, opts Options, log *zap.SugaredLogger) *Store {
	if opts.IdleTTL <= 0 {
		opts.IdleTTL = IdleTTL
	}
	if opts.MaxEntries <= 0 {
		opts.MaxEntries = MaxEntries
	}
	if opts.EvictInterval <= 0 {
		opts.EvictInterval = EvictInterval
	}
	if log == nil {
		log = zap.S()
	}

	s := &Store{
		newForm: newForm,
		idleTTL: opts.IdleTTL,
		log:     log,
		now:     time.Now,
		done:    make(chan struct{}),
	}
	s.lru = cache.New[string, *entry](opts.MaxEntries, func(id string, _ *entry) {
		s.log.Debugw("session evicted", "session", id, "reason", "lru")
		metrics.SessionEvictTotal.WithLabelValues("lru").Inc()
		metrics.ActiveSessions.Dec()
	})
	s.evictTicker = time.NewTicker(opts.EvictInterval)
	go s.evictLoop()
	return s
}

// Get returns the form for id, creating it on first use.
func (s *Store) Get(id string) *form.Form {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ent, ok := s.lru.Get(id); ok {
		ent.lastSeen = s.now()
		return ent.form
	}

	ent := &entry{form: s.newForm(), lastSeen: s.now()}
	s.lru.Add(id, ent)
	metrics.ActiveSessions.Inc()
	s.log.Debugw("session created", "session", id)
	return ent.form
}

// Len reports how many sessions are live.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lru.Len()
}

// Close stops the evictor.  It is safe to call more than once.
func (s *Store) Close() {
	s.closeOnce.Do(func() {
		s.evictTicker.Stop()
		close(s.done)
	})
}
