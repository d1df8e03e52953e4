package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yanizio/contactform/internal/form"
)

func newTestStore(t *testing.T, opts Options) *Store {
	t.Helper()
	if opts.EvictInterval == 0 {
		opts.EvictInterval = time.Hour // drive eviction by hand
	}
	s := NewStore(func() *form.Form { return form.New(form.Default(), form.Options{}) }, opts, zap.NewNop().Sugar())
	t.Cleanup(s.Close)
	return s
}

func TestStore_SameInstancePerSession(t *testing.T) {
	s := newTestStore(t, Options{})

	a := s.Get("a")
	a.Change(form.FirstName, "Itachi")

	assert.Same(t, a, s.Get("a"))
	assert.NotSame(t, a, s.Get("b"))
	assert.Equal(t, "Itachi", s.Get("a").Snapshot().Fields.FirstName)
	assert.Equal(t, 2, s.Len())
}

func TestStore_LRUPressure(t *testing.T) {
	s := newTestStore(t, Options{MaxEntries: 2})
	s.Get("a")
	s.Get("b")
	s.Get("a")
	s.Get("c")

	assert.Equal(t, 2, s.Len())
	s.mu.Lock()
	_, hasB := s.lru.Get("b")
	s.mu.Unlock()
	assert.False(t, hasB)
}

func TestStore_EvictIdle(t *testing.T) {
	s := newTestStore(t, Options{IdleTTL: time.Minute})
	start := time.Now()
	s.now = func() time.Time { return start }

	s.Get("old")
	s.now = func() time.Time { return start.Add(45 * time.Second) }
	s.Get("fresh")

	s.now = func() time.Time { return start.Add(90 * time.Second) }
	require.Equal(t, 1, s.evictIdle())

	assert.Equal(t, 1, s.Len())
	s.mu.Lock()
	_, hasFresh := s.lru.Get("fresh")
	s.mu.Unlock()
	assert.True(t, hasFresh)
}

func TestStore_CloseTwice(t *testing.T) {
	s := newTestStore(t, Options{})
	s.Close()
	assert.NotPanics(t, s.Close)
}
