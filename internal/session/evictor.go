// evictor.go houses the idle-eviction loop for Store.  Every tick it walks
// sessions from least to most recently used and removes those idle longer
// than idleTTL.  Capacity pressure is handled by the LRU itself on insert.
package session

import (
	"time"

	"github.com/yanizio/contactform/internal/metrics"
)

func (s *Store) evictLoop() {
	for {
		select {
		case <-s.done:
			return
		case <-s.evictTicker.C:
			s.evictIdle()
		}
	}
}

// evictIdle removes idle sessions and returns how many it dropped.
func (s *Store) evictIdle() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	var stale []string
	s.lru.Oldest(func(id string, ent *entry) bool {
		if now.Sub(ent.lastSeen) <= s.idleTTL {
			return false // everything newer is fresher still
		}
		stale = append(stale, id)
		return true
	})

	for _, id := range stale {
		s.lru.Remove(id)
		s.log.Debugw("session evicted", "session", id, "reason", "idle",
			"idle_ttl", s.idleTTL.Truncate(time.Second))
		metrics.SessionEvictTotal.WithLabelValues("idle").Inc()
		metrics.ActiveSessions.Dec()
	}
	return len(stale)
}
