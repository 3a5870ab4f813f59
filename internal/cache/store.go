package cache

import (
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultTTL is how long a cached season entry stays valid. Past
// seasons do not change, so a week is generous.
const DefaultTTL = 7 * 24 * time.Hour

// Store is an in-memory key-value cache keyed by (kind, leagueID,
// season) with a fixed time-to-live. An expired entry behaves as
// absent.
type Store struct {
	ttl   time.Duration
	clock clockwork.Clock

	mu      sync.RWMutex
	entries map[string]entry
}

type entry struct {
	value    interface{}
	storedAt time.Time
}

func New(ttl time.Duration, clock clockwork.Clock) *Store {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Store{
		ttl:     ttl,
		clock:   clock,
		entries: make(map[string]entry),
	}
}

func (s *Store) Get(kind, leagueID string, season int) (interface{}, bool) {
	s.mu.RLock()
	e, ok := s.entries[key(kind, leagueID, season)]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if s.clock.Since(e.storedAt) > s.ttl {
		return nil, false
	}
	return e.value, true
}

func (s *Store) Set(kind, leagueID string, season int, value interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key(kind, leagueID, season)] = entry{value: value, storedAt: s.clock.Now()}
}

func key(kind, leagueID string, season int) string {
	return fmt.Sprintf("%s:%s:%d", kind, leagueID, season)
}
