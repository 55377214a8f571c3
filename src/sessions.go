package main

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"crosswarped.com/wrd"
)

var errUnknownSession = errors.New("unknown or expired session")

// sessionStore keeps guess sessions in memory for the life of the process. When full, the least
// recently used session is dropped. Sessions idle for longer than ttl are dropped on the next
// access.
type sessionStore struct {
	mu       sync.Mutex
	sessions map[string]*storedSession
	max      int
	ttl      time.Duration
	now      func() time.Time
	gauge    prometheus.Gauge
}

type storedSession struct {
	// mu serializes requests against the same session.
	mu       sync.Mutex
	session  *wrd.Session
	lastUsed time.Time
}

func newSessionStore(limit int, ttl time.Duration, gauge prometheus.Gauge) *sessionStore {
	return &sessionStore{
		sessions: make(map[string]*storedSession),
		max:      max(limit, 1),
		ttl:      ttl,
		now:      time.Now,
		gauge:    gauge,
	}
}

// create stores s under a new id.
func (st *sessionStore) create(s *wrd.Session) string {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := st.now()
	st.expireLocked(now)
	for len(st.sessions) >= st.max {
		st.evictOldestLocked()
	}

	id := uuid.NewString()
	st.sessions[id] = &storedSession{session: s, lastUsed: now}
	st.gauge.Set(float64(len(st.sessions)))
	return id
}

func (st *sessionStore) get(id string) (*storedSession, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, errUnknownSession
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	now := st.now()
	st.expireLocked(now)
	stored, ok := st.sessions[id]
	if !ok {
		return nil, errUnknownSession
	}
	stored.lastUsed = now
	return stored, nil
}

func (st *sessionStore) len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

func (st *sessionStore) expireLocked(now time.Time) {
	if st.ttl <= 0 {
		return
	}
	for id, stored := range st.sessions {
		if now.Sub(stored.lastUsed) > st.ttl {
			delete(st.sessions, id)
		}
	}
	st.gauge.Set(float64(len(st.sessions)))
}

func (st *sessionStore) evictOldestLocked() {
	var oldestID string
	var oldest time.Time
	for id, stored := range st.sessions {
		if oldestID == "" || stored.lastUsed.Before(oldest) {
			oldestID, oldest = id, stored.lastUsed
		}
	}
	delete(st.sessions, oldestID)
}
