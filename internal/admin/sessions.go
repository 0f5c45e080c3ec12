package admin

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"portfolio-gif/internal/project"
)

const (
	SessionTTL  = 2 * time.Hour
	MaxSessions = 256
)

type session struct {
	state    project.FormState
	lastSeen time.Time
}

// Sessions holds one form state per admin browser session. Sessions idle
// longer than the TTL are dropped, and the least recently seen one is
// evicted when the cap is reached.
type Sessions struct {
	mu     sync.Mutex
	ttl    time.Duration
	limit  int
	now    func() time.Time
	states map[string]*session
}

func NewSessions(ttl time.Duration, limit int) *Sessions {
	if ttl <= 0 {
		ttl = SessionTTL
	}
	if limit <= 0 {
		limit = MaxSessions
	}
	return &Sessions{ttl: ttl, limit: limit, now: time.Now, states: make(map[string]*session)}
}

// Load returns the state held for id. Unknown or expired ids get an empty
// form and ok is false; Load never creates a session.
func (s *Sessions) Load(id string) (project.FormState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.states[id]
	if !ok {
		return project.Reset(), false
	}
	now := s.now()
	if now.Sub(sess.lastSeen) > s.ttl {
		delete(s.states, id)
		return project.Reset(), false
	}
	sess.lastSeen = now
	return sess.state, true
}

// Save stores state under id and returns the id it was stored under. An
// unknown id is never adopted; a fresh one is issued instead.
func (s *Sessions) Save(id string, state project.FormState) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if sess, ok := s.states[id]; ok && now.Sub(sess.lastSeen) <= s.ttl {
		sess.state = state
		sess.lastSeen = now
		return id
	}

	s.evict(now)
	id = uuid.NewString()
	s.states[id] = &session{state: state, lastSeen: now}
	return id
}

// Len reports how many sessions are held.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.states)
}

// evict drops expired sessions, then the oldest ones until there is room
// for one more. Callers hold mu.
func (s *Sessions) evict(now time.Time) {
	for id, sess := range s.states {
		if now.Sub(sess.lastSeen) > s.ttl {
			delete(s.states, id)
		}
	}
	for len(s.states) >= s.limit {
		var oldest string
		var seen time.Time
		for id, sess := range s.states {
			if oldest == "" || sess.lastSeen.Before(seen) {
				oldest, seen = id, sess.lastSeen
			}
		}
		delete(s.states, oldest)
	}
}
