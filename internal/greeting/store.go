package greeting

import (
	"sync"
	"time"
)

// Store holds the in-memory sessions for all users, keyed by Telegram user
// ID. It is owned by the application root and injected wherever sessions are
// read or mutated. State does not survive a restart.
type Store struct {
	sessions map[int64]*Session
	locks    map[int64]*sync.Mutex
	mu       sync.RWMutex
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[int64]*Session),
		locks:    make(map[int64]*sync.Mutex),
	}
}

// Acquire takes the per-user mutex and returns its release func. The
// transport dispatches each update on its own goroutine, so event handling
// holds this lock end to end: no two events for the same session may
// interleave, while other users' events proceed independently.
func (s *Store) Acquire(userID int64) func() {
	s.mu.Lock()
	l, ok := s.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[userID] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// Get returns the session for a user and refreshes its idle clock. It never
// creates one: events that require prior state must surface a missing
// session instead of silently papering over it.
func (s *Store) Get(userID int64) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userID]
	if ok {
		sess.LastSeen = time.Now()
	}
	return sess, ok
}

// Ensure returns the session for a user, creating a fresh one if none
// exists. Used by the two session-creating events (start and category
// selection).
func (s *Store) Ensure(userID int64, username string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userID]
	if !ok {
		sess = &Session{Username: username}
		s.sessions[userID] = sess
	}
	sess.LastSeen = time.Now()
	return sess
}

// Reset replaces a user's session with a blank one, discarding every
// selection made so far.
func (s *Store) Reset(userID int64, username string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := &Session{
		Username: username,
		LastSeen: time.Now(),
	}
	s.sessions[userID] = sess
	return sess
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sessions)
}

// Evict drops sessions idle for longer than ttl and returns how many were
// removed. The map would otherwise grow without bound for the process
// lifetime.
func (s *Store) Evict(ttl time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-ttl)
	evicted := 0
	for id, sess := range s.sessions {
		if !sess.LastSeen.Before(cutoff) {
			continue
		}
		// Skip sessions with an event in flight.
		if l, ok := s.locks[id]; ok {
			if !l.TryLock() {
				continue
			}
			l.Unlock()
		}
		delete(s.sessions, id)
		delete(s.locks, id)
		evicted++
	}
	return evicted
}
