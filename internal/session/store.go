package session

import (
	"errors"
	"sync"
	"time"

	"github.com/casafile/api/internal/models"
	"github.com/oklog/ulid/v2"
)

// Store-level errors.
var (
	ErrNotFound  = errors.New("session not found")
	ErrStoreFull = errors.New("session store is full")
)

// Store is an in-memory session store. Sessions are keyed by ULID and
// guarded by a single RWMutex; all mutations of a session's form happen
// under the write lock via Mutate.
type Store struct {
	mu          sync.RWMutex
	sessions    map[string]*Session
	maxSessions int
}

// NewStore creates a store that holds at most maxSessions concurrent
// sessions. A non-positive limit means unlimited.
func NewStore(maxSessions int) *Store {
	return &Store{
		sessions:    make(map[string]*Session),
		maxSessions: maxSessions,
	}
}

// Create registers a new session at the welcome step with an empty form.
func (s *Store) Create() (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.maxSessions > 0 && len(s.sessions) >= s.maxSessions {
		return nil, ErrStoreFull
	}

	now := time.Now()
	sess := &Session{
		ID:        ulid.MustNewDefault(now).String(),
		Step:      StepWelcome,
		Status:    StatusIdle,
		Form:      models.NewFormData(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.sessions[sess.ID] = sess
	return sess, nil
}

// Get returns the session with the given ID.
func (s *Store) Get(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return sess, nil
}

// Delete removes the session. Deleting an unknown ID is a no-op.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Count returns the number of live sessions.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// View runs fn against the session under the read lock. fn must not
// mutate the session.
func (s *Store) View(id string, fn func(*Session)) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return ErrNotFound
	}
	fn(sess)
	return nil
}

// Mutate runs fn against the session under the write lock and bumps the
// session's UpdatedAt when fn succeeds.
func (s *Store) Mutate(id string, fn func(*Session) error) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	if err := fn(sess); err != nil {
		return nil, err
	}
	sess.UpdatedAt = time.Now()
	return sess, nil
}
