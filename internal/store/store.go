// Package store holds live drill sessions for the HTTP surface. Sessions
// are in-memory only; dropping one loses it, which is the intended
// lifecycle for a drill that keeps no cross-session state.
package store

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/phrazzld/verbdojo/internal/service/session"
)

// Common store errors.
var (
	// ErrNotFound is returned when a requested session does not exist in
	// the store.
	ErrNotFound = errors.New("session not found")

	// ErrNilSession is returned when attempting to register a nil session.
	ErrNilSession = errors.New("session cannot be nil")
)

// SessionStore is an in-memory registry of live sessions keyed by UUID.
// It is safe for concurrent use.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*session.Session
}

// NewSessionStore creates an empty session registry.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[uuid.UUID]*session.Session),
	}
}

// Put registers a session and returns its newly assigned ID.
func (s *SessionStore) Put(sess *session.Session) (uuid.UUID, error) {
	if sess == nil {
		return uuid.Nil, ErrNilSession
	}

	id := uuid.New()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = sess
	return id, nil
}

// Get returns the session with the given ID.
func (s *SessionStore) Get(id uuid.UUID) (*session.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return sess, nil
}

// Delete removes the session with the given ID.
func (s *SessionStore) Delete(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(s.sessions, id)
	return nil
}

// Len reports the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
