package safety

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// SessionStore keeps safety sessions in memory with a TTL. Sessions are
// short-lived workflow state, not clinical records, so process-local
// storage is intentional. Get and Put copy the session so callers never
// share a pointer with the store; all mutation goes through Update,
// which holds the store lock.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	ttl      time.Duration
}

// clone returns a shallow copy. The allergy snapshot slice is shared
// but read-only after Start.
func (sess *Session) clone() *Session {
	cp := *sess
	return &cp
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[uuid.UUID]*Session),
		ttl:      ttl,
	}
}

// TTL returns the configured session lifetime.
func (s *SessionStore) TTL() time.Duration { return s.ttl }

func (s *SessionStore) Put(sess *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess.clone()
}

// Get returns a copy of the session, or ErrNotFound if it is unknown
// or expired. Expired sessions are removed on access.
func (s *SessionStore) Get(id uuid.UUID) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	if time.Now().After(sess.ExpiresAt) {
		delete(s.sessions, id)
		return nil, ErrNotFound
	}
	return sess.clone(), nil
}

// Update applies fn to the stored session under the store lock and
// returns a copy of the result. Unknown or expired sessions return
// ErrNotFound without calling fn.
func (s *SessionStore) Update(id uuid.UUID, fn func(*Session)) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	if time.Now().After(sess.ExpiresAt) {
		delete(s.sessions, id)
		return nil, ErrNotFound
	}
	fn(sess)
	return sess.clone(), nil
}

func (s *SessionStore) Delete(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// StartCleanup starts a background goroutine that sweeps expired sessions.
func (s *SessionStore) StartCleanup(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.cleanup()
			}
		}
	}()
}

func (s *SessionStore) cleanup() {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	for id, sess := range s.sessions {
		if now.After(sess.ExpiresAt) {
			delete(s.sessions, id)
		}
	}
}
