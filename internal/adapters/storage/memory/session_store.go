package memory

import (
	"context"
	"sync"

	"github.com/osalazar/pobot/internal/domain"
)

// SessionStore keeps live dialogue sessions in a process-wide map. Map-level
// locking is enough here: per-event hold times are tiny and the transport
// serializes events per user.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[domain.UserID]*domain.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[domain.UserID]*domain.Session),
	}
}

func (s *SessionStore) Get(_ context.Context, user domain.UserID) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[user]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return sess, nil
}

func (s *SessionStore) Put(_ context.Context, session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[session.UserID] = session
	return nil
}

func (s *SessionStore) Delete(_ context.Context, user domain.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, user)
	return nil
}
