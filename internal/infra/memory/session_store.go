package memory

import (
	"context"
	"sync"
	"time"

	"quiz-outcome-service/internal/app"
	"quiz-outcome-service/internal/domain"
)

// SessionStore is an in-memory implementation of app.SessionRepository.
// Sessions are copied on the way in and out so callers never share maps. Sessions idle
// for longer than ttl are treated as gone; a ttl <= 0 keeps them forever.
type SessionStore struct {
	ttl   time.Duration
	clock func() time.Time

	mu       sync.RWMutex
	sessions map[string]storedSession
}

type storedSession struct {
	session  app.Session
	lastSeen time.Time
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		ttl:      ttl,
		clock:    time.Now,
		sessions: make(map[string]storedSession),
	}
}

func (s *SessionStore) Create(_ context.Context, session app.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.clock()
	s.sweepLocked(now)
	s.sessions[session.ID] = storedSession{session: session.Clone(), lastSeen: now}
	return nil
}

func (s *SessionStore) Get(_ context.Context, sessionID string) (app.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.sessions[sessionID]
	if !ok || s.expired(entry, s.clock()) {
		return app.Session{}, domain.ErrSessionNotFound
	}
	return entry.session.Clone(), nil
}

func (s *SessionStore) Save(_ context.Context, session app.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.clock()
	entry, ok := s.sessions[session.ID]
	if !ok || s.expired(entry, now) {
		return domain.ErrSessionNotFound
	}
	s.sessions[session.ID] = storedSession{session: session.Clone(), lastSeen: now}
	return nil
}

// Len reports how many sessions are held, expired ones included until the next sweep.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *SessionStore) expired(entry storedSession, now time.Time) bool {
	return s.ttl > 0 && now.Sub(entry.lastSeen) > s.ttl
}

func (s *SessionStore) sweepLocked(now time.Time) {
	for id, entry := range s.sessions {
		if s.expired(entry, now) {
			delete(s.sessions, id)
		}
	}
}
