package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"quiz-outcome-service/internal/app"
	"quiz-outcome-service/internal/domain"
)

// SessionStore keeps response sessions in Redis so a respondent can reconnect to any
// instance. Each session is a JSON value whose TTL is refreshed on every write.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

func (s *SessionStore) Create(ctx context.Context, session app.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return s.client.Set(ctx, s.key(session.ID), raw, s.ttl).Err()
}

func (s *SessionStore) Get(ctx context.Context, sessionID string) (app.Session, error) {
	raw, err := s.client.Get(ctx, s.key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return app.Session{}, domain.ErrSessionNotFound
	}
	if err != nil {
		return app.Session{}, err
	}
	var session app.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return app.Session{}, fmt.Errorf("unmarshal session: %w", err)
	}
	return session, nil
}

// Save overwrites an existing session; it never resurrects an expired one.
func (s *SessionStore) Save(ctx context.Context, session app.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	ok, err := s.client.SetXX(ctx, s.key(session.ID), raw, s.ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrSessionNotFound
	}
	return nil
}

func (s *SessionStore) key(sessionID string) string {
	return "quiz:response:" + sessionID
}
