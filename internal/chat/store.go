package chat

import (
	"context"
	"errors"
	"fmt"
	"time"

	"musetix/pkg/cache"
)

var (
	// ErrSessionNotFound indicates the session expired or never existed
	ErrSessionNotFound = errors.New("chat session not found")
)

// SessionStore persists conversation state between messages
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (*Session, error)
	Save(ctx context.Context, session *Session) error
	Delete(ctx context.Context, sessionID string) error
}

type redisSessionStore struct {
	cache cache.Service
	ttl   time.Duration
}

// NewRedisSessionStore creates a session store backed by the shared Redis
// cache. Sessions expire after ttl of inactivity.
func NewRedisSessionStore(cacheService cache.Service, ttl time.Duration) SessionStore {
	return &redisSessionStore{
		cache: cacheService,
		ttl:   ttl,
	}
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("musetix:chat:session:%s", sessionID)
}

func (s *redisSessionStore) Get(ctx context.Context, sessionID string) (*Session, error) {
	var session Session
	err := s.cache.Get(ctx, sessionKey(sessionID), &session)
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load chat session: %w", err)
	}
	return &session, nil
}

func (s *redisSessionStore) Save(ctx context.Context, session *Session) error {
	session.UpdatedAt = time.Now().UTC()
	if err := s.cache.Set(ctx, sessionKey(session.ID), session, s.ttl); err != nil {
		return fmt.Errorf("failed to save chat session: %w", err)
	}
	return nil
}

func (s *redisSessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.cache.Delete(ctx, sessionKey(sessionID)); err != nil {
		return fmt.Errorf("failed to delete chat session: %w", err)
	}
	return nil
}
