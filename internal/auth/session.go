package auth

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/justiceconnect/internal/domain"
)

// ErrSessionNotFound indicates a missing or expired session token.
var ErrSessionNotFound = errors.New("session not found")

const sessionKeyPrefix = "session:"

// SessionStore persists server-side sessions behind opaque cookie tokens.
type SessionStore interface {
	Create(ctx context.Context, session *domain.Session) error
	Get(ctx context.Context, token string) (*domain.Session, error)
	Delete(ctx context.Context, token string) error
}

// NewSessionToken returns a fresh opaque token.
func NewSessionToken() string {
	return uuid.NewString()
}

// RedisSessionStore keeps sessions in Redis with a TTL matching their expiry.
type RedisSessionStore struct {
	client *redis.Client
}

// NewRedisSessionStore builds the production session store.
func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

func (s *RedisSessionStore) Create(ctx context.Context, session *domain.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return errors.New("session already expired")
	}
	return s.client.Set(ctx, sessionKeyPrefix+session.Token, payload, ttl).Err()
}

func (s *RedisSessionStore) Get(ctx context.Context, token string) (*domain.Session, error) {
	payload, err := s.client.Get(ctx, sessionKeyPrefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	var session domain.Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, sessionKeyPrefix+token).Err()
}

// MemorySessionStore keeps sessions in process memory. Used by tests and
// local development without a Redis instance; the backend is picked once at
// startup from config.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
}

// NewMemorySessionStore builds an empty in-memory store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]domain.Session)}
}

func (s *MemorySessionStore) Create(_ context.Context, session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.Token] = *session
	return nil
}

func (s *MemorySessionStore) Get(_ context.Context, token string) (*domain.Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[token]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	if session.Expired(time.Now()) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return nil, ErrSessionNotFound
	}
	return &session, nil
}

func (s *MemorySessionStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}
