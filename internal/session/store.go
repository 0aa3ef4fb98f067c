package session

import (
	"context"
	"sync"
)

// Store persists the two durable values of a terminal session: the bearer
// token and the normalized user record. Both are written and cleared
// together so the terminal never holds a token without an identity or vice
// versa. Implementations must treat an absent session as (nil, "") rather
// than an error.
type Store interface {
	Get(ctx context.Context) (token string, user *Session, err error)
	Set(ctx context.Context, token string, user *Session) error
	Clear(ctx context.Context) error
}

// MemoryStore keeps the session in process memory. Used when no Redis
// address is configured, and as the fake store in tests.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
	user  *Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Get(ctx context.Context) (string, *Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" || s.user == nil {
		return "", nil, nil
	}
	u := *s.user
	return s.token, &u, nil
}

func (s *MemoryStore) Set(ctx context.Context, token string, user *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := *user
	s.token = token
	s.user = &u
	return nil
}

func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = nil
	return nil
}
