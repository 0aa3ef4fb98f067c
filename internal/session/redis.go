package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	tokenKey = "pos:session:token"
	userKey  = "pos:session:user"
)

// RedisStore persists the session in Redis so it survives terminal restarts.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(addr, password string) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
		}),
	}
}

func (s *RedisStore) Get(ctx context.Context) (string, *Session, error) {
	token, err := s.client.Get(ctx, tokenKey).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil, nil
	}
	if err != nil {
		return "", nil, fmt.Errorf("get session token: %w", err)
	}

	raw, err := s.client.Get(ctx, userKey).Result()
	if errors.Is(err, redis.Nil) {
		return token, nil, nil
	}
	if err != nil {
		return "", nil, fmt.Errorf("get session user: %w", err)
	}

	var user Session
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return "", nil, fmt.Errorf("decode session user: %w", err)
	}
	return token, &user, nil
}

func (s *RedisStore) Set(ctx context.Context, token string, user *Session) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode session user: %w", err)
	}
	if err := s.client.Set(ctx, tokenKey, token, 0).Err(); err != nil {
		return fmt.Errorf("set session token: %w", err)
	}
	if err := s.client.Set(ctx, userKey, raw, 0).Err(); err != nil {
		return fmt.Errorf("set session user: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, tokenKey, userKey).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Ping verifies connectivity at startup.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
