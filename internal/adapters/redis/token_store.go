package redis

// Package redis provides Redis-based adapters for the dashboard.

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/sigmaport/prodmon-ui/internal/ports"
)

var _ ports.TokenStore = (*TokenStore)(nil)

// DefaultTokenKey is the key used when none is configured.
const DefaultTokenKey = "prodmon:token"

// TokenStore keeps the operator's bearer token under a single Redis key.
// No TTL is set: expiry is judged by the session manager, not the store.
type TokenStore struct {
	client redis.UniversalClient
	key    string
}

// NewTokenStore creates a Redis token store using DefaultTokenKey.
func NewTokenStore(client redis.UniversalClient) *TokenStore {
	return &TokenStore{
		client: client,
		key:    DefaultTokenKey,
	}
}

// NewTokenStoreWithKey creates a Redis token store with a custom key.
func NewTokenStoreWithKey(client redis.UniversalClient, key string) *TokenStore {
	if strings.TrimSpace(key) == "" {
		key = DefaultTokenKey
	}
	return &TokenStore{
		client: client,
		key:    key,
	}
}

func (s *TokenStore) Load(ctx context.Context) (string, bool, error) {
	token, err := s.client.Get(ctx, s.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("redis get: %w", err)
	}
	if token == "" {
		return "", false, nil
	}
	return token, true, nil
}

func (s *TokenStore) Save(ctx context.Context, token string) error {
	if token == "" {
		return errors.New("token cannot be empty")
	}
	if err := s.client.Set(ctx, s.key, token, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *TokenStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
