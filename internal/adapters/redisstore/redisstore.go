// Package redisstore provides Redis-backed durable storage for session state,
// for shared or ephemeral environments (CI runners, containers) where a local
// session file does not survive or cannot be shared.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mocksmith/adminctl/internal/ports"
)

// DefaultPrefix namespaces session keys in a shared Redis.
const DefaultPrefix = "adminctl:session:"

// Store is a Redis-based session storage adapter.
type Store struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

var _ ports.Storage = (*Store)(nil)

// New creates a Redis-backed Store with the default key prefix and no TTL.
func New(client redis.UniversalClient) *Store {
	return &Store{client: client, prefix: DefaultPrefix}
}

// NewWithOptions creates a Store with a custom key prefix and per-key TTL.
// A zero ttl means keys do not expire; the session layer invalidates tokens
// by its own expiry math either way.
func NewWithOptions(client redis.UniversalClient, prefix string, ttl time.Duration) *Store {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Store{client: client, prefix: prefix, ttl: ttl}
}

func (s *Store) Read(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, s.prefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ports.ErrNotFound
		}
		return "", fmt.Errorf("redis get: %w", err)
	}
	return value, nil
}

func (s *Store) Write(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.prefix+key, value, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
