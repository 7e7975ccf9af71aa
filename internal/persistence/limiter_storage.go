package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

const storageTimeout = 2 * time.Second

var _ fiber.Storage = (*LimiterStorage)(nil)

// LimiterStorage adapts Redis to fiber.Storage so rate-limit counters are
// shared between replicas. All keys live under prefix.
type LimiterStorage struct {
	client redis.UniversalClient
	prefix string
}

// NewLimiterStorage builds a storage on top of client.
func NewLimiterStorage(client redis.UniversalClient, prefix string) *LimiterStorage {
	return &LimiterStorage{client: client, prefix: prefix}
}

// Get returns nil, nil for missing keys.
func (s *LimiterStorage) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	val, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return val, err
}

func (s *LimiterStorage) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()
	return s.client.Set(ctx, s.prefix+key, val, exp).Err()
}

func (s *LimiterStorage) Delete(key string) error {
	if key == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()
	return s.client.Del(ctx, s.prefix+key).Err()
}

// Reset removes every key under the prefix.
func (s *LimiterStorage) Reset() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*storageTimeout)
	defer cancel()

	iter := s.client.Scan(ctx, 0, s.prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}

// Close is a no-op; the client is owned by Redis.
func (s *LimiterStorage) Close() error {
	return nil
}
