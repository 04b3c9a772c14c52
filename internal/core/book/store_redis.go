// Copyright (c) 2026 Librarium. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/librarium/internal/platform/constants"
)

// RedisGenreCache implements [GenreCache] as a single JSON value with a TTL.
type RedisGenreCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisGenreCache creates a Redis-backed genre cache.
func NewRedisGenreCache(client *redis.Client, ttl time.Duration) *RedisGenreCache {
	return &RedisGenreCache{client: client, ttl: ttl}
}

/*
Get returns the cached genre list.

Returns:
  - []string: Cached genres (nil on miss)
  - bool: Whether the key was present
  - error: Connectivity or decoding failures
*/
func (cache *RedisGenreCache) Get(context context.Context) ([]string, bool, error) {
	payload, err := cache.client.Get(context, constants.RedisPrefixGenres).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis_genre_cache_get_failed: %w", err)
	}

	var genres []string
	if err := json.Unmarshal(payload, &genres); err != nil {
		return nil, false, fmt.Errorf("redis_genre_cache_decode_failed: %w", err)
	}
	return genres, true, nil
}

// Set stores genres under the cache key for the configured TTL.
func (cache *RedisGenreCache) Set(context context.Context, genres []string) error {
	payload, err := json.Marshal(genres)
	if err != nil {
		return fmt.Errorf("redis_genre_cache_encode_failed: %w", err)
	}

	if err := cache.client.Set(context, constants.RedisPrefixGenres, payload, cache.ttl).Err(); err != nil {
		return fmt.Errorf("redis_genre_cache_set_failed: %w", err)
	}
	return nil
}

// Invalidate deletes the cache key.
func (cache *RedisGenreCache) Invalidate(context context.Context) error {
	if err := cache.client.Del(context, constants.RedisPrefixGenres).Err(); err != nil {
		return fmt.Errorf("redis_genre_cache_delete_failed: %w", err)
	}
	return nil
}
