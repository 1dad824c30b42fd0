// Copyright (c) 2026 Pressgate. All rights reserved.
// Author: dev@pressgate.app

package cache

import (
	stdctx "context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Opinionated default timeouts for Redis operations.
const (
	dialTimeout  = 3 * time.Second
	readTimeout  = 2 * time.Second
	writeTimeout = 2 * time.Second
	pingTimeout  = 2 * time.Second
)

// Key prefixes. Tag sets live in a separate namespace from response values
// so Flush can scan both without guessing.
const (
	redisValuePrefix = "pg:resp:"
	redisTagPrefix   = "pg:tag:"
)

// tagSetSlack keeps a tag set alive slightly longer than the values it
// indexes, so members expire before their index does.
const tagSetSlack = 5 * time.Minute

// Redis is the shared [Store] implementation.
//
// Values are plain keys with TTL; each tag is a SET of the value keys it
// labels. Eviction reads the tag set and deletes its members, so one webhook
// call reaches every replica sharing the Redis instance.
type Redis struct {
	client *redis.Client
}

// NewRedisClient parses a Redis URL and returns a ready-to-use client.
//
// # Parameters
//   - context: Context for the initial ping.
//   - redisURL: Redis connection URL.
//   - logger: Structured logger for connection events.
func NewRedisClient(context stdctx.Context, redisURL string, logger *slog.Logger) (*redis.Client, error) {
	options, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: invalid URL: %w", err)
	}

	// Pool configuration tuning
	options.PoolSize = 10
	options.MinIdleConns = 2
	options.MaxIdleConns = 5

	options.DialTimeout = dialTimeout
	options.ReadTimeout = readTimeout
	options.WriteTimeout = writeTimeout

	client := redis.NewClient(options)

	// Validate connectivity immediately at startup.
	if err := PingRedis(context, client); err != nil {
		_ = client.Close()
		return nil, err
	}

	logger.Info("redis client connected",
		slog.String("addr", options.Addr),
		slog.Int("pool_size", options.PoolSize),
	)

	return client, nil
}

// PingRedis verifies that the Redis client is healthy.
func PingRedis(context stdctx.Context, client *redis.Client) error {
	pingCtx, cancel := stdctx.WithTimeout(context, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("redis: ping failed: %w", err)
	}

	return nil
}

// NewRedis wraps an existing client as a tag-addressed [Store].
func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

// Get retrieves a cached value. Redis-side errors degrade to a miss.
func (c *Redis) Get(ctx stdctx.Context, key string) ([]byte, bool) {
	value, err := c.client.Get(ctx, redisValuePrefix+key).Bytes()
	if err != nil {
		return nil, false
	}
	return value, true
}

// Set stores a value with TTL and registers it in each tag's set.
func (c *Redis) Set(ctx stdctx.Context, key string, value []byte, ttl time.Duration, tags ...string) error {
	if ttl <= 0 {
		return nil
	}

	valueKey := redisValuePrefix + key

	pipe := c.client.TxPipeline()
	pipe.Set(ctx, valueKey, value, ttl)
	for _, tag := range tags {
		tagKey := redisTagPrefix + tag
		pipe.SAdd(ctx, tagKey, valueKey)
		pipe.Expire(ctx, tagKey, ttl+tagSetSlack)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache: redis set %q: %w", key, err)
	}
	return nil
}

// InvalidateTags deletes every value referenced by the given tag sets,
// then the tag sets themselves.
func (c *Redis) InvalidateTags(ctx stdctx.Context, tags ...string) error {
	for _, tag := range tags {
		tagKey := redisTagPrefix + tag

		members, err := c.client.SMembers(ctx, tagKey).Result()
		if err != nil {
			return fmt.Errorf("cache: redis read tag %q: %w", tag, err)
		}

		if len(members) > 0 {
			if err := c.client.Del(ctx, members...).Err(); err != nil {
				return fmt.Errorf("cache: redis evict tag %q: %w", tag, err)
			}
		}

		if err := c.client.Del(ctx, tagKey).Err(); err != nil {
			return fmt.Errorf("cache: redis drop tag %q: %w", tag, err)
		}
	}
	return nil
}

// Flush scans and deletes every gateway-owned key.
func (c *Redis) Flush(ctx stdctx.Context) error {
	for _, pattern := range []string{redisValuePrefix + "*", redisTagPrefix + "*"} {
		iter := c.client.Scan(ctx, 0, pattern, 256).Iterator()
		for iter.Next(ctx) {
			if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
				return fmt.Errorf("cache: redis flush: %w", err)
			}
		}
		if err := iter.Err(); err != nil {
			return fmt.Errorf("cache: redis scan: %w", err)
		}
	}
	return nil
}

// Ensure Redis implements Store
var _ Store = (*Redis)(nil)
