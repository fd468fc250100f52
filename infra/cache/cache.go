// Package cache memoises plan runs by the fingerprint of their inputs.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/kilianp07/transitplan/core/model"
	"github.com/kilianp07/transitplan/infra/store"
)

const (
	defaultPrefix = "transitplan:run:"
	defaultTTL    = time.Hour
)

// Config selects the Redis instance and entry lifetime.
type Config struct {
	URL    string        `json:"url"`
	Prefix string        `json:"prefix"`
	TTL    time.Duration `json:"ttl"`
}

// Enabled reports whether a Redis URL is configured.
func (c Config) Enabled() bool { return c.URL != "" }

// Cache looks up runs by input fingerprint.
type Cache interface {
	Get(ctx context.Context, key string) (store.Run, bool, error)
	Set(ctx context.Context, key string, r store.Run) error
	Close() error
}

// Fingerprint hashes the planning inputs. Identical inputs always plan to
// the same result, so the hash is a safe cache key.
func Fingerprint(routes []model.Route, p model.Parameters, w model.TimeRange) (string, error) {
	b, err := json.Marshal(struct {
		Routes     []model.Route    `json:"routes"`
		Parameters model.Parameters `json:"parameters"`
		Window     model.TimeRange  `json:"window"`
	}{routes, p, w})
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}

// RedisCache stores runs as JSON strings with a TTL.
type RedisCache struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisCache parses cfg.URL and pings the server.
func NewRedisCache(ctx context.Context, cfg Config) (*RedisCache, error) {
	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("redis url: %w", err)
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	c := &RedisCache{rdb: rdb, prefix: cfg.Prefix, ttl: cfg.TTL}
	if c.prefix == "" {
		c.prefix = defaultPrefix
	}
	if c.ttl <= 0 {
		c.ttl = defaultTTL
	}
	return c, nil
}

// Get returns the cached run for key, if any.
func (c *RedisCache) Get(ctx context.Context, key string) (store.Run, bool, error) {
	data, err := c.rdb.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return store.Run{}, false, nil
	}
	if err != nil {
		return store.Run{}, false, err
	}
	var r store.Run
	if err := json.Unmarshal(data, &r); err != nil {
		return store.Run{}, false, fmt.Errorf("decode cached run: %w", err)
	}
	return r, true, nil
}

// Set stores r under key.
func (c *RedisCache) Set(ctx context.Context, key string, r store.Run) error {
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, c.prefix+key, data, c.ttl).Err()
}

// Close releases the client.
func (c *RedisCache) Close() error { return c.rdb.Close() }

// Nop never hits.
type Nop struct{}

func (Nop) Get(context.Context, string) (store.Run, bool, error) { return store.Run{}, false, nil }
func (Nop) Set(context.Context, string, store.Run) error         { return nil }
func (Nop) Close() error                                         { return nil }
