package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
)

// Client wraps redis.Client and degrades to a cache miss when redis is unavailable.
// A nil *Client is valid and behaves as an always-empty cache.
type Client struct {
	rdb *redis.Client
}

// New creates a new Redis-backed client.
func New(addr, password string, db int) *Client {
	return &Client{rdb: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})}
}

// Get returns the stored bytes, or nil on a miss or redis failure.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	if c == nil || c.rdb == nil {
		return nil, nil
	}
	res, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		log.Warnf("cache: get %s: %v", key, err)
		return nil, nil
	}
	return res, nil
}

// Set stores value with TTL. Redis errors are logged, not returned.
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	if err := c.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		log.Warnf("cache: set %s: %v", key, err)
	}
	return nil
}

// Delete removes a key. Redis errors are logged, not returned.
func (c *Client) Delete(ctx context.Context, key string) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		log.Warnf("cache: delete %s: %v", key, err)
	}
	return nil
}

// GetJSON decodes a cached JSON value into dst and reports whether it was found.
func (c *Client) GetJSON(ctx context.Context, key string, dst interface{}) bool {
	data, _ := c.Get(ctx, key)
	if data == nil {
		return false
	}
	return json.Unmarshal(data, dst) == nil
}

// SetJSON encodes v as JSON and stores it with TTL.
func (c *Client) SetJSON(ctx context.Context, key string, v interface{}, ttl time.Duration) {
	payload, err := json.Marshal(v)
	if err != nil {
		return
	}
	_ = c.Set(ctx, key, payload, ttl)
}

// Close releases the underlying connection pool.
func (c *Client) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
