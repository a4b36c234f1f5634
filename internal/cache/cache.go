package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client wraps redis.Client and fails safe: every cache problem, from a cold
// key to an unreachable server, degrades to a miss so callers fall through to
// the database instead of erroring.
type Client struct {
	rdb *redis.Client
}

// New creates a new Redis client.
func New(addr, password string, db int) *Client {
	return &Client{rdb: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})}
}

func (c *Client) available() bool {
	return c != nil && c.rdb != nil
}

// Get returns the value for key, or nil on a miss or when redis is down.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	if !c.available() {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		// redis.Nil and connectivity errors both read as a miss
		return nil, nil
	}
	return data, nil
}

// Set stores value under key with a TTL, ignoring redis errors.
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if !c.available() {
		return nil
	}
	_ = c.rdb.Set(ctx, key, value, ttl).Err()
	return nil
}

// Delete removes a key, ignoring redis errors.
func (c *Client) Delete(ctx context.Context, key string) error {
	if !c.available() {
		return nil
	}
	_ = c.rdb.Del(ctx, key).Err()
	return nil
}
