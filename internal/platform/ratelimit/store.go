// Package ratelimit throttles requests per client with fixed-window counters held in Redis.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// hitScript increments the window counter and starts the window on the first hit.
// A key left without an expiry (PTTL -1) is repaired so it cannot block a client forever.
var hitScript = redis.NewScript(`
local count = redis.call('INCR', KEYS[1])
local ttl = redis.call('PTTL', KEYS[1])
if count == 1 or ttl < 0 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
	ttl = tonumber(ARGV[1])
end
return {count, ttl}
`)

// Hit is the state of a window right after one request was counted.
type Hit struct {
	Count int64
	// TTL is the time left until the window resets.
	TTL time.Duration
}

// Store counts requests per key inside a window.
type Store interface {
	Hit(ctx context.Context, key string, window time.Duration) (Hit, error)
}

// RedisStore is a Store backed by a single Lua script, so increments are atomic
// across every server instance sharing the Redis database.
type RedisStore struct {
	rdb redis.Scripter
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore returns a Store using rdb.
func NewRedisStore(rdb redis.Scripter) *RedisStore {
	return &RedisStore{rdb: rdb}
}

// Hit counts one request against key.
func (s *RedisStore) Hit(ctx context.Context, key string, window time.Duration) (Hit, error) {
	res, err := hitScript.Run(ctx, s.rdb, []string{key}, window.Milliseconds()).Int64Slice()
	if err != nil {
		return Hit{}, fmt.Errorf("rate limit hit %s: %w", key, err)
	}
	if len(res) != 2 {
		return Hit{}, fmt.Errorf("rate limit hit %s: unexpected reply %v", key, res)
	}
	return Hit{Count: res[0], TTL: time.Duration(res[1]) * time.Millisecond}, nil
}
