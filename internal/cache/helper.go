package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"inkwell/internal/observability"

	"github.com/redis/go-redis/v9"
)

// GetJSON fetches key and unmarshals it into dest. Returns false on miss,
// on a nil client, or when the stored value cannot be decoded.
func GetJSON(ctx context.Context, key string, dest any) bool {
	if client == nil {
		return false
	}

	raw, err := client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			observability.CacheMisses.WithLabelValues(keyPrefix(key)).Inc()
		}
		return false
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		// Stale or corrupt entry; drop it so the next write repopulates.
		client.Del(ctx, key)
		return false
	}

	observability.CacheHits.WithLabelValues(keyPrefix(key)).Inc()
	return true
}

// SetJSON marshals value and stores it under key with the given TTL.
// Failures are swallowed: the cache is an optimization, never a dependency.
func SetJSON(ctx context.Context, key string, value any, ttl time.Duration) {
	if client == nil {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return
	}

	client.Set(ctx, key, raw, ttl)
}

func keyPrefix(key string) string {
	if i := strings.IndexByte(key, ':'); i > 0 {
		return key[:i]
	}
	return key
}
