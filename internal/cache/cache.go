package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Get retrieves a value from Redis and unmarshals it into dest.
// The boolean reports whether the key existed.
func Get(ctx context.Context, rdb *redis.Client, key string, dest any) (bool, error) {
	val, err := rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	} else if err != nil {
		return false, err
	}
	return true, json.Unmarshal([]byte(val), dest)
}

// Set stores a value in Redis as JSON with the given TTL.
func Set(ctx context.Context, rdb *redis.Client, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return rdb.Set(ctx, key, b, ttl).Err()
}

// Delete removes a key from Redis.
func Delete(ctx context.Context, rdb *redis.Client, key string) error {
	return rdb.Del(ctx, key).Err()
}
