package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/misbahulhassan/Aeroflux-Electric/internal/usecase"
)

// RedisStatusCache mirrors the mutable order status so the storefront's
// "where is my order" lookup stays off the database.
type RedisStatusCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStatusCache(rdb *redis.Client, ttl time.Duration) *RedisStatusCache {
	return &RedisStatusCache{rdb: rdb, ttl: ttl}
}

func (r *RedisStatusCache) SetStatus(ctx context.Context, orderID, status string) error {
	return r.rdb.Set(ctx, statusKey(orderID), status, r.ttl).Err()
}

func (r *RedisStatusCache) GetStatus(ctx context.Context, orderID string) (string, bool, error) {
	val, err := r.rdb.Get(ctx, statusKey(orderID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func statusKey(orderID string) string { return "order:status:" + orderID }

var _ usecase.StatusCache = (*RedisStatusCache)(nil)
