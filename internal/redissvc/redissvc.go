// Package redissvc wraps the Redis client used for the per-product
// per-day sold counters that back the high-selling check.
package redissvc

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// counterTTL keeps yesterday's counter around long enough to survive
// midnight boundaries before Redis reclaims it.
const counterTTL = 48 * time.Hour

type RedisService struct {
	rdb *redis.Client
}

func NewRedisService(rdb *redis.Client) *RedisService {
	return &RedisService{rdb: rdb}
}

func (a *RedisService) Rdb() *redis.Client {
	return a.rdb
}

func soldKey(ownerID, productID int, day time.Time) string {
	return fmt.Sprintf("sales:sold:%d:%d:%s", ownerID, productID, day.Format("2006-01-02"))
}

// IncrSold bumps the owner's per-day sold counter for a product.
func (a *RedisService) IncrSold(ctx context.Context, ownerID, productID, qty int, day time.Time) error {
	key := soldKey(ownerID, productID, day)
	if err := a.rdb.IncrBy(ctx, key, int64(qty)).Err(); err != nil {
		return err
	}
	return a.rdb.Expire(ctx, key, counterTTL).Err()
}

// SoldOn reads the counter; a missing key means nothing sold that day.
func (a *RedisService) SoldOn(ctx context.Context, ownerID, productID int, day time.Time) (int, error) {
	val, err := a.rdb.Get(ctx, soldKey(ownerID, productID, day)).Int()
	if err == redis.Nil {
		return 0, nil
	}
	return val, err
}
