package user

import (
	"context"
	"errors"
	"time"

	"petsitter/utils"

	"github.com/go-redis/redis/v8"
)

// SessionCache remembers the current token hash of each account.
type SessionCache interface {
	Store(ctx context.Context, accountID, tokenHash string, ttl time.Duration) error
	Lookup(ctx context.Context, accountID string) (string, bool, error)
	Forget(ctx context.Context, accountID string) error
}

// RedisSessionCache keeps token hashes in the auth Redis database.
type RedisSessionCache struct {
	Client *redis.Client
}

func NewRedisSessionCache(client *redis.Client) *RedisSessionCache {
	return &RedisSessionCache{Client: client}
}

func (c *RedisSessionCache) Store(ctx context.Context, accountID, tokenHash string, ttl time.Duration) error {
	return c.Client.Set(ctx, utils.AuthCachePrefix+accountID, tokenHash, ttl).Err()
}

func (c *RedisSessionCache) Lookup(ctx context.Context, accountID string) (string, bool, error) {
	hash, err := c.Client.Get(ctx, utils.AuthCachePrefix+accountID).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return hash, true, nil
}

func (c *RedisSessionCache) Forget(ctx context.Context, accountID string) error {
	return c.Client.Del(ctx, utils.AuthCachePrefix+accountID).Err()
}
