package review

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	ratingCachePrefix = "rating:avg:"
	ratingGenPrefix   = "rating:gen:"
)

// RatingCache holds computed sitter averages. A fill only lands if no invalidation
// happened since the caller read the generation it computed under.
type RatingCache interface {
	Get(ctx context.Context, sitterID string) (avg float64, ok bool, err error)
	// Generation is bumped by every Invalidate.
	Generation(ctx context.Context, sitterID string) (int64, error)
	// SetIfGeneration stores avg unless the generation moved past gen.
	SetIfGeneration(ctx context.Context, sitterID string, gen int64, avg float64) (bool, error)
	Invalidate(ctx context.Context, sitterID string) error
}

// RedisRatingCache stores averages as plain float strings with a TTL.
type RedisRatingCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisRatingCache(client *redis.Client, ttl time.Duration) *RedisRatingCache {
	return &RedisRatingCache{Client: client, TTL: ttl}
}

// KEYS[1] generation, KEYS[2] average; ARGV gen, avg, ttl in ms (0 keeps it forever).
var setIfGeneration = redis.NewScript(`
local current = redis.call('GET', KEYS[1]) or '0'
if current ~= ARGV[1] then
	return 0
end
if tonumber(ARGV[3]) > 0 then
	redis.call('SET', KEYS[2], ARGV[2], 'PX', ARGV[3])
else
	redis.call('SET', KEYS[2], ARGV[2])
end
return 1
`)

func (c *RedisRatingCache) Get(ctx context.Context, sitterID string) (float64, bool, error) {
	avg, err := c.Client.Get(ctx, ratingCachePrefix+sitterID).Float64()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to read rating cache: %w", err)
	}
	return avg, true, nil
}

func (c *RedisRatingCache) Generation(ctx context.Context, sitterID string) (int64, error) {
	gen, err := c.Client.Get(ctx, ratingGenPrefix+sitterID).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read rating generation: %w", err)
	}
	return gen, nil
}

func (c *RedisRatingCache) SetIfGeneration(ctx context.Context, sitterID string, gen int64, avg float64) (bool, error) {
	stored, err := setIfGeneration.Run(ctx, c.Client,
		[]string{ratingGenPrefix + sitterID, ratingCachePrefix + sitterID},
		gen, avg, c.TTL.Milliseconds(),
	).Int()
	if err != nil {
		return false, fmt.Errorf("failed to write rating cache: %w", err)
	}
	return stored == 1, nil
}

func (c *RedisRatingCache) Invalidate(ctx context.Context, sitterID string) error {
	_, err := c.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, ratingGenPrefix+sitterID)
		pipe.Del(ctx, ratingCachePrefix+sitterID)
		return nil
	})
	return err
}
