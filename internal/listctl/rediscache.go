package listctl

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// RedisCache shares list results between operator sessions through
// Redis. An index set per entity tracks live keys so Invalidate can
// drop them all in one pass.
type RedisCache[T any] struct {
	rdb    *redis.Client
	prefix string
	index  string
	ttl    time.Duration
}

// NewRedisCache creates a Redis-backed cache scoped to one entity.
func NewRedisCache[T any](rdb *redis.Client, entity string, ttl time.Duration) *RedisCache[T] {
	if ttl == 0 {
		ttl = 5 * time.Minute
	}
	return &RedisCache[T]{
		rdb:    rdb,
		prefix: "adminlist:" + entity + ":",
		index:  "adminlist:" + entity + ":keys",
		ttl:    ttl,
	}
}

type redisEntry[T any] struct {
	Items      []T            `json:"items"`
	TotalItems int            `json:"total_items"`
	TotalPages int            `json:"total_pages"`
	Stats      map[string]int `json:"stats,omitempty"`
}

func (c *RedisCache[T]) Get(ctx context.Context, key string) (ListResult[T], bool) {
	var zero ListResult[T]
	raw, err := c.rdb.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Msg("redis cache read failed, treating as miss")
		}
		return zero, false
	}
	var e redisEntry[T]
	if err := json.Unmarshal(raw, &e); err != nil {
		log.Warn().Err(err).Msg("redis cache entry corrupt, treating as miss")
		return zero, false
	}
	return ListResult[T]{
		Items:      e.Items,
		TotalItems: e.TotalItems,
		TotalPages: e.TotalPages,
		Stats:      e.Stats,
	}, true
}

func (c *RedisCache[T]) Set(ctx context.Context, key string, res ListResult[T]) {
	raw, err := json.Marshal(redisEntry[T]{
		Items:      res.Items,
		TotalItems: res.TotalItems,
		TotalPages: res.TotalPages,
		Stats:      res.Stats,
	})
	if err != nil {
		log.Warn().Err(err).Msg("redis cache encode failed, skipping write")
		return
	}
	pipe := c.rdb.TxPipeline()
	pipe.Set(ctx, c.prefix+key, raw, c.ttl)
	pipe.SAdd(ctx, c.index, key)
	pipe.Expire(ctx, c.index, c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		log.Warn().Err(err).Msg("redis cache write failed")
	}
}

func (c *RedisCache[T]) Invalidate(ctx context.Context) {
	keys, err := c.rdb.SMembers(ctx, c.index).Result()
	if err != nil {
		log.Warn().Err(err).Msg("redis cache invalidation failed")
		return
	}
	full := make([]string, 0, len(keys)+1)
	for _, k := range keys {
		full = append(full, c.prefix+k)
	}
	full = append(full, c.index)
	if err := c.rdb.Del(ctx, full...).Err(); err != nil {
		log.Warn().Err(err).Msg("redis cache invalidation failed")
	}
}
