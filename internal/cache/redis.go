package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// epochKey counts purges. It sits outside PrefixLeague so Purge never
// deletes it.
const epochKey = "cache:epoch"

var errEpochMoved = errors.New("cache epoch moved")

// Redis is a Backend shared by every API replica. Errors degrade to cache
// misses and are logged.
type Redis struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRedis connects to url (redis://[:password@]host:port/db) and pings it.
func NewRedis(ctx context.Context, url string, logger *slog.Logger) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Redis{client: client, logger: logger}, nil
}

// NewRedisFromClient wraps an existing client.
func NewRedisFromClient(client *redis.Client, logger *slog.Logger) *Redis {
	return &Redis{client: client, logger: logger}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, string, bool) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.Warn("Redis get failed", "key", key, "error", err)
		}
		return nil, "", false
	}
	return data, ComputeETag(data), true
}

// Epoch reads the shared purge counter. A missing key is epoch 0.
func (r *Redis) Epoch(ctx context.Context) uint64 {
	n, err := r.client.Get(ctx, epochKey).Uint64()
	if err != nil && !errors.Is(err, redis.Nil) {
		r.logger.Warn("Redis epoch read failed", "error", err)
	}
	return n
}

// SetIfEpoch writes key inside a WATCH on the epoch key, so a Purge from any
// replica between Epoch and the write aborts it.
func (r *Redis) SetIfEpoch(ctx context.Context, key string, data []byte, ttl time.Duration, epoch uint64) (string, bool) {
	etag := ComputeETag(data)
	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, epochKey).Uint64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if cur != epoch {
			return errEpochMoved
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, ttl)
			return nil
		})
		return err
	}, epochKey)

	switch {
	case err == nil:
		return etag, true
	case errors.Is(err, errEpochMoved), errors.Is(err, redis.TxFailedErr):
		r.logger.Debug("Redis set skipped after purge", "key", key)
	default:
		r.logger.Warn("Redis set failed", "key", key, "error", err)
	}
	return etag, false
}

// Purge advances the epoch, then scans for prefix* and deletes the matches
// in batches.
func (r *Redis) Purge(ctx context.Context, prefix string) int {
	if err := r.client.Incr(ctx, epochKey).Err(); err != nil {
		r.logger.Warn("Redis epoch bump failed", "error", err)
	}

	removed := 0
	iter := r.client.Scan(ctx, 0, prefix+"*", 100).Iterator()

	batch := make([]string, 0, 100)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		n, err := r.client.Del(ctx, batch...).Result()
		if err != nil {
			r.logger.Warn("Redis purge failed", "prefix", prefix, "error", err)
		}
		removed += int(n)
		batch = batch[:0]
	}

	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == cap(batch) {
			flush()
		}
	}
	flush()

	if err := iter.Err(); err != nil {
		r.logger.Warn("Redis scan failed", "prefix", prefix, "error", err)
	}
	return removed
}

func (r *Redis) Stats(ctx context.Context) map[string]interface{} {
	stats := map[string]interface{}{"backend": "redis", "enabled": true}
	size, err := r.client.DBSize(ctx).Result()
	if err != nil {
		stats["error"] = err.Error()
		return stats
	}
	stats["total_keys"] = size
	return stats
}

// Ping reports whether Redis is reachable.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close releases the client.
func (r *Redis) Close() error {
	return r.client.Close()
}
