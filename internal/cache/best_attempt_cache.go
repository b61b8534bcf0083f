package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lshigami/schooltest/config"
	"github.com/lshigami/schooltest/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// BestAttemptCache is a read-through cache in front of the best_attempts table.
// A miss returns (nil, nil).
type BestAttemptCache interface {
	Get(ctx context.Context, studentID, testID string) (*model.BestAttempt, error)
	// Set stores best unless the cached entry has a later RefreshedAt.
	Set(ctx context.Context, best *model.BestAttempt) error
	Invalidate(ctx context.Context, studentID, testID string) error
}

func Key(studentID, testID string) string {
	return fmt.Sprintf("best_attempt:%s:%s", studentID, testID)
}

// NewBestAttemptCache returns a Redis cache when REDIS_ADDR is set, otherwise a no-op.
func NewBestAttemptCache(cfg *config.Config) BestAttemptCache {
	if cfg.Redis.Addr == "" {
		log.Info().Msg("Redis not configured, best-attempt cache disabled")
		return NoopCache{}
	}
	client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
	return NewRedisCache(client, cfg.Redis.TTL)
}

// maxSetTries bounds the WATCH retries when another writer races on the key.
const maxSetTries = 3

type redisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) BestAttemptCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &redisCache{client: client, ttl: ttl}
}

func (c *redisCache) Get(ctx context.Context, studentID, testID string) (*model.BestAttempt, error) {
	raw, err := c.client.Get(ctx, Key(studentID, testID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var best model.BestAttempt
	if err := json.Unmarshal(raw, &best); err != nil {
		return nil, fmt.Errorf("decode cached best attempt: %w", err)
	}
	return &best, nil
}

func (c *redisCache) Set(ctx context.Context, best *model.BestAttempt) error {
	raw, err := json.Marshal(best)
	if err != nil {
		return err
	}
	key := Key(best.StudentID, best.TestID)
	setIfNewer := func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, key).Bytes()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if err == nil {
			var cached model.BestAttempt
			if json.Unmarshal(cur, &cached) == nil && cached.RefreshedAt.After(best.RefreshedAt) {
				return nil
			}
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, raw, c.ttl)
			return nil
		})
		return err
	}
	for i := 0; i < maxSetTries; i++ {
		err = c.client.Watch(ctx, setIfNewer, key)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
	}
	return err
}

func (c *redisCache) Invalidate(ctx context.Context, studentID, testID string) error {
	return c.client.Del(ctx, Key(studentID, testID)).Err()
}

type NoopCache struct{}

func (NoopCache) Get(context.Context, string, string) (*model.BestAttempt, error) { return nil, nil }
func (NoopCache) Set(context.Context, *model.BestAttempt) error                   { return nil }
func (NoopCache) Invalidate(context.Context, string, string) error                { return nil }
