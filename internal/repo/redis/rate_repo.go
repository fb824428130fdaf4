package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const rateKeyPrefix = "venuepilot:rate:"

// RateRepo keeps fixed rate windows as counters whose TTL is the time left in
// the window.
type RateRepo struct {
	client *goredis.Client
}

func NewRateRepo(client *goredis.Client) *RateRepo {
	return &RateRepo{client: client}
}

// IncrementWindow counts one hit in the window named by key. The expiry is
// (re)armed whenever the counter has none, so a lost EXPIRE never leaves a
// window open forever.
func (r *RateRepo) IncrementWindow(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	if r.client == nil {
		return 0, 0, fmt.Errorf("redis client is nil")
	}
	if strings.TrimSpace(key) == "" || window <= 0 {
		return 0, 0, fmt.Errorf("invalid rate window: key=%q window=%s", key, window)
	}

	redisKey := rateKeyPrefix + key
	var (
		incr *goredis.IntCmd
		ttl  *goredis.DurationCmd
	)
	if _, err := r.client.Pipelined(ctx, func(pipe goredis.Pipeliner) error {
		incr = pipe.Incr(ctx, redisKey)
		ttl = pipe.PTTL(ctx, redisKey)
		return nil
	}); err != nil {
		return 0, 0, fmt.Errorf("increment rate window %s: %w", key, err)
	}

	remaining := ttl.Val()
	if remaining < 0 {
		if err := r.client.PExpire(ctx, redisKey, window).Err(); err != nil {
			return 0, 0, fmt.Errorf("arm rate window %s: %w", key, err)
		}
		remaining = window
	}

	return incr.Val(), remaining, nil
}

// WindowState reads a window without counting a hit. An unknown key is an
// empty window.
func (r *RateRepo) WindowState(ctx context.Context, key string) (int64, time.Duration, error) {
	if r.client == nil {
		return 0, 0, fmt.Errorf("redis client is nil")
	}
	if strings.TrimSpace(key) == "" {
		return 0, 0, fmt.Errorf("rate window key is required")
	}

	redisKey := rateKeyPrefix + key
	var (
		get *goredis.StringCmd
		ttl *goredis.DurationCmd
	)
	_, err := r.client.Pipelined(ctx, func(pipe goredis.Pipeliner) error {
		get = pipe.Get(ctx, redisKey)
		ttl = pipe.PTTL(ctx, redisKey)
		return nil
	})
	if err != nil && !errors.Is(err, goredis.Nil) {
		return 0, 0, fmt.Errorf("read rate window %s: %w", key, err)
	}

	count, err := get.Int64()
	if errors.Is(err, goredis.Nil) {
		return 0, 0, nil
	}
	if err != nil {
		return 0, 0, fmt.Errorf("parse rate window %s: %w", key, err)
	}

	remaining := ttl.Val()
	if remaining < 0 {
		remaining = 0
	}
	return count, remaining, nil
}
