package rate

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const (
	decisionsMinuteWindow = time.Minute
	decisions10SecWindow  = 10 * time.Second
	reportsWindow         = 10 * time.Minute
)

type WindowStore interface {
	IncrementWindow(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
	WindowState(ctx context.Context, key string) (int64, time.Duration, error)
}

type Config struct {
	DecisionsPerMinute int
	DecisionsPer10Sec  int
	ReportsPer10Min    int
}

// Limiter applies fixed-window counters per user. A limit of zero disables
// that window.
type Limiter struct {
	store WindowStore
	cfg   Config
}

func NewLimiter(store WindowStore, cfg Config) *Limiter {
	if cfg.DecisionsPerMinute < 0 {
		cfg.DecisionsPerMinute = 0
	}
	if cfg.DecisionsPer10Sec < 0 {
		cfg.DecisionsPer10Sec = 0
	}
	if cfg.ReportsPer10Min < 0 {
		cfg.ReportsPer10Min = 0
	}

	return &Limiter{
		store: store,
		cfg:   cfg,
	}
}

// AllowDecision counts one swipe. When a window is exceeded it returns the
// seconds until the longest blocking window resets.
func (l *Limiter) AllowDecision(ctx context.Context, userID string) (int64, bool, error) {
	return l.allow(ctx, userID, []window{
		{key: "decisions:min:", size: decisionsMinuteWindow, limit: l.cfg.DecisionsPerMinute},
		{key: "decisions:10s:", size: decisions10SecWindow, limit: l.cfg.DecisionsPer10Sec},
	})
}

func (l *Limiter) AllowReport(ctx context.Context, userID string) (int64, bool, error) {
	return l.allow(ctx, userID, []window{
		{key: "reports:10m:", size: reportsWindow, limit: l.cfg.ReportsPer10Min},
	})
}

// RetryAfterDecision reports the current cooldown without counting an action.
func (l *Limiter) RetryAfterDecision(ctx context.Context, userID string) (int64, error) {
	if strings.TrimSpace(userID) == "" {
		return 0, fmt.Errorf("invalid user id")
	}
	if l.store == nil {
		return 0, fmt.Errorf("rate limiter store is nil")
	}

	retryAfterSec := int64(0)
	for _, w := range []window{
		{key: "decisions:min:", limit: l.cfg.DecisionsPerMinute},
		{key: "decisions:10s:", limit: l.cfg.DecisionsPer10Sec},
	} {
		if w.limit <= 0 {
			continue
		}
		count, ttl, err := l.store.WindowState(ctx, w.key+userID)
		if err != nil {
			return 0, err
		}
		if count >= int64(w.limit) {
			retryAfterSec = maxInt64(retryAfterSec, maxInt64(1, ceilSeconds(ttl)))
		}
	}

	return retryAfterSec, nil
}

type window struct {
	key   string
	size  time.Duration
	limit int
}

func (l *Limiter) allow(ctx context.Context, userID string, windows []window) (int64, bool, error) {
	if strings.TrimSpace(userID) == "" {
		return 0, false, fmt.Errorf("invalid user id")
	}
	if l.store == nil {
		return 0, false, fmt.Errorf("rate limiter store is nil")
	}

	retryAfterSec := int64(0)
	for _, w := range windows {
		if w.limit <= 0 {
			continue
		}
		count, ttl, err := l.store.IncrementWindow(ctx, w.key+userID, w.size)
		if err != nil {
			return 0, false, err
		}
		if count > int64(w.limit) {
			retryAfterSec = maxInt64(retryAfterSec, maxInt64(1, ceilSeconds(ttl)))
		}
	}

	if retryAfterSec > 0 {
		return retryAfterSec, false, nil
	}

	return 0, true, nil
}

func ceilSeconds(d time.Duration) int64 {
	if d <= 0 {
		return 0
	}
	sec := int64(d / time.Second)
	if d%time.Second != 0 {
		sec++
	}
	if sec <= 0 {
		sec = 1
	}
	return sec
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
