package rate

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	memrepo "github.com/shvshnn-coder/venue-pilot/internal/repo/memory"
	redrepo "github.com/shvshnn-coder/venue-pilot/internal/repo/redis"
)

func TestLimiterDecisionWindows(t *testing.T) {
	cases := []struct {
		name       string
		cfg        Config
		allowed    int
		maxRetry   int64
		resetAfter time.Duration
	}{
		{
			name:       "ten second window",
			cfg:        Config{DecisionsPerMinute: 100, DecisionsPer10Sec: 2},
			allowed:    2,
			maxRetry:   10,
			resetAfter: 11 * time.Second,
		},
		{
			name:       "minute window",
			cfg:        Config{DecisionsPerMinute: 3, DecisionsPer10Sec: 100},
			allowed:    3,
			maxRetry:   60,
			resetAfter: 61 * time.Second,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mr, client := newMiniRedisClient(t)
			limiter := NewLimiter(redrepo.NewRateRepo(client), tc.cfg)
			ctx := context.Background()
			userID := "att-42"

			for i := 0; i < tc.allowed; i++ {
				retryAfter, allowed, err := limiter.AllowDecision(ctx, userID)
				if err != nil {
					t.Fatalf("allow decision #%d: %v", i+1, err)
				}
				if !allowed || retryAfter != 0 {
					t.Fatalf("unexpected result on swipe #%d: allowed=%v retry_after=%d", i+1, allowed, retryAfter)
				}
			}

			retryAfter, allowed, err := limiter.AllowDecision(ctx, userID)
			if err != nil {
				t.Fatalf("allow decision over limit: %v", err)
			}
			if allowed {
				t.Fatalf("expected swipe #%d to be limited", tc.allowed+1)
			}
			if retryAfter <= 0 || retryAfter > tc.maxRetry {
				t.Fatalf("unexpected retry_after: got %d want 1..%d", retryAfter, tc.maxRetry)
			}

			state, err := limiter.RetryAfterDecision(ctx, userID)
			if err != nil {
				t.Fatalf("retry_after state: %v", err)
			}
			if state <= 0 {
				t.Fatalf("expected positive retry_after state, got %d", state)
			}

			mr.FastForward(tc.resetAfter)

			if _, allowed, err := limiter.AllowDecision(ctx, userID); err != nil || !allowed {
				t.Fatalf("swipe after reset: allowed=%v err=%v", allowed, err)
			}
		})
	}
}

func TestLimiterReportWindowIsIndependent(t *testing.T) {
	limiter := NewLimiter(memrepo.NewStore(), Config{DecisionsPer10Sec: 1, ReportsPer10Min: 1})
	ctx := context.Background()

	if _, allowed, err := limiter.AllowDecision(ctx, "u1"); err != nil || !allowed {
		t.Fatalf("first decision should pass: allowed=%v err=%v", allowed, err)
	}
	if _, allowed, err := limiter.AllowReport(ctx, "u1"); err != nil || !allowed {
		t.Fatalf("first report should pass: allowed=%v err=%v", allowed, err)
	}
	if _, allowed, err := limiter.AllowReport(ctx, "u1"); err != nil || allowed {
		t.Fatalf("second report should be limited: allowed=%v err=%v", allowed, err)
	}
	if _, allowed, err := limiter.AllowReport(ctx, "u2"); err != nil || !allowed {
		t.Fatalf("other user should not share the window: allowed=%v err=%v", allowed, err)
	}
}

func TestLimiterZeroLimitsDisableWindows(t *testing.T) {
	limiter := NewLimiter(memrepo.NewStore(), Config{})
	for i := 0; i < 50; i++ {
		if _, allowed, err := limiter.AllowDecision(context.Background(), "u1"); err != nil || !allowed {
			t.Fatalf("decision #%d should pass with limits disabled: allowed=%v err=%v", i+1, allowed, err)
		}
	}
}

func newMiniRedisClient(t *testing.T) (*miniredis.Miniredis, *goredis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return mr, client
}
