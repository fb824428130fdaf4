package memory

import (
	"context"
	"fmt"
	"time"
)

type rateWindow struct {
	count     int64
	expiresAt time.Time
}

// IncrementWindow mirrors the fixed-window counters of the redis driver so
// rate limits still apply when redis is disabled.
func (s *Store) IncrementWindow(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	if key == "" || window <= 0 {
		return 0, 0, fmt.Errorf("invalid rate window payload")
	}
	unlock := s.lock(ctx)
	defer unlock()

	now := s.now()
	s.sweepWindows(now, window)

	w, ok := s.windows[key]
	if !ok || !now.Before(w.expiresAt) {
		w = rateWindow{expiresAt: now.Add(window)}
	}
	w.count++
	s.windows[key] = w

	return w.count, w.expiresAt.Sub(now), nil
}

func (s *Store) WindowState(ctx context.Context, key string) (int64, time.Duration, error) {
	if key == "" {
		return 0, 0, fmt.Errorf("rate key is required")
	}
	unlock := s.lock(ctx)
	defer unlock()

	now := s.now()
	w, ok := s.windows[key]
	if !ok || !now.Before(w.expiresAt) {
		delete(s.windows, key)
		return 0, 0, nil
	}
	return w.count, w.expiresAt.Sub(now), nil
}

// sweepWindows drops expired counters at most once per window length.
// Callers hold the store lock.
func (s *Store) sweepWindows(now time.Time, window time.Duration) {
	if now.Before(s.nextSweep) {
		return
	}
	for key, w := range s.windows {
		if !now.Before(w.expiresAt) {
			delete(s.windows, key)
		}
	}
	s.nextSweep = now.Add(window)
}
