package service

import (
	"context"
	"log/slog"
	"time"
)

// KeyCacheClearInterval is how long derived keys may stay cached before the
// whole cache is flushed. The deadline survives restarts: the janitor persists
// the last clear time and re-arms from it on startup.
const KeyCacheClearInterval = 30 * 24 * time.Hour

// KeyClearer is the subset of KeyCache the janitor drives.
type KeyClearer interface {
	Clear()
	Size() int
}

// CacheJanitor clears the key cache on a fixed period. There is no per-entry
// eviction, every clear drops the full cache.
type CacheJanitor struct {
	cache    KeyClearer
	states   CacheStateRepository
	interval time.Duration
	now      func() time.Time
}

// NewCacheJanitor returns a janitor that clears cache every
// KeyCacheClearInterval, persisting clear times in states.
func NewCacheJanitor(cache KeyClearer, states CacheStateRepository) *CacheJanitor {
	return &CacheJanitor{
		cache:    cache,
		states:   states,
		interval: KeyCacheClearInterval,
		now:      time.Now,
	}
}

// Start runs the clear loop until ctx is canceled. On startup it loads the
// persisted last clear time and arms the timer for the remainder of the
// period, so a restart never extends a key's lifetime. An overdue deadline
// fires immediately.
func (j *CacheJanitor) Start(ctx context.Context) error {
	lastCleared, err := j.states.LastCleared(ctx)
	if err != nil {
		return err
	}
	if lastCleared.IsZero() {
		// First boot: start the period now.
		lastCleared = j.now()
		if err := j.states.SetLastCleared(ctx, lastCleared); err != nil {
			return err
		}
	}

	timer := time.NewTimer(j.remaining(lastCleared))
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			if err := j.clear(ctx); err != nil {
				slog.Error("key cache clear failed", "error", err)
				// Retry shortly rather than waiting a full period with
				// an unpersisted clear time.
				timer.Reset(time.Minute)
				continue
			}
			timer.Reset(j.interval)
		}
	}
}

func (j *CacheJanitor) clear(ctx context.Context) error {
	size := j.cache.Size()
	j.cache.Clear()
	slog.Info("key cache cleared", "evicted_keys", size)
	return j.states.SetLastCleared(ctx, j.now())
}

func (j *CacheJanitor) remaining(lastCleared time.Time) time.Duration {
	remaining := j.interval - j.now().Sub(lastCleared)
	if remaining < 0 {
		return 0
	}
	return remaining
}
