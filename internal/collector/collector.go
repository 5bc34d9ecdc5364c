// Package collector drives the six platform adapters in a fixed sequence
// with pacing between calls, applying the shared fallback policy so one
// platform's failure never touches the rest.
package collector

import (
	"context"
	"log/slog"
	"time"

	"github.com/ajay-panchal-099/daily-news-trend/internal/metrics"
	"github.com/ajay-panchal-099/daily-news-trend/internal/snapshot"
	"github.com/ajay-panchal-099/daily-news-trend/pkg/platform"
)

// DefaultPause is the delay between adapter calls. The scrape and
// RapidAPI endpoints rate-limit aggressively; back-to-back calls from
// one IP trip them.
const DefaultPause = 2 * time.Second

// Archiver pushes the snapshot store to durable external storage after a
// collection cycle. Failures are logged, never propagated.
type Archiver interface {
	PushIfChanged(ctx context.Context, dir string) error
}

// Collector owns the adapter sequence and the snapshot store.
type Collector struct {
	store    *snapshot.Store
	adapters []platform.Adapter
	pause    time.Duration
	archiver Archiver
	logger   *slog.Logger
	now      func() time.Time
}

// New creates a collector. adapters run in the given order; archiver may
// be nil.
func New(store *snapshot.Store, adapters []platform.Adapter, pause time.Duration, archiver Archiver, logger *slog.Logger) *Collector {
	if pause < 0 {
		pause = DefaultPause
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Collector{
		store:    store,
		adapters: adapters,
		pause:    pause,
		archiver: archiver,
		logger:   logger,
		now:      time.Now,
	}
}

// CollectAll runs every adapter in order and reports per-platform
// success. A platform succeeds with fresh data or by falling back to a
// usable prior snapshot; it fails only when neither exists.
func (c *Collector) CollectAll(ctx context.Context) map[platform.Platform]bool {
	c.logger.Info("starting trend collection")
	metrics.CollectionRuns.Inc()

	results := make(map[platform.Platform]bool, len(c.adapters))
	for i, adapter := range c.adapters {
		if i > 0 && c.pause > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(c.pause):
			}
		}
		results[adapter.Platform()] = c.CollectOne(ctx, adapter)
	}

	c.logger.Info("trend collection completed")

	if c.archiver != nil {
		if err := c.archiver.PushIfChanged(ctx, c.store.Dir()); err != nil {
			c.logger.Warn("archive push failed", "error", err)
		}
	}
	return results
}

// CollectOne runs a single adapter and persists its snapshot, falling
// back to the existing snapshot on any failure.
func (c *Collector) CollectOne(ctx context.Context, adapter platform.Adapter) bool {
	p := adapter.Platform()

	snap, err := adapter.Collect(ctx)
	if err != nil {
		c.logger.Warn("collection failed", "platform", p, "error", err)
		return c.fallback(p)
	}
	if snap == nil || len(snap.Trends) == 0 {
		c.logger.Warn("collection returned no trends", "platform", p)
		return c.fallback(p)
	}

	snap.LastUpdated = platform.Timestamp(c.now())
	if err := c.store.Write(p, snap); err != nil {
		c.logger.Error("snapshot write failed", "platform", p, "error", err)
		return c.fallback(p)
	}

	metrics.PlatformCollections.WithLabelValues(string(p), "fresh").Inc()
	c.logger.Info("collected", "platform", p, "trends", len(snap.Trends))
	return true
}

// fallback applies the shared policy: stale data on disk counts as
// success and is left untouched.
func (c *Collector) fallback(p platform.Platform) bool {
	if c.store.HasUsable(p) {
		metrics.PlatformCollections.WithLabelValues(string(p), "fallback").Inc()
		c.logger.Info("using existing snapshot", "platform", p)
		return true
	}
	metrics.PlatformCollections.WithLabelValues(string(p), "failed").Inc()
	c.logger.Error("no usable snapshot", "platform", p)
	return false
}

// Adapter returns the adapter for a platform, or nil when the platform
// is not wired in.
func (c *Collector) Adapter(p platform.Platform) platform.Adapter {
	for _, a := range c.adapters {
		if a.Platform() == p {
			return a
		}
	}
	return nil
}

// Run collects immediately, then on every interval tick until ctx is
// cancelled.
func (c *Collector) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = 30 * time.Minute
	}

	c.CollectAll(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	c.logger.Info("collector running", "interval", interval)
	for {
		select {
		case <-ctx.Done():
			c.logger.Info("collector stopped")
			return ctx.Err()
		case <-ticker.C:
			c.CollectAll(ctx)
		}
	}
}
