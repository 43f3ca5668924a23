// Package cleanup provides the background cache sweeper
package cleanup

import (
	"context"
	"sort"
	"time"

	"github.com/AtRiskMedia/monster-widget/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/monster-widget/pkg/config"
)

// Purger is a cache that can drop its expired entries.
type Purger interface {
	Purge() int
	Len() int
}

// Config holds cleanup worker configuration.
type Config struct {
	CleanupInterval  time.Duration
	VerboseReporting bool
}

// NewConfig reads the worker settings from pkg/config.
func NewConfig() *Config {
	return &Config{
		CleanupInterval:  config.CacheCleanupInterval,
		VerboseReporting: config.CacheCleanupVerbose,
	}
}

// Worker periodically purges expired entries from every registered cache.
type Worker struct {
	caches map[string]Purger
	config *Config
	logger *logging.ChanneledLogger
}

func NewWorker(cfg *Config, logger *logging.ChanneledLogger) *Worker {
	if cfg == nil {
		cfg = NewConfig()
	}
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &Worker{
		caches: make(map[string]Purger),
		config: cfg,
		logger: logger,
	}
}

// Add registers a cache under name. Call before Start.
func (w *Worker) Add(name string, cache Purger) {
	if cache == nil {
		return
	}
	w.caches[name] = cache
}

// Start sweeps on every tick until ctx is cancelled.
func (w *Worker) Start(ctx context.Context) {
	if w.config.CleanupInterval <= 0 {
		w.logger.Cache().Info("Cache cleanup worker disabled")
		return
	}

	ticker := time.NewTicker(w.config.CleanupInterval)
	defer ticker.Stop()

	w.logger.Cache().Info("Cache cleanup worker started",
		"interval", w.config.CleanupInterval,
		"caches", len(w.caches))

	for {
		select {
		case <-ctx.Done():
			w.logger.Cache().Info("Cache cleanup worker stopping")
			return
		case <-ticker.C:
			w.Sweep()
		}
	}
}

// Sweep purges every cache once and returns the number of entries removed.
func (w *Worker) Sweep() int {
	start := time.Now()

	names := make([]string, 0, len(w.caches))
	for name := range w.caches {
		names = append(names, name)
	}
	sort.Strings(names)

	total := 0
	for _, name := range names {
		cache := w.caches[name]
		removed := cache.Purge()
		total += removed
		if w.config.VerboseReporting {
			w.logger.Cache().Debug("Cache swept", "cache", name, "removed", removed, "remaining", cache.Len())
		}
	}

	if total > 0 {
		w.logger.Cache().Info("Cache cleanup finished", "removed", total, "duration", time.Since(start))
	}
	return total
}
