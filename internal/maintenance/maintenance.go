// Package maintenance runs periodic background tasks as Go tickers.
package maintenance

import (
	"context"
	"log/slog"
	"time"
)

// Config controls maintenance task intervals. Zero duration disables a task.
type Config struct {
	CatchUpInterval     time.Duration // Re-snapshot in case NOTIFY events were missed
	ConsistencyInterval time.Duration // Report finished matches not marked played
}

// Invalidator receives catch-up signals. *feed.Invalidator satisfies it.
type Invalidator interface {
	Invalidate(source string)
}

// Auditor counts rows the standings silently ignore. *store.Store
// satisfies it.
type Auditor interface {
	CountFinishedUnplayed(ctx context.Context) (int, error)
}

// Start launches all configured maintenance tickers. Blocks until ctx is
// cancelled. Intended to be called with `go`.
func Start(ctx context.Context, inv Invalidator, audit Auditor, cfg Config, logger *slog.Logger) {
	logger.Info("Maintenance tickers started",
		"catchup", cfg.CatchUpInterval,
		"consistency", cfg.ConsistencyInterval)

	tickers := make([]*time.Ticker, 0, 2)
	defer func() {
		for _, t := range tickers {
			t.Stop()
		}
	}()

	// Catch-up: the listener may have been down, so re-derive regardless
	if cfg.CatchUpInterval > 0 {
		t := time.NewTicker(cfg.CatchUpInterval)
		tickers = append(tickers, t)
		go runLoop(ctx, t.C, "catchup", logger, func() { inv.Invalidate("catchup") })
	}

	// Consistency: finished matches with played=false are excluded from standings
	if cfg.ConsistencyInterval > 0 && audit != nil {
		t := time.NewTicker(cfg.ConsistencyInterval)
		tickers = append(tickers, t)
		go runLoop(ctx, t.C, "consistency", logger, func() { consistencySweep(ctx, audit, logger) })
	}

	<-ctx.Done()
	logger.Info("Maintenance tickers stopped")
}

func runLoop(ctx context.Context, ch <-chan time.Time, name string, logger *slog.Logger, fn func()) {
	for {
		select {
		case <-ch:
			start := time.Now()
			fn()
			logger.Debug("Maintenance task ran", "task", name, "duration", time.Since(start))
		case <-ctx.Done():
			return
		}
	}
}

// --------------------------------------------------------------------------
// Task implementations
// --------------------------------------------------------------------------

// consistencySweep reports finished matches that were written without
// played=true, for example by a direct SQL edit that bypassed the API.
func consistencySweep(ctx context.Context, audit Auditor, logger *slog.Logger) int {
	n, err := audit.CountFinishedUnplayed(ctx)
	if err != nil {
		logger.Warn("Consistency sweep: failed", "error", err)
		return 0
	}
	if n > 0 {
		logger.Warn("Consistency sweep: finished matches excluded from standings",
			"count", n, "hint", "set played=true on these matches")
	}
	return n
}
