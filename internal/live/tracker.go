// Package live keeps the current standings table in step with the match
// store. Every invalidation marks the table stale and the next read, or the
// feed loop, rebuilds it from a fresh snapshot.
package live

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/albapepper/leaguedesk/internal/feed"
	"github.com/albapepper/leaguedesk/internal/league"
	"github.com/albapepper/leaguedesk/internal/standings"
)

// Snapshotter reads the two snapshots standings are computed from.
type Snapshotter interface {
	Teams(ctx context.Context) ([]league.Team, error)
	PlayedMatches(ctx context.Context) ([]league.MatchResult, error)
}

// Table is a computed standings table and the generation its snapshot was
// taken at.
type Table struct {
	Rows       []standings.Row `json:"rows"`
	Generation uint64          `json:"generation"`
	ComputedAt time.Time       `json:"computedAt"`
}

// Tracker caches the latest table. It is safe for concurrent use.
type Tracker struct {
	src    Snapshotter
	logger *slog.Logger
	now    func() time.Time

	mu        sync.Mutex
	gen       uint64
	table     Table
	hasTable  bool
	listeners []func(Table)
}

// NewTracker returns a tracker with no table; the first read computes one.
func NewTracker(src Snapshotter, logger *slog.Logger) *Tracker {
	return &Tracker{src: src, logger: logger, now: time.Now, gen: 1}
}

// OnRefresh registers fn to receive every table the feed loop computes.
func (t *Tracker) OnRefresh(fn func(Table)) {
	t.mu.Lock()
	t.listeners = append(t.listeners, fn)
	t.mu.Unlock()
}

// Invalidate marks the cached table stale.
func (t *Tracker) Invalidate() {
	t.mu.Lock()
	t.gen++
	t.mu.Unlock()
}

// Stale reports whether the next read will recompute.
func (t *Tracker) Stale() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.staleLocked()
}

func (t *Tracker) staleLocked() bool {
	return !t.hasTable || t.table.Generation != t.gen
}

// Current returns the cached table without recomputing, and whether one
// exists. It may be stale.
func (t *Tracker) Current() (Table, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.table, t.hasTable
}

// Standings returns the cached table if it is current, otherwise takes a
// new snapshot and recomputes. A table whose snapshot began before the
// latest invalidation is cached for display but stays stale.
func (t *Tracker) Standings(ctx context.Context) (Table, error) {
	t.mu.Lock()
	if !t.staleLocked() {
		table := t.table
		t.mu.Unlock()
		return table, nil
	}
	startGen := t.gen
	t.mu.Unlock()

	teams, err := t.src.Teams(ctx)
	if err != nil {
		return Table{}, fmt.Errorf("snapshot teams: %w", err)
	}
	matches, err := t.src.PlayedMatches(ctx)
	if err != nil {
		return Table{}, fmt.Errorf("snapshot played matches: %w", err)
	}

	table := Table{
		Rows:       standings.Compute(teams, matches, t.logger),
		Generation: startGen,
		ComputedAt: t.now(),
	}

	t.mu.Lock()
	// A concurrent read may have stored a newer snapshot already.
	if !t.hasTable || table.Generation >= t.table.Generation {
		t.table = table
		t.hasTable = true
	}
	t.mu.Unlock()

	return table, nil
}

// Run invalidates and recomputes on every signal until ctx is cancelled or
// signals closes, publishing each table to the OnRefresh listeners. It
// computes once on entry. Intended to be called with `go`.
func (t *Tracker) Run(ctx context.Context, signals <-chan feed.Signal) {
	t.refresh(ctx, "startup")

	for {
		select {
		case <-ctx.Done():
			t.logger.Info("Standings tracker stopped (context cancelled)")
			return
		case sig, ok := <-signals:
			if !ok {
				return
			}
			t.Invalidate()
			t.refresh(ctx, sig.Source)
		}
	}
}

func (t *Tracker) refresh(ctx context.Context, source string) {
	start := time.Now()
	table, err := t.Standings(ctx)
	if err != nil {
		if ctx.Err() == nil {
			t.logger.Error("Standings refresh failed", "source", source, "error", err)
		}
		return
	}

	t.mu.Lock()
	listeners := slices.Clone(t.listeners)
	t.mu.Unlock()

	for _, fn := range listeners {
		fn(table)
	}
	t.logger.Debug("Standings refreshed",
		"source", source,
		"teams", len(table.Rows),
		"generation", table.Generation,
		"duration", time.Since(start))
}
