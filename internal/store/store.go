// Package store is the Postgres-backed match result store: team registry
// reads and writes, the snapshots the standings tracker consumes, the atomic
// fixture batch insert and the score write boundary.
package store

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/albapepper/leaguedesk/internal/league"
)

// Postgres error codes the store translates into league sentinels.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
	checkViolation      = "23514"
)

// Store runs the prepared statements registered by package db. It is safe
// for concurrent use. Concurrent writes to one match row are serialized by
// Postgres and the last write wins.
type Store struct {
	pool *pgxpool.Pool
}

// New wraps an open pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Batch summarizes one generated fixture batch.
type Batch struct {
	ID      string    `json:"batchId"`
	Matches int       `json:"matches"`
	FirstAt time.Time `json:"firstMatchDate"`
	LastAt  time.Time `json:"lastMatchDate"`
}

// mapError turns constraint violations into league sentinels so callers can
// branch with errors.Is.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return league.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return fmt.Errorf("%w: %s", league.ErrDuplicateName, pgErr.Detail)
		case foreignKeyViolation:
			return fmt.Errorf("%w: %s", league.ErrDanglingReference, pgErr.Detail)
		case checkViolation:
			return fmt.Errorf("%w: %s", league.ErrInvalidScore, pgErr.ConstraintName)
		}
	}
	return err
}

// normalizeCity stores blank cities as NULL.
func normalizeCity(city *string) *string {
	if city == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*city)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
