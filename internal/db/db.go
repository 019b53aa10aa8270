// Package db provides a pgxpool-based connection pool with prepared statement
// registration, health checking and schema migration.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/albapepper/leaguedesk/internal/config"
)

// Pool wraps pgxpool.Pool with application-specific helpers.
type Pool struct {
	*pgxpool.Pool
}

// New creates and validates a new connection pool. The schema must already
// exist: statements are prepared on every new connection.
func New(ctx context.Context, cfg *config.Config) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MinConns = int32(cfg.DBPoolMinConns)
	poolCfg.MaxConns = int32(cfg.DBPoolMaxConns)
	poolCfg.MaxConnLifetime = cfg.DBPoolMaxLife
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return registerPreparedStatements(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	// Verify connectivity
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Pool{Pool: pool}, nil
}

// HealthCheck runs a trivial query to verify the database is reachable.
func (p *Pool) HealthCheck(ctx context.Context) error {
	var n int
	return p.QueryRow(ctx, "health_check").Scan(&n)
}

const matchColumns = `
	m.id, m.home_team_id, m.away_team_id, m.home_score, m.away_score,
	m.status, m.played, m.match_date, m.batch_id::text`

// Statements maps prepared statement names to SQL. Exported so the store
// tests can assert every name they use is registered.
var Statements = map[string]string{
	// Health
	"health_check": "SELECT 1",

	// Teams
	"teams_all":   "SELECT id, name, city FROM teams ORDER BY id",
	"team_by_id":  "SELECT id, name, city FROM teams WHERE id = $1",
	"team_insert": "INSERT INTO teams (name, city) VALUES ($1, $2) RETURNING id, name, city",
	"team_upsert": `INSERT INTO teams (name, city) VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET city = EXCLUDED.city
		RETURNING id, name, city`,
	"team_update": "UPDATE teams SET name = $2, city = $3 WHERE id = $1 RETURNING id, name, city",
	"team_delete": "DELETE FROM teams WHERE id = $1",

	// Matches: snapshot reads
	"matches_all": `SELECT` + matchColumns + `,
			h.id, h.name, h.city, a.id, a.name, a.city
		FROM matches m
		JOIN teams h ON h.id = m.home_team_id
		JOIN teams a ON a.id = m.away_team_id
		ORDER BY m.match_date, m.id`,
	"matches_played": `SELECT id, home_team_id, away_team_id, home_score, away_score
		FROM matches WHERE played ORDER BY id`,
	"match_for_update": `SELECT` + matchColumns + ` FROM matches m WHERE m.id = $1 FOR UPDATE`,

	// Matches: writes
	"matches_insert_batch": `INSERT INTO matches
			(home_team_id, away_team_id, home_score, away_score, status, played, match_date, batch_id)
		SELECT r.home, r.away, 0, 0, 'scheduled', false, r.kickoff, $4::uuid
		FROM unnest($1::int[], $2::int[], $3::timestamptz[]) WITH ORDINALITY AS r(home, away, kickoff, ord)
		ORDER BY r.ord
		RETURNING id, home_team_id, away_team_id, home_score, away_score,
			status, played, match_date, batch_id::text`,
	"match_update_score": `UPDATE matches
		SET home_score = $2, away_score = $3, status = $4, played = $5, updated_at = NOW()
		WHERE id = $1`,
	"matches_delete_batch": "DELETE FROM matches WHERE batch_id = $1",
	"matches_delete_team":  "DELETE FROM matches WHERE home_team_id = $1 OR away_team_id = $1",
	"match_batches": `SELECT batch_id::text, COUNT(*), MIN(match_date), MAX(match_date)
		FROM matches GROUP BY batch_id ORDER BY MIN(created_at)`,

	// Maintenance
	"count_finished_unplayed": "SELECT COUNT(*) FROM matches WHERE status = 'finished' AND NOT played",
}

// registerPreparedStatements registers all statements the API and CLI use.
func registerPreparedStatements(ctx context.Context, conn *pgx.Conn) error {
	for name, sql := range Statements {
		if _, err := conn.Prepare(ctx, name, sql); err != nil {
			return fmt.Errorf("prepare %q: %w", name, err)
		}
	}
	return nil
}
