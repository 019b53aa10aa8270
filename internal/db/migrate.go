package db

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"
)

// migrations returns the schema steps, run in order on every Migrate call.
// Every step must stay idempotent. channel is the NOTIFY channel the
// change-feed triggers publish on.
func migrations(channel string) []string {
	ch := "'" + strings.ReplaceAll(channel, "'", "''") + "'"
	return []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto`,

		`CREATE TABLE IF NOT EXISTS teams (
			id         SERIAL PRIMARY KEY,
			name       TEXT NOT NULL UNIQUE CHECK (name <> ''),
			city       TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS matches (
			id           SERIAL PRIMARY KEY,
			home_team_id INT NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
			away_team_id INT NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
			home_score   INT NOT NULL DEFAULT 0 CHECK (home_score >= 0),
			away_score   INT NOT NULL DEFAULT 0 CHECK (away_score >= 0),
			status       TEXT NOT NULL DEFAULT 'scheduled'
			             CHECK (status IN ('scheduled', 'live', 'finished')),
			played       BOOLEAN NOT NULL DEFAULT false,
			match_date   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			batch_id     UUID NOT NULL DEFAULT gen_random_uuid(),
			created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CHECK (home_team_id <> away_team_id)
		)`,

		`CREATE INDEX IF NOT EXISTS matches_played_idx ON matches (id) WHERE played`,
		`CREATE INDEX IF NOT EXISTS matches_batch_idx ON matches (batch_id)`,
		`CREATE INDEX IF NOT EXISTS matches_date_idx ON matches (match_date, id)`,

		// Row-level change feed. The payload is advisory; consumers re-snapshot.
		`CREATE OR REPLACE FUNCTION notify_league_changed() RETURNS trigger AS $$
		DECLARE
			row_id INT;
		BEGIN
			IF TG_OP = 'DELETE' THEN
				row_id := OLD.id;
			ELSE
				row_id := NEW.id;
			END IF;
			PERFORM pg_notify(TG_ARGV[1], json_build_object(
				'entity', TG_ARGV[0],
				'op', lower(TG_OP),
				'id', row_id,
				'ts', extract(epoch FROM clock_timestamp())::bigint
			)::text);
			RETURN NULL;
		END;
		$$ LANGUAGE plpgsql`,

		`DROP TRIGGER IF EXISTS teams_changed ON teams`,
		`CREATE TRIGGER teams_changed AFTER INSERT OR UPDATE OR DELETE ON teams
			FOR EACH ROW EXECUTE FUNCTION notify_league_changed('team', ` + ch + `)`,
		`DROP TRIGGER IF EXISTS matches_changed ON matches`,
		`CREATE TRIGGER matches_changed AFTER INSERT OR UPDATE OR DELETE ON matches
			FOR EACH ROW EXECUTE FUNCTION notify_league_changed('match', ` + ch + `)`,
	}
}

// Migrate creates tables, indexes and change-feed triggers. It opens its own
// connection because pooled connections prepare statements against tables
// that may not exist yet.
func Migrate(ctx context.Context, dbURL, channel string, logger *slog.Logger) error {
	steps := migrations(channel)

	conn, err := pgx.Connect(ctx, dbURL)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close(context.Background())

	tx, err := conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin migration: %w", err)
	}
	defer tx.Rollback(ctx)

	for i, q := range steps {
		if _, err := tx.Exec(ctx, q); err != nil {
			return fmt.Errorf("migrating step %d: %w", i+1, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit migration: %w", err)
	}

	logger.Info("Schema migrated", "steps", len(steps), "channel", channel)
	return nil
}
