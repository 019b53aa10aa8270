package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/albapepper/leaguedesk/internal/league"
)

// Matches returns every match with both teams attached, ordered by kickoff.
func (s *Store) Matches(ctx context.Context) ([]league.Match, error) {
	rows, err := s.pool.Query(ctx, "matches_all")
	if err != nil {
		return nil, fmt.Errorf("query matches: %w", err)
	}
	defer rows.Close()

	var matches []league.Match
	for rows.Next() {
		var m league.Match
		home, away := &league.Team{}, &league.Team{}
		if err := rows.Scan(
			&m.ID, &m.HomeTeamID, &m.AwayTeamID, &m.HomeScore, &m.AwayScore,
			&m.Status, &m.Played, &m.MatchDate, &m.BatchID,
			&home.ID, &home.Name, &home.City, &away.ID, &away.Name, &away.City,
		); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		m.HomeTeam, m.AwayTeam = home, away
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// PlayedMatches is the standings snapshot: played matches in id order.
func (s *Store) PlayedMatches(ctx context.Context) ([]league.MatchResult, error) {
	rows, err := s.pool.Query(ctx, "matches_played")
	if err != nil {
		return nil, fmt.Errorf("query played matches: %w", err)
	}
	defer rows.Close()

	var results []league.MatchResult
	for rows.Next() {
		var r league.MatchResult
		if err := rows.Scan(&r.ID, &r.HomeTeamID, &r.AwayTeamID, &r.HomeScore, &r.AwayScore); err != nil {
			return nil, fmt.Errorf("scan played match: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// CreateMatches inserts a whole fixture batch with a single statement, so
// either every row is stored or none is.
func (s *Store) CreateMatches(ctx context.Context, batchID uuid.UUID, rows []league.NewMatch) ([]league.Match, error) {
	home := make([]int32, len(rows))
	away := make([]int32, len(rows))
	kickoff := make([]time.Time, len(rows))
	for i, r := range rows {
		home[i] = int32(r.HomeTeamID)
		away[i] = int32(r.AwayTeamID)
		kickoff[i] = r.MatchDate
	}

	result, err := s.pool.Query(ctx, "matches_insert_batch", home, away, kickoff, batchID.String())
	if err != nil {
		return nil, fmt.Errorf("insert batch %s: %w", batchID, mapError(err))
	}
	defer result.Close()

	created := make([]league.Match, 0, len(rows))
	for result.Next() {
		var m league.Match
		if err := result.Scan(
			&m.ID, &m.HomeTeamID, &m.AwayTeamID, &m.HomeScore, &m.AwayScore,
			&m.Status, &m.Played, &m.MatchDate, &m.BatchID,
		); err != nil {
			return created, fmt.Errorf("scan inserted match: %w", err)
		}
		created = append(created, m)
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("insert batch %s: %w", batchID, mapError(err))
	}
	return created, nil
}

// DeleteBatch removes every match generated under batchID.
func (s *Store) DeleteBatch(ctx context.Context, batchID uuid.UUID) (int64, error) {
	tag, err := s.pool.Exec(ctx, "matches_delete_batch", batchID.String())
	if err != nil {
		return 0, fmt.Errorf("delete batch %s: %w", batchID, err)
	}
	return tag.RowsAffected(), nil
}

// Batches lists generated fixture batches, oldest first.
func (s *Store) Batches(ctx context.Context) ([]Batch, error) {
	rows, err := s.pool.Query(ctx, "match_batches")
	if err != nil {
		return nil, fmt.Errorf("query batches: %w", err)
	}
	defer rows.Close()

	var batches []Batch
	for rows.Next() {
		var b Batch
		if err := rows.Scan(&b.ID, &b.Matches, &b.FirstAt, &b.LastAt); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		batches = append(batches, b)
	}
	return batches, rows.Err()
}

// UpdateScore is the write boundary for the match state machine. The row is
// locked, the update validated against its current state, and written back.
func (s *Store) UpdateScore(ctx context.Context, id int, u league.ScoreUpdate) (league.Match, error) {
	var next league.Match

	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		var cur league.Match
		if err := tx.QueryRow(ctx, "match_for_update", id).Scan(
			&cur.ID, &cur.HomeTeamID, &cur.AwayTeamID, &cur.HomeScore, &cur.AwayScore,
			&cur.Status, &cur.Played, &cur.MatchDate, &cur.BatchID,
		); err != nil {
			return mapError(err)
		}

		var err error
		next, err = u.Apply(cur)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, "match_update_score",
			next.ID, next.HomeScore, next.AwayScore, string(next.Status), next.Played)
		return mapError(err)
	})
	if err != nil {
		return next, fmt.Errorf("update match %d: %w", id, err)
	}
	return next, nil
}

// CountFinishedUnplayed counts finished matches the standings ignore because
// played was never set.
func (s *Store) CountFinishedUnplayed(ctx context.Context) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx, "count_finished_unplayed").Scan(&n); err != nil {
		return 0, fmt.Errorf("count finished unplayed: %w", err)
	}
	return n, nil
}
