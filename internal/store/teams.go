package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/albapepper/leaguedesk/internal/league"
)

// Teams returns every registered team in id order.
func (s *Store) Teams(ctx context.Context) ([]league.Team, error) {
	rows, err := s.pool.Query(ctx, "teams_all")
	if err != nil {
		return nil, fmt.Errorf("query teams: %w", err)
	}
	defer rows.Close()

	var teams []league.Team
	for rows.Next() {
		var t league.Team
		if err := rows.Scan(&t.ID, &t.Name, &t.City); err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

// Team returns a single team or league.ErrNotFound.
func (s *Store) Team(ctx context.Context, id int) (league.Team, error) {
	var t league.Team
	err := s.pool.QueryRow(ctx, "team_by_id", id).Scan(&t.ID, &t.Name, &t.City)
	if err != nil {
		return t, fmt.Errorf("get team %d: %w", id, mapError(err))
	}
	return t, nil
}

// CreateTeam registers a team. Names are unique.
func (s *Store) CreateTeam(ctx context.Context, name string, city *string) (league.Team, error) {
	return s.writeTeam(ctx, "team_insert", name, city)
}

// UpsertTeam creates the team or refreshes its city when the name exists.
func (s *Store) UpsertTeam(ctx context.Context, name string, city *string) (league.Team, error) {
	return s.writeTeam(ctx, "team_upsert", name, city)
}

func (s *Store) writeTeam(ctx context.Context, stmt, name string, city *string) (league.Team, error) {
	var t league.Team
	name = strings.TrimSpace(name)
	if name == "" {
		return t, fmt.Errorf("team name is required")
	}
	err := s.pool.QueryRow(ctx, stmt, name, normalizeCity(city)).Scan(&t.ID, &t.Name, &t.City)
	if err != nil {
		return t, fmt.Errorf("save team %q: %w", name, mapError(err))
	}
	return t, nil
}

// UpdateTeam edits name and city. Id is immutable.
func (s *Store) UpdateTeam(ctx context.Context, id int, name string, city *string) (league.Team, error) {
	var t league.Team
	name = strings.TrimSpace(name)
	if name == "" {
		return t, fmt.Errorf("team name is required")
	}
	err := s.pool.QueryRow(ctx, "team_update", id, name, normalizeCity(city)).Scan(&t.ID, &t.Name, &t.City)
	if err != nil {
		return t, fmt.Errorf("update team %d: %w", id, mapError(err))
	}
	return t, nil
}

// DeleteTeam removes the team's matches and then the team in one
// transaction, returning how many matches went with it.
func (s *Store) DeleteTeam(ctx context.Context, id int) (int64, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin delete team: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, "matches_delete_team", id)
	if err != nil {
		return 0, fmt.Errorf("delete matches of team %d: %w", id, err)
	}
	removed := tag.RowsAffected()

	tag, err = tx.Exec(ctx, "team_delete", id)
	if err != nil {
		return 0, fmt.Errorf("delete team %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return 0, fmt.Errorf("delete team %d: %w", id, league.ErrNotFound)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit delete team %d: %w", id, err)
	}
	return removed, nil
}
