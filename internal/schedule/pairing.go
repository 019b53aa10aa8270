// Package schedule builds the single round robin pairing set and orders it
// so that, where the remaining pairs allow it, no team plays in two
// consecutive fixtures.
package schedule

import (
	"fmt"

	"github.com/albapepper/leaguedesk/internal/league"
)

// Fixture is an unordered pairing with the home/away orientation chosen by
// generation order.
type Fixture struct {
	HomeTeamID int `json:"homeTeamId"`
	AwayTeamID int `json:"awayTeamId"`
}

// Involves reports whether the team plays in f.
func (f Fixture) Involves(teamID int) bool {
	return f.HomeTeamID == teamID || f.AwayTeamID == teamID
}

// Shares reports whether f and other have a team in common.
func (f Fixture) Shares(other Fixture) bool {
	return f.Involves(other.HomeTeamID) || f.Involves(other.AwayTeamID)
}

// Pairs returns every (i, j) pairing with i < j in team order, which is
// N*(N-1)/2 fixtures with no self pairs.
func Pairs(teams []league.Team) ([]Fixture, error) {
	if len(teams) < 2 {
		return nil, fmt.Errorf("%w (found %d)", league.ErrInsufficientTeams, len(teams))
	}

	pairs := make([]Fixture, 0, len(teams)*(len(teams)-1)/2)
	for i := 0; i < len(teams); i++ {
		for j := i + 1; j < len(teams); j++ {
			pairs = append(pairs, Fixture{
				HomeTeamID: teams[i].ID,
				AwayTeamID: teams[j].ID,
			})
		}
	}
	return pairs, nil
}
