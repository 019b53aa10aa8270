// Package standings folds played matches into a ranked league table.
//
// The table is a pure function of the team set and the played match set. It
// is never patched incrementally.
package standings

import (
	"cmp"
	"io"
	"log/slog"
	"slices"

	"github.com/albapepper/leaguedesk/internal/league"
)

const formLength = 5

const (
	pointsWin  = 3
	pointsDraw = 1
)

// Outcome letters used in Last5.
const (
	Win  = "W"
	Draw = "D"
	Loss = "L"
)

// Row is one team's aggregated record.
type Row struct {
	TeamID   int      `json:"teamId"`
	TeamName string   `json:"teamName"`
	Played   int      `json:"played"`
	Win      int      `json:"win"`
	Draw     int      `json:"draw"`
	Loss     int      `json:"loss"`
	GF       int      `json:"gf"`
	GA       int      `json:"ga"`
	GD       int      `json:"gd"`
	Points   int      `json:"points"`
	Last5    []string `json:"last5"`
}

func (r *Row) record(gf, ga int) {
	r.Played++
	r.GF += gf
	r.GA += ga
	r.GD = r.GF - r.GA

	var outcome string
	switch {
	case gf > ga:
		r.Win++
		r.Points += pointsWin
		outcome = Win
	case gf < ga:
		r.Loss++
		outcome = Loss
	default:
		r.Draw++
		r.Points += pointsDraw
		outcome = Draw
	}

	r.Last5 = append(r.Last5, outcome)
	if len(r.Last5) > formLength {
		r.Last5 = r.Last5[len(r.Last5)-formLength:]
	}
}

// Compute builds the ranked table. Matches are folded in ascending id order
// whatever order they arrive in, so Last5 is stable. A match that refers to
// a team not in teams is skipped and logged.
//
// Ranking: points, goal difference, goals for (all descending), then name
// ascending. Teams that have not played sit below every team that has.
func Compute(teams []league.Team, matches []league.MatchResult, logger *slog.Logger) []Row {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	rows := make([]Row, len(teams))
	index := make(map[int]*Row, len(teams))
	for i, t := range teams {
		rows[i] = Row{TeamID: t.ID, TeamName: t.Name, Last5: []string{}}
		index[t.ID] = &rows[i]
	}

	ordered := slices.Clone(matches)
	slices.SortStableFunc(ordered, func(a, b league.MatchResult) int {
		return cmp.Compare(a.ID, b.ID)
	})

	for _, m := range ordered {
		home, okHome := index[m.HomeTeamID]
		away, okAway := index[m.AwayTeamID]
		if !okHome || !okAway {
			logger.Warn("Skipping match",
				"match_id", m.ID,
				"home_team_id", m.HomeTeamID,
				"away_team_id", m.AwayTeamID,
				"error", league.ErrDanglingReference)
			continue
		}
		home.record(m.HomeScore, m.AwayScore)
		away.record(m.AwayScore, m.HomeScore)
	}

	slices.SortFunc(rows, compareRows)
	return rows
}

func compareRows(a, b Row) int {
	if (a.Played == 0) != (b.Played == 0) {
		if a.Played == 0 {
			return 1
		}
		return -1
	}
	if c := cmp.Compare(b.Points, a.Points); c != 0 {
		return c
	}
	if c := cmp.Compare(b.GD, a.GD); c != 0 {
		return c
	}
	if c := cmp.Compare(b.GF, a.GF); c != 0 {
		return c
	}
	if c := cmp.Compare(a.TeamName, b.TeamName); c != 0 {
		return c
	}
	return cmp.Compare(a.TeamID, b.TeamID)
}
