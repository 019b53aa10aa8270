package fixture

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/albapepper/leaguedesk/internal/league"
	"github.com/albapepper/leaguedesk/internal/schedule"
)

// GenerateSchedule pairs every team with every other team once, orders the
// pairs so consecutive fixtures avoid sharing a team where possible, and
// assigns kickoffs.
//
// Slot i goes to fixture i. With no slots, fixture i is dated at local
// midnight i days after Now. Fixtures beyond the last supplied slot are
// dated Now and flagged as Fallback.
func GenerateSchedule(teams []league.Team, slots []time.Time, opts Options) ([]Draft, error) {
	pairs, err := schedule.Pairs(teams)
	if err != nil {
		return nil, err
	}

	logger := opts.logger()
	seq := schedule.Sequence(pairs, opts.Rand)
	if forced := schedule.ForcedAdjacencies(seq); len(forced) > 0 {
		logger.Warn("Adjacency constraint relaxed",
			"positions", forced, "fixtures", len(seq), "teams", len(teams))
	}

	byID := make(map[int]league.Team, len(teams))
	for _, t := range teams {
		byID[t.ID] = t
	}

	now := opts.now()
	drafts := make([]Draft, len(seq))
	overflow := 0

	for i, f := range seq {
		d := Draft{
			Sequence:   i + 1,
			HomeTeamID: f.HomeTeamID,
			AwayTeamID: f.AwayTeamID,
			HomeTeam:   byID[f.HomeTeamID],
			AwayTeam:   byID[f.AwayTeamID],
		}

		switch {
		case len(slots) == 0:
			d.MatchDate = time.Date(now.Year(), now.Month(), now.Day()+i, 0, 0, 0, 0, now.Location())
		case i < len(slots):
			d.MatchDate = slots[i]
		default:
			d.MatchDate = now
			d.Fallback = true
			overflow++
		}
		drafts[i] = d
	}

	if overflow > 0 {
		logger.Warn("Slot policy exhausted, using generation time",
			"slots", len(slots), "fixtures", len(drafts), "fallback", overflow)
	}
	return drafts, nil
}

// KickoffSlots builds a single-day slot list from "HH:MM" strings, in the
// order given. A nil loc uses day's location.
func KickoffSlots(day time.Time, times []string, loc *time.Location) ([]time.Time, error) {
	if loc == nil {
		loc = day.Location()
	}
	y, m, d := day.Date()

	slots := make([]time.Time, 0, len(times))
	for _, raw := range times {
		hm, err := time.Parse("15:04", strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("parse kickoff time %q: %w", raw, err)
		}
		slots = append(slots, time.Date(y, m, d, hm.Hour(), hm.Minute(), 0, 0, loc))
	}
	return slots, nil
}

// Materialize turns drafts into a bulk insert of scheduled, unplayed matches
// with zero scores under a fresh batch id.
func Materialize(drafts []Draft) CreateMatchesCommand {
	cmd := CreateMatchesCommand{
		BatchID: uuid.New(),
		Rows:    make([]league.NewMatch, len(drafts)),
	}
	for i, d := range drafts {
		cmd.Rows[i] = league.NewMatch{
			HomeTeamID: d.HomeTeamID,
			AwayTeamID: d.AwayTeamID,
			Status:     league.StatusScheduled,
			MatchDate:  d.MatchDate,
		}
	}
	return cmd
}
