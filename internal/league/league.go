// Package league holds the model shared by the scheduler, the standings
// aggregator and the store: teams, matches, and the match state machine.
package league

import "time"

// Team is a competing club. Name is unique across the league.
type Team struct {
	ID   int     `json:"id"`
	Name string  `json:"name"`
	City *string `json:"city"`
}

// Status is the presentational lifecycle of a match.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusLive      Status = "live"
	StatusFinished  Status = "finished"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusLive, StatusFinished:
		return true
	}
	return false
}

func (s Status) rank() int {
	switch s {
	case StatusLive:
		return 1
	case StatusFinished:
		return 2
	default:
		return 0
	}
}

// Match is the authoritative record kept by the match store.
type Match struct {
	ID         int       `json:"id"`
	HomeTeamID int       `json:"homeTeamId"`
	AwayTeamID int       `json:"awayTeamId"`
	HomeScore  int       `json:"homeScore"`
	AwayScore  int       `json:"awayScore"`
	Status     Status    `json:"status"`
	Played     bool      `json:"played"`
	MatchDate  time.Time `json:"matchDate"`
	BatchID    string    `json:"batchId,omitempty"`
	HomeTeam   *Team     `json:"homeTeam,omitempty"`
	AwayTeam   *Team     `json:"awayTeam,omitempty"`
}

// Result projects the fields the standings aggregator consumes.
func (m Match) Result() MatchResult {
	return MatchResult{
		ID:         m.ID,
		HomeTeamID: m.HomeTeamID,
		AwayTeamID: m.AwayTeamID,
		HomeScore:  m.HomeScore,
		AwayScore:  m.AwayScore,
	}
}

// MatchResult is a played match as seen by the standings aggregator.
type MatchResult struct {
	ID         int `json:"id"`
	HomeTeamID int `json:"homeTeamId"`
	AwayTeamID int `json:"awayTeamId"`
	HomeScore  int `json:"homeScore"`
	AwayScore  int `json:"awayScore"`
}

// NewMatch is a row of a bulk insert produced by the fixture materializer.
type NewMatch struct {
	HomeTeamID int
	AwayTeamID int
	HomeScore  int
	AwayScore  int
	Status     Status
	Played     bool
	MatchDate  time.Time
}
