// Package fixture turns a team list into a dated, sequenced fixture list and
// describes the bulk insert that persists it. Nothing here performs I/O
// except Save, which runs a CreateMatchesCommand against a Writer.
package fixture

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/albapepper/leaguedesk/internal/league"
)

// --------------------------------------------------------------------------
// Types
// --------------------------------------------------------------------------

// Draft is a sequenced fixture with its kickoff assigned but not yet stored.
type Draft struct {
	Sequence   int         `json:"sequence"`
	HomeTeamID int         `json:"homeTeamId"`
	AwayTeamID int         `json:"awayTeamId"`
	HomeTeam   league.Team `json:"homeTeam"`
	AwayTeam   league.Team `json:"awayTeam"`
	MatchDate  time.Time   `json:"matchDate"`
	// Fallback is set when the slot policy ran out and MatchDate is the
	// generation time rather than a real slot.
	Fallback bool `json:"fallback,omitempty"`
}

// Options controls schedule generation. The zero value shuffles with a
// time-seeded source, dates placeholders from time.Now and discards logs.
type Options struct {
	Rand   *rand.Rand
	Now    func() time.Time
	Logger *slog.Logger
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// CreateMatchesCommand describes one bulk insert against the match store.
// Every row shares BatchID so a partial batch can be found and cleared.
type CreateMatchesCommand struct {
	BatchID uuid.UUID
	Rows    []league.NewMatch
}

// Len returns the number of rows the command inserts.
func (c CreateMatchesCommand) Len() int { return len(c.Rows) }

// SaveResult tracks the outcome of persisting a command.
type SaveResult struct {
	BatchID   string
	Attempted int
	Persisted int
	Duration  time.Duration
	Matches   []league.Match
}

// Summary returns a human-readable summary.
func (r *SaveResult) Summary() string {
	return fmt.Sprintf("batch=%s attempted=%d persisted=%d dur=%s",
		r.BatchID, r.Attempted, r.Persisted, r.Duration.Round(time.Millisecond))
}
