package fixture

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/albapepper/leaguedesk/internal/league"
)

func testTeams(n int) []league.Team {
	teams := make([]league.Team, n)
	for i := range teams {
		teams[i] = league.Team{ID: i + 1, Name: fmt.Sprintf("TIM%c", 'A'+i)}
	}
	return teams
}

func fixedOpts() Options {
	now := time.Date(2024, 3, 9, 15, 30, 0, 0, time.UTC)
	return Options{
		Rand: rand.New(rand.NewPCG(1, 2)),
		Now:  func() time.Time { return now },
	}
}

func TestGenerateSchedule(t *testing.T) {
	t.Run("insufficient teams", func(t *testing.T) {
		_, err := GenerateSchedule(testTeams(1), nil, fixedOpts())
		if !errors.Is(err, league.ErrInsufficientTeams) {
			t.Fatalf("error = %v, want ErrInsufficientTeams", err)
		}
	})

	t.Run("placeholder days", func(t *testing.T) {
		drafts, err := GenerateSchedule(testTeams(4), nil, fixedOpts())
		if err != nil {
			t.Fatalf("GenerateSchedule() error: %v", err)
		}
		if len(drafts) != 6 {
			t.Fatalf("got %d drafts, want 6", len(drafts))
		}
		for i, d := range drafts {
			want := time.Date(2024, 3, 9+i, 0, 0, 0, 0, time.UTC)
			if !d.MatchDate.Equal(want) {
				t.Errorf("draft %d date = %v, want %v", i, d.MatchDate, want)
			}
			if d.Sequence != i+1 || d.Fallback {
				t.Errorf("draft %d: sequence=%d fallback=%v", i, d.Sequence, d.Fallback)
			}
			if d.HomeTeam.ID != d.HomeTeamID || d.AwayTeam.ID != d.AwayTeamID {
				t.Errorf("draft %d: teams not denormalized: %+v", i, d)
			}
		}
	})

	t.Run("explicit slots with overflow", func(t *testing.T) {
		day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
		slots, err := KickoffSlots(day, []string{"13:00", "15:30"}, nil)
		if err != nil {
			t.Fatalf("KickoffSlots() error: %v", err)
		}
		opts := fixedOpts()
		drafts, err := GenerateSchedule(testTeams(3), slots, opts)
		if err != nil {
			t.Fatalf("GenerateSchedule() error: %v", err)
		}
		if !drafts[0].MatchDate.Equal(slots[0]) || !drafts[1].MatchDate.Equal(slots[1]) {
			t.Errorf("slots not assigned in order: %v, %v", drafts[0].MatchDate, drafts[1].MatchDate)
		}
		if !drafts[2].Fallback || !drafts[2].MatchDate.Equal(opts.Now()) {
			t.Errorf("overflow draft = %+v, want fallback at now", drafts[2])
		}
	})

	t.Run("seeded generation is reproducible", func(t *testing.T) {
		a, _ := GenerateSchedule(testTeams(6), nil, fixedOpts())
		b, _ := GenerateSchedule(testTeams(6), nil, fixedOpts())
		for i := range a {
			if a[i].HomeTeamID != b[i].HomeTeamID || a[i].AwayTeamID != b[i].AwayTeamID {
				t.Fatalf("draft %d differs", i)
			}
		}
	})
}

func TestKickoffSlots(t *testing.T) {
	loc := time.FixedZone("WIB", 7*3600)
	day := time.Date(2024, 3, 10, 22, 0, 0, 0, time.UTC)

	slots, err := KickoffSlots(day, []string{"09:00", " 19:45 "}, loc)
	if err != nil {
		t.Fatalf("KickoffSlots() error: %v", err)
	}
	want := time.Date(2024, 3, 10, 19, 45, 0, 0, loc)
	if !slots[1].Equal(want) {
		t.Errorf("slot = %v, want %v", slots[1], want)
	}

	if _, err := KickoffSlots(day, []string{"7pm"}, loc); err == nil {
		t.Error("expected error for malformed kickoff time")
	}
}

func TestMaterialize(t *testing.T) {
	drafts, _ := GenerateSchedule(testTeams(4), nil, fixedOpts())
	cmd := Materialize(drafts)

	if cmd.BatchID == uuid.Nil {
		t.Error("batch id not assigned")
	}
	if cmd.Len() != len(drafts) {
		t.Fatalf("rows = %d, want %d", cmd.Len(), len(drafts))
	}
	for i, row := range cmd.Rows {
		if row.Status != league.StatusScheduled || row.Played || row.HomeScore != 0 || row.AwayScore != 0 {
			t.Errorf("row %d not a fresh scheduled match: %+v", i, row)
		}
		if row.HomeTeamID != drafts[i].HomeTeamID || !row.MatchDate.Equal(drafts[i].MatchDate) {
			t.Errorf("row %d does not follow draft order", i)
		}
	}
}

type fakeWriter struct {
	keep int
	err  error
}

func (w *fakeWriter) CreateMatches(_ context.Context, batchID uuid.UUID, rows []league.NewMatch) ([]league.Match, error) {
	n := len(rows)
	if w.keep >= 0 && w.keep < n {
		n = w.keep
	}
	out := make([]league.Match, n)
	for i := range out {
		out[i] = league.Match{ID: i + 1, HomeTeamID: rows[i].HomeTeamID, AwayTeamID: rows[i].AwayTeamID, BatchID: batchID.String()}
	}
	return out, w.err
}

func TestSave(t *testing.T) {
	drafts, _ := GenerateSchedule(testTeams(4), nil, fixedOpts())
	cmd := Materialize(drafts)

	t.Run("all rows persisted", func(t *testing.T) {
		res, err := Save(context.Background(), &fakeWriter{keep: -1}, cmd)
		if err != nil {
			t.Fatalf("Save() error: %v", err)
		}
		if res.Persisted != 6 || len(res.Matches) != 6 {
			t.Errorf("result = %s", res.Summary())
		}
	})

	t.Run("short insert", func(t *testing.T) {
		_, err := Save(context.Background(), &fakeWriter{keep: 4}, cmd)
		var pe *league.PartialPersistenceError
		if !errors.As(err, &pe) {
			t.Fatalf("error = %v, want PartialPersistenceError", err)
		}
		if pe.BatchID != cmd.BatchID.String() || pe.Attempted != 6 || pe.Persisted != 4 {
			t.Errorf("error fields = %+v", pe)
		}
	})

	t.Run("store error after some rows", func(t *testing.T) {
		boom := errors.New("connection reset")
		res, err := Save(context.Background(), &fakeWriter{keep: 2, err: boom}, cmd)
		if !errors.Is(err, league.ErrPartialPersistence) || !errors.Is(err, boom) {
			t.Fatalf("error = %v", err)
		}
		if res.Persisted != 2 {
			t.Errorf("persisted = %d, want 2", res.Persisted)
		}
	})

	t.Run("store error with nothing stored", func(t *testing.T) {
		fk := fmt.Errorf("insert batch: %w", league.ErrDanglingReference)
		res, err := Save(context.Background(), &fakeWriter{keep: 0, err: fk}, cmd)
		if !errors.Is(err, league.ErrDanglingReference) {
			t.Fatalf("error = %v, want ErrDanglingReference", err)
		}
		if errors.Is(err, league.ErrPartialPersistence) {
			t.Errorf("nothing was stored, got %v", err)
		}
		if res.Persisted != 0 {
			t.Errorf("persisted = %d", res.Persisted)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := Save(ctx, &fakeWriter{keep: 0, err: ctx.Err()}, cmd)
		if !errors.Is(err, context.Canceled) || errors.Is(err, league.ErrPartialPersistence) {
			t.Fatalf("error = %v, want context.Canceled only", err)
		}
	})
}
