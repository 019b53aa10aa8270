package league

import (
	"errors"
	"testing"
)

func boolPtr(b bool) *bool { return &b }

func TestScoreUpdateApply(t *testing.T) {
	scheduled := Match{ID: 1, HomeTeamID: 1, AwayTeamID: 2, Status: StatusScheduled}

	t.Run("finished forces played", func(t *testing.T) {
		got, err := ScoreUpdate{HomeScore: 2, AwayScore: 1, Status: StatusFinished}.Apply(scheduled)
		if err != nil {
			t.Fatalf("Apply() error: %v", err)
		}
		if !got.Played {
			t.Error("finished match should be played")
		}
		if got.HomeScore != 2 || got.AwayScore != 1 {
			t.Errorf("score = %d-%d, want 2-1", got.HomeScore, got.AwayScore)
		}
	})

	t.Run("finished with played=false rejected", func(t *testing.T) {
		_, err := ScoreUpdate{Status: StatusFinished, Played: boolPtr(false)}.Apply(scheduled)
		if !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("error = %v, want ErrInvalidTransition", err)
		}
	})

	t.Run("live can be skipped", func(t *testing.T) {
		if err := CheckTransition(StatusScheduled, StatusFinished); err != nil {
			t.Errorf("scheduled -> finished: %v", err)
		}
	})

	t.Run("live keeps played flag when omitted", func(t *testing.T) {
		got, err := ScoreUpdate{HomeScore: 1, Status: StatusLive}.Apply(scheduled)
		if err != nil {
			t.Fatalf("Apply() error: %v", err)
		}
		if got.Played {
			t.Error("live update without played flag should not mark played")
		}
	})

	t.Run("operator may mark live match played", func(t *testing.T) {
		got, err := ScoreUpdate{HomeScore: 1, Status: StatusLive, Played: boolPtr(true)}.Apply(scheduled)
		if err != nil {
			t.Fatalf("Apply() error: %v", err)
		}
		if !got.Played {
			t.Error("explicit played=true should be kept")
		}
	})

	t.Run("backward transition rejected", func(t *testing.T) {
		finished := scheduled
		finished.Status = StatusFinished
		finished.Played = true
		_, err := ScoreUpdate{Status: StatusLive}.Apply(finished)
		if !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("error = %v, want ErrInvalidTransition", err)
		}
	})

	t.Run("score correction on finished match", func(t *testing.T) {
		finished := scheduled
		finished.Status = StatusFinished
		finished.Played = true
		got, err := ScoreUpdate{HomeScore: 0, AwayScore: 3, Status: StatusFinished}.Apply(finished)
		if err != nil {
			t.Fatalf("Apply() error: %v", err)
		}
		if got.AwayScore != 3 || !got.Played {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("negative score rejected", func(t *testing.T) {
		_, err := ScoreUpdate{HomeScore: -1, Status: StatusLive}.Apply(scheduled)
		if !errors.Is(err, ErrInvalidScore) {
			t.Errorf("error = %v, want ErrInvalidScore", err)
		}
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		_, err := ScoreUpdate{Status: "postponed"}.Apply(scheduled)
		if !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("error = %v, want ErrInvalidTransition", err)
		}
	})

	t.Run("empty status keeps current", func(t *testing.T) {
		got, err := ScoreUpdate{HomeScore: 1}.Apply(scheduled)
		if err != nil {
			t.Fatalf("Apply() error: %v", err)
		}
		if got.Status != StatusScheduled {
			t.Errorf("status = %s, want scheduled", got.Status)
		}
	})
}

func TestPartialPersistenceError(t *testing.T) {
	err := error(&PartialPersistenceError{BatchID: "b1", Attempted: 10, Persisted: 4})
	if !errors.Is(err, ErrPartialPersistence) {
		t.Error("errors.Is(err, ErrPartialPersistence) = false")
	}
	var ppe *PartialPersistenceError
	if !errors.As(err, &ppe) || ppe.BatchID != "b1" {
		t.Errorf("errors.As failed: %v", err)
	}
}
