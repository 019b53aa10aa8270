package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/albapepper/leaguedesk/internal/league"
)

func TestMapError(t *testing.T) {
	cases := []struct {
		name string
		in   error
		want error
	}{
		{"no rows", pgx.ErrNoRows, league.ErrNotFound},
		{"unique", &pgconn.PgError{Code: uniqueViolation, Detail: "Key (name)=(TIMA) already exists."}, league.ErrDuplicateName},
		{"foreign key", &pgconn.PgError{Code: foreignKeyViolation}, league.ErrDanglingReference},
		{"check", fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: checkViolation}), league.ErrInvalidScore},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := mapError(tc.in); !errors.Is(got, tc.want) {
				t.Errorf("mapError(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}

	t.Run("passthrough", func(t *testing.T) {
		boom := errors.New("boom")
		if got := mapError(boom); got != boom {
			t.Errorf("mapError changed unrelated error: %v", got)
		}
		if mapError(nil) != nil {
			t.Error("mapError(nil) should be nil")
		}
	})
}

func TestNormalizeCity(t *testing.T) {
	blank := "   "
	city := " TANGERANG "
	if normalizeCity(nil) != nil || normalizeCity(&blank) != nil {
		t.Error("blank city should be NULL")
	}
	if got := normalizeCity(&city); got == nil || *got != "TANGERANG" {
		t.Errorf("normalizeCity = %v", got)
	}
}
