package export

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/albapepper/leaguedesk/internal/league"
	"github.com/albapepper/leaguedesk/internal/standings"
)

func sample() ([]league.Match, []standings.Row) {
	a := &league.Team{ID: 1, Name: "TIMA"}
	b := &league.Team{ID: 2, Name: "TIMB"}
	kickoff := time.Date(2024, 3, 10, 13, 0, 0, 0, time.UTC)
	matches := []league.Match{
		{ID: 1, HomeTeamID: 1, AwayTeamID: 2, HomeTeam: a, AwayTeam: b, HomeScore: 3, AwayScore: 1,
			Status: league.StatusFinished, Played: true, MatchDate: kickoff},
		{ID: 2, HomeTeamID: 2, AwayTeamID: 1, HomeTeam: b, AwayTeam: a,
			Status: league.StatusScheduled, MatchDate: kickoff.AddDate(0, 0, 1)},
	}
	rows := standings.Compute([]league.Team{*a, *b}, []league.MatchResult{matches[0].Result()}, nil)
	return matches, rows
}

func TestWorkbook(t *testing.T) {
	matches, rows := sample()
	f, err := Workbook(matches, rows, time.UTC)
	if err != nil {
		t.Fatalf("Workbook() error: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 {
		t.Fatalf("sheets = %v", sheets)
	}

	checks := []struct {
		sheet, cell, want string
	}{
		{SheetSchedule, "A1", "#"},
		{SheetSchedule, "C2", "13:00"},
		{SheetSchedule, "D2", "TIMA"},
		{SheetSchedule, "F2", "3 - 1"},
		{SheetSchedule, "F3", ""},
		{SheetSchedule, "G3", "scheduled"},
		{SheetStandings, "B2", "TIMA"},
		{SheetStandings, "J2", "3"},
		{SheetStandings, "K2", "W"},
		{SheetStandings, "K3", "L"},
	}
	for _, c := range checks {
		got, err := f.GetCellValue(c.sheet, c.cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s!%s): %v", c.sheet, c.cell, err)
		}
		if got != c.want {
			t.Errorf("%s!%s = %q, want %q", c.sheet, c.cell, got, c.want)
		}
	}
}

func TestWriteFile(t *testing.T) {
	matches, rows := sample()
	path := filepath.Join(t.TempDir(), "league.xlsx")
	if err := WriteFile(path, matches, rows, nil); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile() error: %v", err)
	}
	defer f.Close()
	if v, _ := f.GetCellValue(SheetStandings, "A3"); v != "2" {
		t.Errorf("Standings!A3 = %q", v)
	}
}
