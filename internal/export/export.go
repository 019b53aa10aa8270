// Package export writes the schedule and standings to an Excel workbook.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/albapepper/leaguedesk/internal/league"
	"github.com/albapepper/leaguedesk/internal/standings"
)

const (
	SheetSchedule  = "Schedule"
	SheetStandings = "Standings"
)

// Workbook builds a workbook with a Schedule sheet (matches in the order
// given) and a Standings sheet (rows in rank order).
func Workbook(matches []league.Match, rows []standings.Row, loc *time.Location) (*excelize.File, error) {
	if loc == nil {
		loc = time.Local
	}
	f := excelize.NewFile()
	f.SetDefaultFont("Arial")

	if err := writeSchedule(f, matches, loc); err != nil {
		return nil, fmt.Errorf("writing schedule sheet: %w", err)
	}
	if err := writeStandings(f, rows); err != nil {
		return nil, fmt.Errorf("writing standings sheet: %w", err)
	}

	f.DeleteSheet("Sheet1")
	if idx, err := f.GetSheetIndex(SheetStandings); err == nil {
		f.SetActiveSheet(idx)
	}
	return f, nil
}

// WriteFile builds the workbook and saves it to path.
func WriteFile(path string, matches []league.Match, rows []standings.Row, loc *time.Location) error {
	f, err := Workbook(matches, rows, loc)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

func headerStyle(f *excelize.File) int {
	style, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Family: "Arial"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#4472C4"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	return style
}

func writeHeader(f *excelize.File, sheet string, headers []string) error {
	for i, h := range headers {
		if err := f.SetCellValue(sheet, cellRef(i+1, 1), h); err != nil {
			return err
		}
	}
	if style := headerStyle(f); style != 0 {
		f.SetCellStyle(sheet, cellRef(1, 1), cellRef(len(headers), 1), style)
	}
	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func teamName(t *league.Team, id int) string {
	if t != nil {
		return t.Name
	}
	return fmt.Sprintf("#%d", id)
}

func writeSchedule(f *excelize.File, matches []league.Match, loc *time.Location) error {
	sheet := SheetSchedule
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if err := writeHeader(f, sheet, []string{"#", "Date", "Kickoff", "Home", "Away", "Score", "Status"}); err != nil {
		return err
	}

	for i, m := range matches {
		row := i + 2
		kickoff := m.MatchDate.In(loc)
		score := ""
		if m.Played || m.Status != league.StatusScheduled {
			score = fmt.Sprintf("%d - %d", m.HomeScore, m.AwayScore)
		}
		values := []interface{}{
			i + 1,
			kickoff.Format("Mon 2006-01-02"),
			kickoff.Format("15:04"),
			teamName(m.HomeTeam, m.HomeTeamID),
			teamName(m.AwayTeam, m.AwayTeamID),
			score,
			string(m.Status),
		}
		if err := f.SetSheetRow(sheet, cellRef(1, row), &values); err != nil {
			return err
		}
	}

	f.SetColWidth(sheet, "B", "B", 16)
	f.SetColWidth(sheet, "D", "E", 20)
	return nil
}

func writeStandings(f *excelize.File, rows []standings.Row) error {
	sheet := SheetStandings
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	headers := []string{"Pos", "Team", "P", "W", "D", "L", "GF", "GA", "GD", "Pts", "Form"}
	if err := writeHeader(f, sheet, headers); err != nil {
		return err
	}

	for i, r := range rows {
		values := []interface{}{
			i + 1, r.TeamName, r.Played, r.Win, r.Draw, r.Loss,
			r.GF, r.GA, r.GD, r.Points, strings.Join(r.Last5, " "),
		}
		if err := f.SetSheetRow(sheet, cellRef(1, i+2), &values); err != nil {
			return err
		}
	}

	f.SetColWidth(sheet, "B", "B", 20)
	f.SetColWidth(sheet, "K", "K", 14)
	return nil
}

func cellRef(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
