package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/albapepper/leaguedesk/internal/fixture"
	"github.com/albapepper/leaguedesk/internal/league"
	"github.com/albapepper/leaguedesk/internal/standings"
)

func printTeams(w io.Writer, teams []league.Team) {
	fmt.Fprintf(w, "  %4s  %-20s %-15s\n", "ID", "Team", "City")
	for _, t := range teams {
		city := "-"
		if t.City != nil {
			city = *t.City
		}
		fmt.Fprintf(w, "  %4d  %-20s %-15s\n", t.ID, t.Name, city)
	}
}

func printDrafts(w io.Writer, drafts []fixture.Draft) {
	fallback := 0
	for _, d := range drafts {
		mark := ""
		if d.Fallback {
			mark = " *"
			fallback++
		}
		fmt.Fprintf(w, "  %3d  %-16s  %-15s vs %-15s%s\n",
			d.Sequence, d.MatchDate.Format("Mon 01-02 15:04"), d.HomeTeam.Name, d.AwayTeam.Name, mark)
	}
	if fallback > 0 {
		fmt.Fprintf(w, "\n⚠ %d fixtures had no slot and are dated at generation time (*)\n", fallback)
	}
}

func printStandings(w io.Writer, rows []standings.Row) {
	fmt.Fprintf(w, "  %3s  %-15s %3s %3s %3s %3s %4s %4s %4s %4s  %s\n",
		"Pos", "Team", "P", "W", "D", "L", "GF", "GA", "GD", "Pts", "Form")
	for i, r := range rows {
		fmt.Fprintf(w, "  %3d  %-15s %3d %3d %3d %3d %4d %4d %+4d %4d  %s\n",
			i+1, r.TeamName, r.Played, r.Win, r.Draw, r.Loss, r.GF, r.GA, r.GD, r.Points,
			strings.Join(r.Last5, ""))
	}
}

