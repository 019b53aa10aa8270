package standings

import (
	"reflect"
	"testing"

	"github.com/albapepper/leaguedesk/internal/league"
)

func team(id int, name string) league.Team { return league.Team{ID: id, Name: name} }

func result(id, home, away, hs, as int) league.MatchResult {
	return league.MatchResult{ID: id, HomeTeamID: home, AwayTeamID: away, HomeScore: hs, AwayScore: as}
}

func rowFor(t *testing.T, rows []Row, teamID int) Row {
	t.Helper()
	for _, r := range rows {
		if r.TeamID == teamID {
			return r
		}
	}
	t.Fatalf("no row for team %d", teamID)
	return Row{}
}

func TestComputeSingleMatch(t *testing.T) {
	teams := []league.Team{team(1, "TIMA"), team(2, "TIMB")}

	t.Run("home win", func(t *testing.T) {
		rows := Compute(teams, []league.MatchResult{result(1, 1, 2, 3, 1)}, nil)
		home, away := rowFor(t, rows, 1), rowFor(t, rows, 2)
		if home.Win != 1 || home.Points != 3 || home.GD != 2 || !reflect.DeepEqual(home.Last5, []string{"W"}) {
			t.Errorf("home row = %+v", home)
		}
		if away.Loss != 1 || away.Points != 0 || away.GD != -2 || !reflect.DeepEqual(away.Last5, []string{"L"}) {
			t.Errorf("away row = %+v", away)
		}
		if rows[0].TeamID != 1 {
			t.Errorf("winner should lead, got %+v", rows[0])
		}
	})

	t.Run("draw", func(t *testing.T) {
		rows := Compute(teams, []league.MatchResult{result(1, 1, 2, 2, 2)}, nil)
		for _, r := range rows {
			if r.Draw != 1 || r.Points != 1 || r.GD != 0 || !reflect.DeepEqual(r.Last5, []string{"D"}) {
				t.Errorf("row = %+v", r)
			}
		}
	})
}

func TestComputeOrdering(t *testing.T) {
	t.Run("goals for breaks gd tie", func(t *testing.T) {
		teams := []league.Team{team(1, "Alpha"), team(2, "Bravo"), team(3, "Charlie"), team(4, "Delta")}
		matches := []league.MatchResult{
			result(1, 2, 3, 10, 8), // Bravo +2, gf 10
			result(2, 1, 4, 8, 6),  // Alpha +2, gf 8
		}
		rows := Compute(teams, matches, nil)
		if rows[0].TeamName != "Bravo" || rows[1].TeamName != "Alpha" {
			t.Errorf("order = %s, %s", rows[0].TeamName, rows[1].TeamName)
		}
	})

	t.Run("name breaks full tie", func(t *testing.T) {
		teams := []league.Team{team(1, "Zulu"), team(2, "Yankee"), team(3, "alpha"), team(4, "Bravo")}
		matches := []league.MatchResult{
			result(1, 1, 2, 1, 1),
			result(2, 3, 4, 1, 1),
		}
		rows := Compute(teams, matches, nil)
		var names []string
		for _, r := range rows {
			names = append(names, r.TeamName)
		}
		want := []string{"Bravo", "Yankee", "Zulu", "alpha"}
		if !reflect.DeepEqual(names, want) {
			t.Errorf("order = %v, want %v (case-sensitive)", names, want)
		}
	})

	t.Run("unplayed teams at the bottom", func(t *testing.T) {
		teams := []league.Team{team(1, "Aardvarks"), team(2, "Bees"), team(3, "Cats"), team(4, "Ants")}
		// Cats lose heavily but have played, so they still sit above the idle teams.
		matches := []league.MatchResult{result(1, 2, 3, 5, 0)}
		rows := Compute(teams, matches, nil)
		var ids []int
		for _, r := range rows {
			ids = append(ids, r.TeamID)
		}
		if want := []int{2, 3, 1, 4}; !reflect.DeepEqual(ids, want) {
			t.Errorf("order = %v, want %v", ids, want)
		}
		idle := rows[2]
		if idle.Played != 0 || idle.Points != 0 || len(idle.Last5) != 0 {
			t.Errorf("idle row = %+v", idle)
		}
	})
}

func TestComputeForm(t *testing.T) {
	teams := []league.Team{team(1, "TIMA"), team(2, "TIMB")}

	t.Run("capped at five", func(t *testing.T) {
		var matches []league.MatchResult
		for i := 1; i <= 7; i++ {
			matches = append(matches, result(i, 1, 2, 2, 0))
		}
		row := rowFor(t, Compute(teams, matches, nil), 1)
		if row.Win != 7 || !reflect.DeepEqual(row.Last5, []string{"W", "W", "W", "W", "W"}) {
			t.Errorf("row = %+v", row)
		}
	})

	t.Run("oldest first by match id", func(t *testing.T) {
		matches := []league.MatchResult{
			result(7, 1, 2, 0, 1), // L
			result(2, 1, 2, 1, 1), // D
			result(1, 1, 2, 0, 3), // L
			result(3, 1, 2, 2, 0), // W
			result(5, 2, 1, 0, 0), // D
			result(4, 2, 1, 1, 4), // W
			result(6, 1, 2, 3, 2), // W
		}
		row := rowFor(t, Compute(teams, matches, nil), 1)
		want := []string{"W", "W", "D", "W", "L"}
		if !reflect.DeepEqual(row.Last5, want) {
			t.Errorf("last5 = %v, want %v", row.Last5, want)
		}
	})

	t.Run("arrival order does not matter", func(t *testing.T) {
		forward := []league.MatchResult{result(1, 1, 2, 1, 0), result(2, 1, 2, 0, 0), result(3, 2, 1, 2, 1)}
		reverse := []league.MatchResult{forward[2], forward[1], forward[0]}
		a := Compute(teams, forward, nil)
		b := Compute(teams, reverse, nil)
		if !reflect.DeepEqual(a, b) {
			t.Errorf("tables differ:\n%+v\n%+v", a, b)
		}
	})
}

func TestComputeIsPure(t *testing.T) {
	teams := []league.Team{team(3, "C"), team(1, "A"), team(2, "B")}
	matches := []league.MatchResult{result(2, 1, 2, 1, 0), result(1, 2, 3, 2, 2)}
	teamsCopy := append([]league.Team(nil), teams...)
	matchesCopy := append([]league.MatchResult(nil), matches...)

	a := Compute(teams, matches, nil)
	b := Compute(teams, matches, nil)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("repeated calls differ")
	}
	if !reflect.DeepEqual(teams, teamsCopy) || !reflect.DeepEqual(matches, matchesCopy) {
		t.Errorf("inputs were modified")
	}
}

func TestComputeSkipsDanglingReference(t *testing.T) {
	teams := []league.Team{team(1, "TIMA"), team(2, "TIMB")}
	matches := []league.MatchResult{
		result(1, 1, 99, 4, 0),
		result(2, 1, 2, 1, 0),
	}
	rows := Compute(teams, matches, nil)
	row := rowFor(t, rows, 1)
	if row.Played != 1 || row.GF != 1 {
		t.Errorf("dangling match was counted: %+v", row)
	}
}
