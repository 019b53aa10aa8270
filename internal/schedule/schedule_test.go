package schedule

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/albapepper/leaguedesk/internal/league"
)

func makeTeams(n int) []league.Team {
	teams := make([]league.Team, n)
	for i := range teams {
		teams[i] = league.Team{ID: 100 + i, Name: fmt.Sprintf("T%02d", i)}
	}
	return teams
}

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed+1))
}

type pair struct{ a, b int }

func normalize(f Fixture) pair {
	if f.HomeTeamID > f.AwayTeamID {
		return pair{f.AwayTeamID, f.HomeTeamID}
	}
	return pair{f.HomeTeamID, f.AwayTeamID}
}

func checkRoundRobin(t *testing.T, n int, fixtures []Fixture) {
	t.Helper()
	if want := n * (n - 1) / 2; len(fixtures) != want {
		t.Fatalf("%d teams: got %d fixtures, want %d", n, len(fixtures), want)
	}
	seen := make(map[pair]bool)
	for _, f := range fixtures {
		if f.HomeTeamID == f.AwayTeamID {
			t.Errorf("self pairing for team %d", f.HomeTeamID)
		}
		p := normalize(f)
		if seen[p] {
			t.Errorf("pair %v appears twice", p)
		}
		seen[p] = true
	}
}

func TestPairs(t *testing.T) {
	t.Run("insufficient teams", func(t *testing.T) {
		for _, n := range []int{0, 1} {
			if _, err := Pairs(makeTeams(n)); !errors.Is(err, league.ErrInsufficientTeams) {
				t.Errorf("%d teams: error = %v, want ErrInsufficientTeams", n, err)
			}
		}
	})

	t.Run("two teams", func(t *testing.T) {
		pairs, err := Pairs(makeTeams(2))
		if err != nil {
			t.Fatalf("Pairs() error: %v", err)
		}
		if len(pairs) != 1 || pairs[0] != (Fixture{HomeTeamID: 100, AwayTeamID: 101}) {
			t.Errorf("pairs = %+v", pairs)
		}
	})

	t.Run("every pair once", func(t *testing.T) {
		for n := 2; n <= 12; n++ {
			pairs, err := Pairs(makeTeams(n))
			if err != nil {
				t.Fatalf("Pairs(%d) error: %v", n, err)
			}
			checkRoundRobin(t, n, pairs)
		}
	})

	t.Run("orientation follows team order", func(t *testing.T) {
		pairs, _ := Pairs(makeTeams(4))
		for _, p := range pairs {
			if p.HomeTeamID >= p.AwayTeamID {
				t.Errorf("fixture %+v: home should come earlier in team order", p)
			}
		}
	})
}

func TestSequence(t *testing.T) {
	t.Run("permutation of input", func(t *testing.T) {
		for n := 2; n <= 12; n++ {
			pairs, _ := Pairs(makeTeams(n))
			seq := Sequence(pairs, seeded(uint64(n)))
			checkRoundRobin(t, n, seq)
		}
	})

	t.Run("does not mutate input", func(t *testing.T) {
		pairs, _ := Pairs(makeTeams(6))
		before := append([]Fixture(nil), pairs...)
		Sequence(pairs, seeded(1))
		for i := range pairs {
			if pairs[i] != before[i] {
				t.Fatalf("input modified at %d", i)
			}
		}
	})

	t.Run("reproducible under fixed seed", func(t *testing.T) {
		pairs, _ := Pairs(makeTeams(8))
		a := Sequence(pairs, seeded(42))
		b := Sequence(pairs, seeded(42))
		for i := range a {
			if a[i] != b[i] {
				t.Fatalf("sequences differ at %d: %+v vs %+v", i, a[i], b[i])
			}
		}
	})

	t.Run("clashes only when unavoidable", func(t *testing.T) {
		for n := 3; n <= 12; n++ {
			pairs, _ := Pairs(makeTeams(n))
			for seed := uint64(0); seed < 25; seed++ {
				seq := Sequence(pairs, seeded(seed))
				for _, i := range ForcedAdjacencies(seq) {
					// At the point of violation every unplaced pair must
					// share a team with the previous fixture.
					for _, f := range seq[i:] {
						if !f.Shares(seq[i-1]) {
							t.Fatalf("n=%d seed=%d: clash at %d although %+v was available after %+v",
								n, seed, i, f, seq[i-1])
						}
					}
				}
			}
		}
	})

	t.Run("three teams always clash", func(t *testing.T) {
		pairs, _ := Pairs(makeTeams(3))
		seq := Sequence(pairs, seeded(7))
		if got := len(ForcedAdjacencies(seq)); got != 2 {
			t.Errorf("forced adjacencies = %d, want 2 (every pair of 3 teams clashes)", got)
		}
	})

	t.Run("nil rand", func(t *testing.T) {
		pairs, _ := Pairs(makeTeams(5))
		checkRoundRobin(t, 5, Sequence(pairs, nil))
	})

	t.Run("empty input", func(t *testing.T) {
		if seq := Sequence(nil, seeded(1)); len(seq) != 0 {
			t.Errorf("Sequence(nil) = %v", seq)
		}
	})
}

func TestForcedAdjacencies(t *testing.T) {
	seq := []Fixture{{1, 2}, {3, 4}, {4, 1}, {1, 3}}
	got := ForcedAdjacencies(seq)
	if len(got) != 2 || got[0] != 2 || got[1] != 3 {
		t.Errorf("ForcedAdjacencies = %v, want [2 3]", got)
	}
}
