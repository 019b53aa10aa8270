package schedule

import (
	"math/rand/v2"
	"slices"
	"time"
)

// Sequence shuffles pairs and then greedily emits, at every step, the first
// remaining fixture that shares no team with the previous one. When every
// remaining fixture clashes the constraint is dropped for that single step.
//
// This is a heuristic. It does not search for an adjacency-free ordering, so
// a forced clash can occur even when a different earlier choice would have
// avoided it.
func Sequence(pairs []Fixture, rng *rand.Rand) []Fixture {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1))
	}

	remaining := slices.Clone(pairs)
	rng.Shuffle(len(remaining), func(i, j int) {
		remaining[i], remaining[j] = remaining[j], remaining[i]
	})

	ordered := make([]Fixture, 0, len(remaining))
	var last Fixture
	constrained := false

	for len(remaining) > 0 {
		idx := 0
		if constrained {
			idx = slices.IndexFunc(remaining, func(f Fixture) bool { return !f.Shares(last) })
		}
		if idx < 0 {
			// Relax: an empty last-teams set matches any pair.
			constrained = false
			continue
		}

		last = remaining[idx]
		remaining = slices.Delete(remaining, idx, idx+1)
		ordered = append(ordered, last)
		constrained = true
	}
	return ordered
}

// ForcedAdjacencies returns the positions i where seq[i] shares a team with
// seq[i-1].
func ForcedAdjacencies(seq []Fixture) []int {
	var out []int
	for i := 1; i < len(seq); i++ {
		if seq[i].Shares(seq[i-1]) {
			out = append(out, i)
		}
	}
	return out
}
