package league

import "fmt"

// ScoreUpdate is a single operator write: score and status travel together.
// Played is optional; nil keeps the current flag unless the match finishes.
type ScoreUpdate struct {
	HomeScore int    `json:"homeScore"`
	AwayScore int    `json:"awayScore"`
	Status    Status `json:"status"`
	Played    *bool  `json:"played,omitempty"`
}

// Apply validates the update against the current match and returns the new
// match state. A finished match is always played: the standings aggregator
// only reads the played flag, so the coupling is enforced here.
func (u ScoreUpdate) Apply(current Match) (Match, error) {
	if u.HomeScore < 0 || u.AwayScore < 0 {
		return current, fmt.Errorf("%w: scores must be >= 0 (got %d-%d)", ErrInvalidScore, u.HomeScore, u.AwayScore)
	}

	status := u.Status
	if status == "" {
		status = current.Status
	}
	if !status.Valid() {
		return current, fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, status)
	}
	if err := CheckTransition(current.Status, status); err != nil {
		return current, err
	}

	played := current.Played
	if u.Played != nil {
		played = *u.Played
	}
	if status == StatusFinished {
		if u.Played != nil && !*u.Played {
			return current, fmt.Errorf("%w: a finished match must be marked played", ErrInvalidTransition)
		}
		played = true
	}

	next := current
	next.HomeScore = u.HomeScore
	next.AwayScore = u.AwayScore
	next.Status = status
	next.Played = played
	return next, nil
}

// CheckTransition allows scheduled -> live -> finished, with live skippable
// and same-state edits for score corrections. The kernel never advances
// state on its own.
func CheckTransition(from, to Status) error {
	if from == "" {
		from = StatusScheduled
	}
	if !to.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, to)
	}
	if to.rank() < from.rank() {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}
