package league

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientTeams is returned when fewer than two teams are
	// available to build a round robin.
	ErrInsufficientTeams = errors.New("insufficient teams: at least 2 are required")

	// ErrDanglingReference marks a match that points at a team which is no
	// longer registered. Aggregation skips such matches.
	ErrDanglingReference = errors.New("dangling reference: match references unknown team")

	// ErrInvalidFixture marks a fixture draft that pairs a team with itself.
	ErrInvalidFixture = errors.New("invalid fixture: a team cannot play itself")

	// ErrPartialPersistence is matched by *PartialPersistenceError.
	ErrPartialPersistence = errors.New("partial persistence")

	ErrInvalidTransition = errors.New("invalid match transition")
	ErrInvalidScore      = errors.New("invalid score")
	ErrNotFound          = errors.New("not found")
	ErrDuplicateName     = errors.New("duplicate team name")
)

// PartialPersistenceError reports a fixture batch that was not stored in
// full. Regenerating produces a different random schedule, so callers must
// clear BatchID before trying again instead of retrying blindly.
type PartialPersistenceError struct {
	BatchID   string
	Attempted int
	Persisted int
	Err       error
}

func (e *PartialPersistenceError) Error() string {
	msg := fmt.Sprintf("partial persistence: batch %s stored %d of %d fixtures",
		e.BatchID, e.Persisted, e.Attempted)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *PartialPersistenceError) Unwrap() error { return e.Err }

func (e *PartialPersistenceError) Is(target error) bool {
	return target == ErrPartialPersistence
}
