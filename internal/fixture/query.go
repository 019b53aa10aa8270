package fixture

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/albapepper/leaguedesk/internal/league"
)

// Writer is the slice of the match store that Save needs. CreateMatches
// must insert every row or none.
type Writer interface {
	CreateMatches(ctx context.Context, batchID uuid.UUID, rows []league.NewMatch) ([]league.Match, error)
}

// Save runs cmd against w. When some but not all rows were stored the error
// is a *league.PartialPersistenceError naming the batch, which must be
// cleared before a new schedule is generated. A failure that stored nothing
// is returned as is.
func Save(ctx context.Context, w Writer, cmd CreateMatchesCommand) (SaveResult, error) {
	start := time.Now()
	result := SaveResult{
		BatchID:   cmd.BatchID.String(),
		Attempted: cmd.Len(),
	}
	if cmd.Len() == 0 {
		return result, nil
	}

	created, err := w.CreateMatches(ctx, cmd.BatchID, cmd.Rows)
	result.Persisted = len(created)
	result.Matches = created
	result.Duration = time.Since(start)

	if err != nil && len(created) == 0 {
		return result, err
	}
	if err != nil || len(created) != cmd.Len() {
		if err == nil {
			err = fmt.Errorf("store returned %d rows", len(created))
		}
		return result, &league.PartialPersistenceError{
			BatchID:   result.BatchID,
			Attempted: result.Attempted,
			Persisted: result.Persisted,
			Err:       err,
		}
	}
	return result, nil
}
