package handler

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/albapepper/leaguedesk/internal/api/respond"
	"github.com/albapepper/leaguedesk/internal/fixture"
	"github.com/albapepper/leaguedesk/internal/league"
)

// GenerateRequest selects the slot policy for a schedule. All fields are
// optional: without slots or kickoff times every fixture gets its own day.
type GenerateRequest struct {
	// Slots are explicit kickoffs, assigned in order.
	Slots []time.Time `json:"slots,omitempty"`
	// KickoffTimes ("HH:MM") on Date build a single-day slot list.
	KickoffTimes []string `json:"kickoffTimes,omitempty"`
	Date         string   `json:"date,omitempty"`
	// Seed makes the shuffle reproducible.
	Seed *uint64 `json:"seed,omitempty"`
}

// SaveRequest persists either a previewed schedule (Matches) or a freshly
// generated one.
type SaveRequest struct {
	GenerateRequest
	Matches []fixture.Draft `json:"matches,omitempty"`
}

// SaveResponse reports a stored batch.
type SaveResponse struct {
	BatchID string         `json:"batchId"`
	Count   int            `json:"count"`
	Matches []league.Match `json:"matches"`
}

func (h *Handler) slots(req GenerateRequest) ([]time.Time, error) {
	if len(req.Slots) > 0 {
		return req.Slots, nil
	}
	if len(req.KickoffTimes) == 0 {
		return nil, nil
	}
	day := h.now().In(h.loc)
	if req.Date != "" {
		d, err := time.ParseInLocation(time.DateOnly, req.Date, h.loc)
		if err != nil {
			return nil, fmt.Errorf("date must be YYYY-MM-DD: %w", err)
		}
		day = d
	}
	return fixture.KickoffSlots(day, req.KickoffTimes, h.loc)
}

func (h *Handler) options(req GenerateRequest) fixture.Options {
	opts := fixture.Options{
		Now:    func() time.Time { return h.now().In(h.loc) },
		Logger: h.logger,
	}
	if req.Seed != nil {
		opts.Rand = rand.New(rand.NewPCG(*req.Seed, *req.Seed))
	}
	return opts
}

func (h *Handler) generate(r *http.Request, req GenerateRequest, slots []time.Time) ([]fixture.Draft, error) {
	teams, err := h.store.Teams(r.Context())
	if err != nil {
		return nil, err
	}
	return fixture.GenerateSchedule(teams, slots, h.options(req))
}

// decodeOptional accepts an empty body as the zero value.
func decodeOptional(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	if r.Body == nil || r.Body == http.NoBody {
		return nil
	}
	if err := decodeJSON(w, r, dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// GenerateSchedule previews a round robin without storing it.
// @Summary Preview schedule
// @Description Pairs every team with every other team once and orders the fixtures so that, where possible, no team plays twice in a row.
// @Tags schedule
// @Accept json
// @Produce json
// @Param request body GenerateRequest false "Slot policy"
// @Success 200 {array} fixture.Draft
// @Failure 400 {object} respond.ErrorResponse
// @Router /matches/generate [post]
func (h *Handler) GenerateSchedule(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := decodeOptional(w, r, &req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}

	slots, err := h.slots(req)
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_SLOTS", err.Error())
		return
	}

	drafts, err := h.generate(r, req, slots)
	if err != nil {
		h.writeError(w, err)
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, drafts)
}

// SaveSchedule stores a schedule as one batch of scheduled matches.
// @Summary Save schedule
// @Description Stores the previewed fixtures in matches, or generates a new schedule when none are given. The batch is stored in full or not at all; on PARTIAL_PERSISTENCE clear the batch id in detail before retrying.
// @Tags schedule
// @Accept json
// @Produce json
// @Param request body SaveRequest false "Previewed fixtures or slot policy"
// @Success 201 {object} SaveResponse
// @Failure 400 {object} respond.ErrorResponse
// @Failure 422 {object} respond.ErrorResponse
// @Failure 500 {object} respond.ErrorResponse
// @Router /matches [post]
func (h *Handler) SaveSchedule(w http.ResponseWriter, r *http.Request) {
	var req SaveRequest
	if err := decodeOptional(w, r, &req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}

	drafts := req.Matches
	if len(drafts) == 0 {
		slots, err := h.slots(req.GenerateRequest)
		if err != nil {
			respond.WriteError(w, http.StatusBadRequest, "INVALID_SLOTS", err.Error())
			return
		}
		drafts, err = h.generate(r, req.GenerateRequest, slots)
		if err != nil {
			h.writeError(w, err)
			return
		}
	} else if err := h.checkDrafts(r, drafts); err != nil {
		h.writeError(w, err)
		return
	}

	cmd := fixture.Materialize(drafts)
	result, err := fixture.Save(r.Context(), h.store, cmd)
	if err != nil {
		// Rows that landed are already visible.
		if result.Persisted > 0 {
			h.changed(r.Context())
		}
		h.writeError(w, err)
		return
	}

	h.changed(r.Context())
	h.logger.Info("Fixture batch stored", "summary", result.Summary())
	respond.WriteJSONObject(w, http.StatusCreated, SaveResponse{
		BatchID: result.BatchID,
		Count:   result.Persisted,
		Matches: result.Matches,
	})
}

// checkDrafts validates client-supplied drafts against the team registry
// and fills defaults the preview may have dropped.
func (h *Handler) checkDrafts(r *http.Request, drafts []fixture.Draft) error {
	teams, err := h.store.Teams(r.Context())
	if err != nil {
		return err
	}
	known := make(map[int]bool, len(teams))
	for _, t := range teams {
		known[t.ID] = true
	}

	now := h.now()
	for i := range drafts {
		d := &drafts[i]
		if d.HomeTeamID == d.AwayTeamID {
			return fmt.Errorf("%w: fixture %d pairs team %d with itself", league.ErrInvalidFixture, i+1, d.HomeTeamID)
		}
		if !known[d.HomeTeamID] || !known[d.AwayTeamID] {
			return fmt.Errorf("%w: fixture %d (%d vs %d)", league.ErrDanglingReference, i+1, d.HomeTeamID, d.AwayTeamID)
		}
		if d.MatchDate.IsZero() {
			d.MatchDate = now
		}
	}
	return nil
}
