package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/albapepper/leaguedesk/internal/api/respond"
	"github.com/albapepper/leaguedesk/internal/cache"
	"github.com/albapepper/leaguedesk/internal/league"
	"github.com/albapepper/leaguedesk/internal/store"
)

// ListMatches returns every match with both teams attached, in kickoff order.
// @Summary List matches
// @Tags matches
// @Produce json
// @Success 200 {array} league.Match
// @Router /matches [get]
func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	h.serveCached(w, r, cache.KeyMatches, cache.TTLMatches, func(ctx context.Context) (interface{}, bool, error) {
		matches, err := h.store.Matches(ctx)
		if matches == nil {
			matches = []league.Match{}
		}
		return matches, true, err
	})
}

// UpdateMatch sets score and status together.
// @Summary Update match score and status
// @Description Status moves scheduled -> live -> finished (live may be skipped). Finishing a match marks it played.
// @Tags matches
// @Accept json
// @Produce json
// @Param id path int true "Match ID"
// @Param update body league.ScoreUpdate true "Score update"
// @Success 200 {object} league.Match
// @Failure 404 {object} respond.ErrorResponse
// @Failure 422 {object} respond.ErrorResponse
// @Router /matches/{id} [patch]
func (h *Handler) UpdateMatch(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}
	var u league.ScoreUpdate
	if err := decodeJSON(w, r, &u); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}

	match, err := h.store.UpdateScore(r.Context(), id, u)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.changed(r.Context())
	h.logger.Info("Match updated",
		"match_id", match.ID,
		"score", []int{match.HomeScore, match.AwayScore},
		"status", match.Status,
		"played", match.Played)
	respond.WriteJSONObject(w, http.StatusOK, match)
}

// ListBatches returns generated fixture batches.
// @Summary List fixture batches
// @Tags matches
// @Produce json
// @Success 200 {array} store.Batch
// @Router /matches/batches [get]
func (h *Handler) ListBatches(w http.ResponseWriter, r *http.Request) {
	batches, err := h.store.Batches(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	if batches == nil {
		batches = []store.Batch{}
	}
	respond.WriteJSONObject(w, http.StatusOK, batches)
}

// DeleteBatch removes every match of a generated batch, typically one that
// failed part way through.
// @Summary Delete fixture batch
// @Tags matches
// @Produce json
// @Param batchID path string true "Batch UUID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Router /matches/batches/{batchID} [delete]
func (h *Handler) DeleteBatch(w http.ResponseWriter, r *http.Request) {
	batchID, err := uuid.Parse(chi.URLParam(r, "batchID"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_BATCH_ID", "batchID must be a UUID")
		return
	}

	removed, err := h.store.DeleteBatch(r.Context(), batchID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.changed(r.Context())
	h.logger.Info("Fixture batch deleted", "batch_id", batchID, "matches_removed", removed)
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"batchId":        batchID.String(),
		"matchesRemoved": removed,
	})
}
