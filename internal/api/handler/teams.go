package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/albapepper/leaguedesk/internal/api/respond"
	"github.com/albapepper/leaguedesk/internal/cache"
	"github.com/albapepper/leaguedesk/internal/league"
)

// TeamRequest is the body of team create and update.
type TeamRequest struct {
	Name string  `json:"name"`
	City *string `json:"city"`
}

// ListTeams returns every team in id order.
// @Summary List teams
// @Tags teams
// @Produce json
// @Success 200 {array} league.Team
// @Router /teams [get]
func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	h.serveCached(w, r, cache.KeyTeams, cache.TTLTeams, func(ctx context.Context) (interface{}, bool, error) {
		teams, err := h.store.Teams(ctx)
		if teams == nil {
			teams = []league.Team{}
		}
		return teams, true, err
	})
}

// GetTeam returns a single team.
// @Summary Get team
// @Tags teams
// @Produce json
// @Param id path int true "Team ID"
// @Success 200 {object} league.Team
// @Failure 404 {object} respond.ErrorResponse
// @Router /teams/{id} [get]
func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}
	team, err := h.store.Team(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, team)
}

// CreateTeam registers a team.
// @Summary Create team
// @Tags teams
// @Accept json
// @Produce json
// @Param team body TeamRequest true "Team"
// @Success 201 {object} league.Team
// @Failure 400 {object} respond.ErrorResponse
// @Failure 409 {object} respond.ErrorResponse
// @Router /teams [post]
func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var req TeamRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respond.WriteError(w, http.StatusBadRequest, "MISSING_NAME", "name is required")
		return
	}

	team, err := h.store.CreateTeam(r.Context(), req.Name, req.City)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.changed(r.Context())
	respond.WriteJSONObject(w, http.StatusCreated, team)
}

// UpdateTeam edits a team's name and city.
// @Summary Update team
// @Tags teams
// @Accept json
// @Produce json
// @Param id path int true "Team ID"
// @Param team body TeamRequest true "Team"
// @Success 200 {object} league.Team
// @Failure 404 {object} respond.ErrorResponse
// @Failure 409 {object} respond.ErrorResponse
// @Router /teams/{id} [put]
func (h *Handler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}
	var req TeamRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respond.WriteError(w, http.StatusBadRequest, "MISSING_NAME", "name is required")
		return
	}

	team, err := h.store.UpdateTeam(r.Context(), id, req.Name, req.City)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.changed(r.Context())
	respond.WriteJSONObject(w, http.StatusOK, team)
}

// DeleteTeam removes a team together with all of its matches.
// @Summary Delete team
// @Description Cascades: every match the team played or is scheduled to play is removed first.
// @Tags teams
// @Produce json
// @Param id path int true "Team ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} respond.ErrorResponse
// @Router /teams/{id} [delete]
func (h *Handler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}

	removed, err := h.store.DeleteTeam(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.changed(r.Context())
	h.logger.Info("Team deleted", "team_id", id, "matches_removed", removed)
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"deleted":        id,
		"matchesRemoved": removed,
	})
}
