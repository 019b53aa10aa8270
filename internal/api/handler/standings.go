package handler

import (
	"context"
	"net/http"

	"github.com/albapepper/leaguedesk/internal/api/respond"
	"github.com/albapepper/leaguedesk/internal/cache"
)

// GetStandings returns the ranked table.
// @Summary League standings
// @Description Points, goal difference and goals for (descending), then team name. Teams without a played match are listed last. last5 holds the five most recent results, oldest first.
// @Tags standings
// @Produce json
// @Success 200 {array} standings.Row
// @Router /standings [get]
func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	h.serveCached(w, r, cache.KeyStandings, cache.TTLStandings, func(ctx context.Context) (interface{}, bool, error) {
		table, err := h.standings.Standings(ctx)
		if err != nil {
			return nil, false, err
		}
		// A table from a snapshot that raced a write is served once but
		// never cached.
		return table.Rows, !h.standings.Stale(), nil
	})
}

// LiveStandings upgrades to a websocket that receives every recomputed
// table.
// @Summary Live standings (websocket)
// @Tags standings
// @Success 101
// @Failure 503 {object} respond.ErrorResponse
// @Router /standings/live [get]
func (h *Handler) LiveStandings(w http.ResponseWriter, r *http.Request) {
	if h.live == nil {
		respond.WriteError(w, http.StatusServiceUnavailable, "LIVE_DISABLED", "Live standings are not enabled")
		return
	}
	h.live.ServeHTTP(w, r)
}
