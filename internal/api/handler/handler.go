// Package handler provides HTTP handlers for all API endpoints.
// Reads are served from the response cache when possible; every write
// invalidates the standings tracker and purges derived responses so the
// writer reads its own change without waiting for the change feed.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/albapepper/leaguedesk/internal/api/respond"
	"github.com/albapepper/leaguedesk/internal/cache"
	"github.com/albapepper/leaguedesk/internal/league"
	"github.com/albapepper/leaguedesk/internal/live"
	"github.com/albapepper/leaguedesk/internal/store"
)

// LeagueStore is the match result store as seen by the handlers.
type LeagueStore interface {
	Teams(ctx context.Context) ([]league.Team, error)
	Team(ctx context.Context, id int) (league.Team, error)
	CreateTeam(ctx context.Context, name string, city *string) (league.Team, error)
	UpdateTeam(ctx context.Context, id int, name string, city *string) (league.Team, error)
	DeleteTeam(ctx context.Context, id int) (int64, error)

	Matches(ctx context.Context) ([]league.Match, error)
	CreateMatches(ctx context.Context, batchID uuid.UUID, rows []league.NewMatch) ([]league.Match, error)
	DeleteBatch(ctx context.Context, batchID uuid.UUID) (int64, error)
	Batches(ctx context.Context) ([]store.Batch, error)
	UpdateScore(ctx context.Context, id int, u league.ScoreUpdate) (league.Match, error)
}

// StandingsSource is the live standings tracker.
type StandingsSource interface {
	Standings(ctx context.Context) (live.Table, error)
	Stale() bool
	Invalidate()
}

// Deps are the collaborators a Handler needs. DB and Live may be nil.
type Deps struct {
	Store     LeagueStore
	Standings StandingsSource
	Cache     cache.Backend
	DB        interface{ HealthCheck(ctx context.Context) error }
	Live      http.Handler
	Logger    *slog.Logger
	Location  *time.Location
	Now       func() time.Time
}

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	store     LeagueStore
	standings StandingsSource
	cache     cache.Backend
	db        interface{ HealthCheck(ctx context.Context) error }
	live      http.Handler
	logger    *slog.Logger
	loc       *time.Location
	now       func() time.Time
}

// New creates a Handler with shared dependencies.
func New(d Deps) *Handler {
	h := &Handler{
		store:     d.Store,
		standings: d.Standings,
		cache:     d.Cache,
		db:        d.DB,
		live:      d.Live,
		logger:    d.Logger,
		loc:       d.Location,
		now:       d.Now,
	}
	if h.logger == nil {
		h.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if h.loc == nil {
		h.loc = time.Local
	}
	if h.now == nil {
		h.now = time.Now
	}
	if h.cache == nil {
		h.cache = cache.New(false)
	}
	return h
}

// Root serves API info at /.
// @Summary API root info
// @Description Returns API name, version, status, and docs location.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"name":    "LeagueDesk API",
		"version": "1.0.0",
		"status":  "running",
		"docs":    "/docs",
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Description Returns basic health status and timestamp.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckDB verifies database connectivity.
// @Summary Database health check
// @Description Verifies Postgres connectivity.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/db [get]
func (h *Handler) HealthCheckDB(w http.ResponseWriter, r *http.Request) {
	if h.db == nil || h.db.HealthCheck(r.Context()) != nil {
		respond.WriteJSONObject(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":    "unhealthy",
			"database":  "disconnected",
			"error":     "Database connection check failed",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// pinger is implemented by cache backends that live out of process.
type pinger interface {
	Ping(ctx context.Context) error
}

// HealthCheckCache returns cache statistics.
// @Summary Cache health check
// @Description Returns response cache statistics and whether the standings table is current. Fails when a shared cache is unreachable.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/cache [get]
func (h *Handler) HealthCheckCache(w http.ResponseWriter, r *http.Request) {
	if p, ok := h.cache.(pinger); ok {
		if err := p.Ping(r.Context()); err != nil {
			h.logger.Warn("Cache ping failed", "error", err)
			respond.WriteJSONObject(w, http.StatusServiceUnavailable, map[string]interface{}{
				"status":    "unhealthy",
				"cache":     "disconnected",
				"error":     "Cache connection check failed",
				"timestamp": time.Now().UTC().Format(time.RFC3339),
			})
			return
		}
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":          "healthy",
		"cache":           h.cache.Stats(r.Context()),
		"standings_stale": h.standings.Stale(),
		"timestamp":       time.Now().UTC().Format(time.RFC3339),
	})
}

// --------------------------------------------------------------------------
// Shared helpers
// --------------------------------------------------------------------------

const maxBodyBytes = 1 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func pathID(r *http.Request, name string) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}
	return id, nil
}

// serveCached writes the cached body for key, or builds, caches and writes
// it. cacheable is consulted after build; false skips storing the result.
// A purge that lands while build runs also skips storing it.
func (h *Handler) serveCached(w http.ResponseWriter, r *http.Request, key string, ttl time.Duration,
	build func(ctx context.Context) (interface{}, bool, error)) {
	if data, etag, ok := h.cache.Get(r.Context(), key); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, true)
		return
	}

	epoch := h.cache.Epoch(r.Context())
	v, cacheable, err := build(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		h.writeError(w, err)
		return
	}

	var etag string
	if cacheable {
		etag, _ = h.cache.SetIfEpoch(r.Context(), key, data, ttl, epoch)
	} else {
		etag = cache.ComputeETag(data)
	}
	if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
		respond.WriteNotModified(w, etag)
		return
	}
	respond.WriteJSON(w, data, etag, false)
}

// changed is called after every successful write.
func (h *Handler) changed(ctx context.Context) {
	h.standings.Invalidate()
	h.cache.Purge(ctx, cache.PrefixLeague)
}

// writeError maps league sentinels onto HTTP statuses.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var partial *league.PartialPersistenceError
	switch {
	case errors.As(err, &partial):
		h.logger.Error("Fixture batch not fully stored",
			"batch_id", partial.BatchID,
			"attempted", partial.Attempted,
			"persisted", partial.Persisted,
			"error", partial.Err)
		respond.WriteErrorDetail(w, http.StatusInternalServerError, "PARTIAL_PERSISTENCE",
			"Fixture batch was not fully stored; clear the batch before generating again",
			partial.BatchID)
	case errors.Is(err, league.ErrInsufficientTeams):
		respond.WriteError(w, http.StatusBadRequest, "INSUFFICIENT_TEAMS", err.Error())
	case errors.Is(err, league.ErrNotFound):
		respond.WriteError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, league.ErrDuplicateName):
		respond.WriteError(w, http.StatusConflict, "DUPLICATE_NAME", err.Error())
	case errors.Is(err, league.ErrInvalidTransition):
		respond.WriteError(w, http.StatusUnprocessableEntity, "INVALID_TRANSITION", err.Error())
	case errors.Is(err, league.ErrInvalidScore):
		respond.WriteError(w, http.StatusUnprocessableEntity, "INVALID_SCORE", err.Error())
	case errors.Is(err, league.ErrDanglingReference):
		respond.WriteError(w, http.StatusUnprocessableEntity, "UNKNOWN_TEAM", err.Error())
	case errors.Is(err, league.ErrInvalidFixture):
		respond.WriteError(w, http.StatusUnprocessableEntity, "INVALID_FIXTURE", err.Error())
	default:
		h.logger.Error("Request failed", "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Internal server error")
	}
}
