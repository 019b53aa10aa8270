// Command api is the LeagueDesk API server.
//
// Usage:
//
//	leaguedesk-api
//	API_PORT=8080 REDIS_URL=redis://localhost:6379/0 leaguedesk-api

// @title LeagueDesk API
// @version 1.0.0
// @description Round-robin league service: team registry, schedule generation, match results and live standings.
// @host localhost:8000
// @BasePath /api/v1
// @schemes http https
// @contact.name LeagueDesk
// @license.name MIT
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/albapepper/leaguedesk/internal/api"
	"github.com/albapepper/leaguedesk/internal/api/handler"
	"github.com/albapepper/leaguedesk/internal/broadcast"
	"github.com/albapepper/leaguedesk/internal/cache"
	"github.com/albapepper/leaguedesk/internal/config"
	"github.com/albapepper/leaguedesk/internal/db"
	"github.com/albapepper/leaguedesk/internal/feed"
	"github.com/albapepper/leaguedesk/internal/live"
	"github.com/albapepper/leaguedesk/internal/maintenance"
	"github.com/albapepper/leaguedesk/internal/store"

	_ "github.com/albapepper/leaguedesk/docs" // swagger docs
)

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	loc, _ := cfg.Location() // validated by Load

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Connect to database
	logger.Info("Connecting to database...")
	pool, err := db.New(ctx, cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("Database connected",
		"min_conns", cfg.DBPoolMinConns,
		"max_conns", cfg.DBPoolMaxConns)

	st := store.New(pool.Pool)

	// Initialize cache: Redis when configured, in-process otherwise
	var appCache cache.Backend = cache.New(cfg.CacheEnabled)
	if cfg.CacheEnabled && cfg.RedisURL != "" {
		rc, err := cache.NewRedis(ctx, cfg.RedisURL, logger)
		if err != nil {
			logger.Warn("Redis unavailable, falling back to memory cache", "error", err)
		} else {
			defer rc.Close()
			appCache = rc
		}
	}
	logger.Info("Cache initialized", "enabled", cfg.CacheEnabled, "stats", appCache.Stats(ctx))

	// Live standings: tracker re-snapshots on every change signal and
	// pushes the fresh table to WebSocket clients
	hub := broadcast.NewHub(cfg.CORSAllowOrigins, logger)
	go hub.Run(ctx)

	tracker := live.NewTracker(st, logger)
	tracker.OnRefresh(func(table live.Table) {
		appCache.Purge(ctx, cache.PrefixLeague)
		hub.Publish(broadcast.TypeStandings, table.Rows)
	})

	inv := feed.NewInvalidator()
	go tracker.Run(ctx, inv.C())

	// Change feed: Postgres LISTEN/NOTIFY, optionally mirrored to and
	// consumed from an AMQP exchange
	var hooks []func(feed.Event)
	if cfg.AMQPURL != "" {
		pub, err := feed.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange, logger)
		if err != nil {
			logger.Warn("AMQP publisher disabled", "error", err)
		} else {
			defer pub.Close()
			hooks = append(hooks, pub.Publish)
			logger.Info("AMQP publisher started", "exchange", cfg.AMQPExchange)
		}
		go feed.ConsumeAMQP(ctx, cfg.AMQPURL, cfg.AMQPExchange, inv, logger)
	}
	go feed.ListenPostgres(ctx, cfg.DatabaseURL, cfg.FeedChannel, inv, logger, hooks...)

	// Start maintenance tickers (catch-up re-snapshot, consistency sweep)
	go maintenance.Start(ctx, inv, st, maintenance.Config{
		CatchUpInterval:     cfg.CatchUpInterval,
		ConsistencyInterval: cfg.ConsistencyInterval,
	}, logger)

	// Create router
	router := api.NewRouter(handler.Deps{
		Store:     st,
		Standings: tracker,
		Cache:     appCache,
		DB:        pool,
		Live:      http.HandlerFunc(hub.ServeWS),
		Logger:    logger,
		Location:  loc,
	}, cfg, logger)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting LeagueDesk API",
			"addr", addr,
			"environment", cfg.Environment,
			"timezone", loc.String(),
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
