package feed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
)

const (
	reconnectBackoff = 5 * time.Second
	maxReconnect     = 30 * time.Second
)

// ListenPostgres holds a dedicated connection (not from the pool) listening
// on channel and invalidates on every notification, parseable or not. Each
// successful (re)connect also invalidates, since events sent while the
// connection was down are gone. Blocks until ctx is cancelled. Intended to
// be called with `go`.
//
// Decoded events are passed to each hook, for example to republish them.
func ListenPostgres(ctx context.Context, dbURL, channel string, inv *Invalidator, logger *slog.Logger, hooks ...func(Event)) {
	backoff := reconnectBackoff

	for {
		err := listenLoop(ctx, dbURL, channel, inv, logger, hooks, func() { backoff = reconnectBackoff })
		if ctx.Err() != nil {
			logger.Info("Change listener stopped (context cancelled)")
			return
		}

		logger.Error("Change listener disconnected, reconnecting...",
			"error", err, "backoff", backoff)

		select {
		case <-time.After(backoff):
			backoff = min(backoff*2, maxReconnect)
		case <-ctx.Done():
			return
		}
	}
}

// listenLoop runs a single listen session. Returns when the connection drops
// or the context is cancelled.
func listenLoop(ctx context.Context, dbURL, channel string, inv *Invalidator, logger *slog.Logger, hooks []func(Event), connected func()) error {
	conn, err := pgx.Connect(ctx, dbURL)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close(context.Background())

	_, err = conn.Exec(ctx, "LISTEN "+pgx.Identifier{channel}.Sanitize())
	if err != nil {
		return fmt.Errorf("LISTEN %s: %w", channel, err)
	}
	logger.Info("Change listener connected", "channel", channel)
	connected()
	inv.Invalidate("postgres:connect")

	for {
		notification, err := conn.WaitForNotification(ctx)
		if err != nil {
			return fmt.Errorf("wait for notification: %w", err)
		}

		inv.Invalidate("postgres")

		event, err := ParseEvent([]byte(notification.Payload))
		if err != nil {
			logger.Warn("Unrecognized change payload",
				"payload", notification.Payload, "error", err)
			continue
		}
		logger.Debug("Change event received",
			"entity", event.Entity, "op", event.Op, "id", event.ID)

		for _, hook := range hooks {
			hook(event)
		}
	}
}
