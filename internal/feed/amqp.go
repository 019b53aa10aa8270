package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/streadway/amqp"
)

// ConsumeAMQP binds an exclusive queue to a fanout exchange and invalidates
// on every delivery. It reconnects with backoff until ctx is cancelled.
// Intended to be called with `go`.
func ConsumeAMQP(ctx context.Context, url, exchange string, inv *Invalidator, logger *slog.Logger) {
	backoff := reconnectBackoff

	for {
		err := consumeOnce(ctx, url, exchange, inv, logger, func() { backoff = reconnectBackoff })
		if ctx.Err() != nil {
			logger.Info("AMQP consumer stopped (context cancelled)")
			return
		}

		logger.Error("AMQP consumer disconnected, reconnecting...",
			"error", err, "backoff", backoff)

		select {
		case <-time.After(backoff):
			backoff = min(backoff*2, maxReconnect)
		case <-ctx.Done():
			return
		}
	}
}

func declareExchange(ch *amqp.Channel, exchange string) error {
	return ch.ExchangeDeclare(
		exchange, // name
		"fanout", // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
}

func consumeOnce(ctx context.Context, url, exchange string, inv *Invalidator, logger *slog.Logger, connected func()) error {
	conn, err := amqp.DialConfig(url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
	})
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	defer ch.Close()

	if err := declareExchange(ch, exchange); err != nil {
		return fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	queue, err := ch.QueueDeclare(
		"",    // server-named
		false, // durable
		true,  // delete when unused
		true,  // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	if err := ch.QueueBind(queue.Name, "", exchange, false, nil); err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}

	deliveries, err := ch.Consume(
		queue.Name,
		"",    // consumer tag
		true,  // auto-ack
		true,  // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}

	logger.Info("AMQP consumer connected", "exchange", exchange, "queue", queue.Name)
	connected()
	inv.Invalidate("amqp:connect")

	closed := conn.NotifyClose(make(chan *amqp.Error, 1))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case amqpErr := <-closed:
			if amqpErr == nil {
				return fmt.Errorf("connection closed")
			}
			return amqpErr
		case d, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("delivery channel closed")
			}
			inv.Invalidate("amqp")
			if event, err := ParseEvent(d.Body); err != nil {
				logger.Warn("Unrecognized AMQP change payload", "error", err)
			} else {
				logger.Debug("AMQP change event received",
					"entity", event.Entity, "op", event.Op, "id", event.ID)
			}
		}
	}
}

// Publisher republishes change events onto a fanout exchange so processes
// without a database listener (other API replicas, `league watch`) see them.
type Publisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
	logger   *slog.Logger
}

// NewPublisher dials the broker and declares the exchange.
func NewPublisher(url, exchange string, logger *slog.Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := declareExchange(ch, exchange); err != nil {
		conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}
	return &Publisher{conn: conn, ch: ch, exchange: exchange, logger: logger}, nil
}

// Publish sends ev. Failures are logged; the feed is advisory.
func (p *Publisher) Publish(ev Event) {
	body, err := json.Marshal(ev)
	if err != nil {
		return
	}
	err = p.ch.Publish(p.exchange, "", false, false, amqp.Publishing{
		ContentType: "application/json",
		Timestamp:   time.Now(),
		Body:        body,
	})
	if err != nil {
		p.logger.Warn("AMQP publish failed", "entity", ev.Entity, "id", ev.ID, "error", err)
	}
}

// Close closes the channel and connection.
func (p *Publisher) Close() error {
	p.ch.Close()
	return p.conn.Close()
}
