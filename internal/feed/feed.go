// Package feed turns change notifications from the match store into opaque
// invalidate signals. Payloads are decoded for logging only: consumers must
// re-snapshot rather than patch derived state from an event, because
// notifications can arrive out of order, be coalesced, or be lost during a
// reconnect.
package feed

import (
	"encoding/json"
	"fmt"
	"time"
)

// Signal tells a consumer its cached view is stale.
type Signal struct {
	Source string
	At     time.Time
}

// Invalidator is a coalescing signal channel. Any number of Invalidate calls
// between two receives collapse into one pending signal, so a slow consumer
// never blocks the producers and never sees a backlog.
type Invalidator struct {
	ch  chan Signal
	now func() time.Time
}

// NewInvalidator returns an Invalidator with one pending slot.
func NewInvalidator() *Invalidator {
	return &Invalidator{ch: make(chan Signal, 1), now: time.Now}
}

// Invalidate queues a signal unless one is already pending.
func (i *Invalidator) Invalidate(source string) {
	select {
	case i.ch <- Signal{Source: source, At: i.now()}:
	default:
	}
}

// C is the receive side.
func (i *Invalidator) C() <-chan Signal { return i.ch }

// Entity and Op values carried by change events.
const (
	EntityTeam  = "team"
	EntityMatch = "match"

	OpInsert = "insert"
	OpUpdate = "update"
	OpDelete = "delete"
)

// Event is the row-level payload emitted by the notify_league_changed
// trigger: {"entity":"match","op":"update","id":42,"ts":1710000000}.
type Event struct {
	Entity    string `json:"entity"`
	Op        string `json:"op"`
	ID        int    `json:"id"`
	Timestamp int64  `json:"ts,omitempty"`
}

// ParseEvent decodes and validates a change payload.
func ParseEvent(payload []byte) (Event, error) {
	var ev Event
	if err := json.Unmarshal(payload, &ev); err != nil {
		return ev, fmt.Errorf("decode change event: %w", err)
	}
	switch ev.Entity {
	case EntityTeam, EntityMatch:
	default:
		return ev, fmt.Errorf("change event: unknown entity %q", ev.Entity)
	}
	switch ev.Op {
	case OpInsert, OpUpdate, OpDelete:
	default:
		return ev, fmt.Errorf("change event: unknown op %q", ev.Op)
	}
	return ev, nil
}
