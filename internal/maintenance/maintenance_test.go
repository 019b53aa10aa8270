package maintenance

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

type countingInvalidator struct{ n atomic.Int32 }

func (c *countingInvalidator) Invalidate(string) { c.n.Add(1) }

type fakeAuditor struct {
	count int
	err   error
	calls atomic.Int32
}

func (f *fakeAuditor) CountFinishedUnplayed(context.Context) (int, error) {
	f.calls.Add(1)
	return f.count, f.err
}

func quiet() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestStartRunsTasks(t *testing.T) {
	inv := &countingInvalidator{}
	audit := &fakeAuditor{count: 2}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		Start(ctx, inv, audit, Config{CatchUpInterval: 5 * time.Millisecond, ConsistencyInterval: 5 * time.Millisecond}, quiet())
		close(done)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for inv.n.Load() < 2 || audit.calls.Load() < 2 {
		if time.Now().After(deadline) {
			t.Fatalf("tasks did not run: catchup=%d consistency=%d", inv.n.Load(), audit.calls.Load())
		}
		time.Sleep(5 * time.Millisecond)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not return after cancel")
	}
}

func TestDisabledTasks(t *testing.T) {
	inv := &countingInvalidator{}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	Start(ctx, inv, nil, Config{}, quiet())
	if inv.n.Load() != 0 {
		t.Errorf("disabled catch-up ran %d times", inv.n.Load())
	}
}

func TestConsistencySweep(t *testing.T) {
	if n := consistencySweep(context.Background(), &fakeAuditor{count: 3}, quiet()); n != 3 {
		t.Errorf("sweep = %d, want 3", n)
	}
	if n := consistencySweep(context.Background(), &fakeAuditor{err: errors.New("down")}, quiet()); n != 0 {
		t.Errorf("sweep on error = %d, want 0", n)
	}
}

func TestRunLoopLogsTaskName(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan time.Time, 1)
	ch <- time.Now()

	runs := 0
	runLoop(ctx, ch, "catchup", logger, func() {
		runs++
		cancel()
	})

	if runs != 1 {
		t.Fatalf("task ran %d times, want 1", runs)
	}
	if out := buf.String(); !strings.Contains(out, "task=catchup") {
		t.Errorf("log output missing task name: %q", out)
	}
}
