package cleanup

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

type countingPurger struct {
	calls atomic.Int64
}

func (p *countingPurger) Cleanup(ctx context.Context) (int64, error) {
	p.calls.Add(1)
	return 0, nil
}

func TestWorkerSweepsOnInterval(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	purger := &countingPurger{}
	StartWorker(ctx, purger, 10*time.Millisecond)

	deadline := time.After(2 * time.Second)
	for purger.calls.Load() < 2 {
		select {
		case <-deadline:
			t.Fatalf("expected at least 2 sweeps, got %d", purger.calls.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestWorkerStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	purger := &countingPurger{}
	StartWorker(ctx, purger, 5*time.Millisecond)

	time.Sleep(20 * time.Millisecond)
	cancel()
	time.Sleep(20 * time.Millisecond)

	count := purger.calls.Load()
	time.Sleep(30 * time.Millisecond)
	if purger.calls.Load() != count {
		t.Fatal("worker kept sweeping after cancellation")
	}
}
