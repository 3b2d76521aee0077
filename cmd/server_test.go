package cmd

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
)

type countingCleaner struct{ calls atomic.Int32 }

func (c *countingCleaner) CleanExpiredSessions(context.Context) (int64, error) {
	c.calls.Add(1)
	return 0, nil
}

func TestRunSessionCleanupStopsWithContext(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cleaner := &countingCleaner{}

	done := make(chan struct{})
	go func() {
		RunSessionCleanup(ctx, cleaner, 5*time.Millisecond, zap.NewNop())
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for cleaner.calls.Load() < 2 {
		select {
		case <-deadline:
			t.Fatal("cleaner was not called")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("cleanup loop did not stop")
	}
}

func TestAPIServerShutsDownOnCancel(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() {
		errCh <- APIServer(ctx, http.NotFoundHandler(), "0", time.Second, zap.NewNop())
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("expected clean shutdown, got %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}
