package graceful_test

import (
	"context"
	"os"
	"sync"
	"syscall"
	"testing"
	"time"

	"finledger/pkg/shutdown"
)

func sendTermSignal(t *testing.T) {
	t.Helper()

	process, err := os.FindProcess(os.Getpid())
	if err != nil {
		t.Fatalf("Failed to find process: %v", err)
	}
	if err := process.Signal(syscall.SIGTERM); err != nil {
		t.Fatalf("Failed to send signal: %v", err)
	}
}

func TestWaitExecutesHooksInOrder(t *testing.T) {
	var mu sync.Mutex
	var order []string

	record := func(name string) shutdown.Hook {
		return shutdown.Hook{
			Name: name,
			Stop: func(ctx context.Context) error {
				mu.Lock()
				order = append(order, name)
				mu.Unlock()
				return nil
			},
		}
	}

	waitDone := make(chan struct{})
	go func() {
		shutdown.Wait(time.Second,
			record("http_server"),
			record("redis_cache"),
			record("postgres_pool"))
		close(waitDone)
	}()

	time.Sleep(100 * time.Millisecond)
	sendTermSignal(t)

	select {
	case <-waitDone:
	case <-time.After(2 * time.Second):
		t.Fatal("Wait did not return after signal")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(order) != 3 {
		t.Fatalf("Expected 3 hooks to run, got %d", len(order))
	}
	if order[0] != "http_server" || order[1] != "redis_cache" || order[2] != "postgres_pool" {
		t.Errorf("Hooks ran out of order: %v", order)
	}
}

func TestWaitContinuesAfterHookError(t *testing.T) {
	lastCalled := make(chan struct{})

	failing := shutdown.Hook{
		Name: "redis_cache",
		Stop: func(ctx context.Context) error {
			return context.DeadlineExceeded
		},
	}
	last := shutdown.Hook{
		Name: "postgres_pool",
		Stop: func(ctx context.Context) error {
			close(lastCalled)
			return nil
		},
	}

	go func() {
		shutdown.Wait(time.Second, failing, last)
	}()

	time.Sleep(100 * time.Millisecond)
	sendTermSignal(t)

	select {
	case <-lastCalled:
	case <-time.After(2 * time.Second):
		t.Error("Hook after a failing one was not called")
	}
}

func TestWaitRespectsTimeout(t *testing.T) {
	var mu sync.Mutex
	completed := false

	waitDone := make(chan struct{})

	slow := shutdown.Hook{
		Name: "http_server",
		Stop: func(ctx context.Context) error {
			select {
			case <-time.After(2 * time.Second):
				mu.Lock()
				completed = true
				mu.Unlock()
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	}

	start := time.Now()
	go func() {
		shutdown.Wait(500*time.Millisecond, slow)
		close(waitDone)
	}()

	time.Sleep(100 * time.Millisecond)
	sendTermSignal(t)

	select {
	case <-waitDone:
	case <-time.After(2 * time.Second):
		t.Fatal("Wait did not return after timeout")
	}

	if elapsed := time.Since(start); elapsed >= 2*time.Second {
		t.Errorf("Wait blocked for %v, expected to stop at the timeout", elapsed)
	}

	mu.Lock()
	defer mu.Unlock()
	if completed {
		t.Error("Slow hook completed despite the timeout")
	}
}
