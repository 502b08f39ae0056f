package app

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/estore-next/internal/logger"

	"go.uber.org/zap"
)

type countingEvictor struct {
	mu    sync.Mutex
	calls int
	idle  time.Duration
}

func (e *countingEvictor) EvictIdle(idle time.Duration) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls++
	e.idle = idle
	return 1
}

func (e *countingEvictor) Len() int { return 0 }

func (e *countingEvictor) snapshot() (int, time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls, e.idle
}

func TestNewDeviceSweeperDisabled(t *testing.T) {
	if s := NewDeviceSweeper(&countingEvictor{}, 0, time.Second); s != nil {
		t.Fatalf("idle 0 should disable the sweeper")
	}
	if s := NewDeviceSweeper(nil, time.Minute, time.Second); s != nil {
		t.Fatalf("nil registry should disable the sweeper")
	}
	s := NewDeviceSweeper(&countingEvictor{}, 10*time.Second, 0)
	if s == nil || s.interval != 10*time.Second {
		t.Fatalf("interval should fall back to idle when shorter than default, got %+v", s)
	}
}

func TestDeviceSweeperLoop(t *testing.T) {
	logger.L = zap.NewNop()
	evictor := &countingEvictor{}
	s := NewDeviceSweeper(evictor, 30*time.Minute, 5*time.Millisecond)

	done := make(chan error, 1)
	go func() { done <- s.Start(context.Background()) }()

	deadline := time.Now().Add(2 * time.Second)
	for {
		calls, idle := evictor.snapshot()
		if calls >= 2 {
			if idle != 30*time.Minute {
				t.Fatalf("idle want 30m got %s", idle)
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("sweeper did not tick, calls=%d", calls)
		}
		time.Sleep(5 * time.Millisecond)
	}

	if err := s.Stop(context.Background()); err != nil {
		t.Fatalf("stop failed: %v", err)
	}
	_ = s.Stop(context.Background())
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("start returned error: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("sweeper did not stop")
	}
}

func TestRunnerStopsOnContextCancel(t *testing.T) {
	evictor := &countingEvictor{}
	s := NewDeviceSweeper(evictor, time.Minute, time.Hour)
	closed := false
	runner := NewRunner(s)
	runner.OnShutdown(func() error {
		closed = true
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runner.Run(ctx, time.Second, zap.NewNop().Sugar()) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("runner should treat cancel as clean exit, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("runner did not exit")
	}
	if !closed {
		t.Fatalf("shutdown hook not called")
	}
}
