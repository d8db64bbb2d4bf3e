package app

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRun_StopsOnContextCancel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MetricsAddr = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, cfg)
	}()

	// Даём серверу подняться и останавливаем.
	time.Sleep(200 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop after context cancellation")
	}
}

func TestRun_FailsOnBadListenAddr(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MetricsAddr = "127.0.0.1:-1"

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := Run(ctx, cfg); err == nil || errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected listen error, got %v", err)
	}
}
