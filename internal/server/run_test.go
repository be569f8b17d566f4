package server

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestRunStopsOnCancel(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	cfg.Address = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, zap.NewNop(), cfg, "test")
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRunInvalidAddress(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	cfg.Address = "127.0.0.1:-1"

	if err := Run(context.Background(), zap.NewNop(), cfg, "test"); err == nil {
		t.Fatal("expected listen error for invalid address")
	}
}
