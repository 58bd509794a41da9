package utils

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestWaitForZeroDuration(t *testing.T) {
	if err := WaitFor(context.Background(), 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestWaitForCompletes(t *testing.T) {
	old := sleep
	sleep = func(time.Duration) {}
	defer func() { sleep = old }()

	if err := WaitFor(context.Background(), time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestWaitForHonorsCancellation(t *testing.T) {
	old := sleep
	sleep = func(time.Duration) { select {} }
	defer func() { sleep = old }()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := WaitFor(ctx, time.Minute); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
