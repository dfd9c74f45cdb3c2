package utils

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestWaitForFunc(t *testing.T) {
	t.Parallel()

	var slept time.Duration
	err := WaitForFunc(context.Background(), 3*time.Second, func(d time.Duration) { slept = d })
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if slept != 3*time.Second {
		t.Fatalf("expected sleeper to receive 3s, got %s", slept)
	}
}

func TestWaitForFuncCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	release := make(chan struct{})
	defer close(release)

	err := WaitForFunc(ctx, time.Hour, func(time.Duration) { <-release })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestWaitForZeroDuration(t *testing.T) {
	t.Parallel()

	if err := WaitFor(context.Background(), 0); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}
