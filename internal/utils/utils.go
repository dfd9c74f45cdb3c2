package utils

import (
	"context"
	"strings"
	"time"
)

var sleep = time.Sleep

// WaitFor blocks for d or until ctx is done, whichever comes first.
func WaitFor(ctx context.Context, d time.Duration) error {
	return WaitForFunc(ctx, d, sleep)
}

// WaitForFunc is WaitFor with a caller-provided sleeper, so that packages can
// stub out the delay in tests.
func WaitForFunc(ctx context.Context, d time.Duration, sleeper func(time.Duration)) error {
	if d <= 0 {
		return ctx.Err()
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		sleeper(d)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}

// Truncate trims s and cuts it to at most limit runes, appending an ellipsis
// when it had to cut. A non-positive limit yields an empty string.
func Truncate(s string, limit int) string {
	s = strings.TrimSpace(s)
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

// TruncateForLog shortens the provided string for log previews.
func TruncateForLog(s string, limit int) string {
	return Truncate(s, limit)
}
