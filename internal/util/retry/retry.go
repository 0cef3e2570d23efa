// Package retry provides a small bounded-backoff helper for probes.
package retry

import (
	"context"
	"fmt"
	"time"
)

// Do runs op up to attempts times, doubling the delay between tries.
// Context cancellation is respected between attempts.
func Do(ctx context.Context, attempts int, initialDelay time.Duration, op func() error) error {
	if attempts < 1 {
		attempts = 1
	}

	delay := initialDelay
	var lastErr error

	for i := 0; i < attempts; i++ {
		if lastErr = op(); lastErr == nil {
			return nil
		}

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return fmt.Errorf("cancelled after %d attempts: %w", i+1, ctx.Err())
			case <-time.After(delay):
				delay *= 2
			}
		}
	}

	return fmt.Errorf("failed after %d attempts: %w", attempts, lastErr)
}
