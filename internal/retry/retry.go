// Package retry provides a small exponential-backoff policy for calls to
// external collaborators. It is applied at call sites only; the pure
// segmentation and scheduling functions never retry.
package retry

import (
	"context"
	"fmt"
	"time"
)

// Policy configures retry behavior.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Multiplier  float64
}

// Default mirrors the transcription collaborator's historical behavior:
// three attempts, 1s/2s/4s backoff.
func Default() Policy {
	return Policy{MaxAttempts: 3, BaseDelay: time.Second, Multiplier: 2}
}

// Do runs op until it succeeds, the attempts are exhausted, or ctx is
// canceled. The last error is wrapped with the attempt count.
func (p Policy) Do(ctx context.Context, op func(ctx context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	delay := p.BaseDelay
	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = op(ctx)
		if lastErr == nil {
			return nil
		}
		if attempt == attempts {
			break
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay = time.Duration(float64(delay) * p.Multiplier)
	}

	return fmt.Errorf("after %d attempts: %w", attempts, lastErr)
}
