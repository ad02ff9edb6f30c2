package common

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"github.com/kilowatch/kilowatch/pkg/log"
)

// RetryOptions controls Retry's backoff behavior.
type RetryOptions struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int
	// BaseDelay is doubled after each failed attempt.
	BaseDelay time.Duration
}

// DefaultRetryOptions matches the upstream catalogue's rate-limiting guidance.
var DefaultRetryOptions = RetryOptions{
	MaxAttempts: 4,
	BaseDelay:   2 * time.Second,
}

// Retry runs fn until it succeeds or MaxAttempts is exhausted, sleeping an
// exponentially growing delay with up to 1s of jitter between attempts. The
// context cancels both fn (via its own plumbing) and the sleeps.
func Retry(ctx context.Context, opts RetryOptions, fn func(ctx context.Context) error) error {
	if opts.MaxAttempts <= 0 {
		opts = DefaultRetryOptions
	}

	var lastErr error
	for attempt := 0; attempt < opts.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if attempt == opts.MaxAttempts-1 {
			break
		}

		delay := opts.BaseDelay<<uint(attempt) + time.Duration(rand.Int63n(int64(time.Second)))
		log.Ctx(ctx).WarnContext(ctx, "attempt failed, retrying",
			slog.Int("attempt", attempt+1),
			slog.Duration("delay", delay),
			slog.Any("error", lastErr))

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return lastErr
}
