package recast

import (
	"context"
	"log/slog"
	"time"
)

// RetryPolicy re-runs a fallible operation up to a fixed number of attempts
// with a fixed sleep between them. There is no backoff growth or jitter; the
// wait blocks the calling goroutine and must not be taken while holding a
// lock.
type RetryPolicy struct {
	Attempts int
	Delay    time.Duration
	Logger   *slog.Logger
}

// Do executes op until it succeeds or the attempt budget is spent. The last
// error is returned to the caller unchanged.
func (p RetryPolicy) Do(ctx context.Context, op func() error) error {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}
	log := p.Logger
	if log == nil {
		log = slog.Default()
	}

	var last error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		last = op()
		if last == nil {
			return nil
		}
		if attempt < attempts {
			log.Warn("attempt failed, retrying",
				"attempt", attempt,
				"attempts", attempts,
				"delay", p.Delay.String(),
				"error", last)
			time.Sleep(p.Delay)
		}
	}
	return last
}

// Retry runs op under policy p and returns its value on the first success.
func Retry[T any](ctx context.Context, p RetryPolicy, op func() (T, error)) (T, error) {
	var out T
	err := p.Do(ctx, func() error {
		v, err := op()
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	return out, err
}
