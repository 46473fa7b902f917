package httputil

import (
	"context"
	"errors"
	"time"

	rerrors "github.com/matzehuels/robdd/pkg/errors"
)

// RetryableError marks a transient failure, such as a dropped connection or
// a 5xx answer, that [Retry] may attempt again.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Backoff controls [Retry]. The delay starts at Initial and doubles after
// every failed attempt, capped at Max.
type Backoff struct {
	Attempts int
	Initial  time.Duration
	Max      time.Duration
}

// DefaultBackoff is used by [RetryWithBackoff]: 3 attempts from one second,
// never waiting longer than ten seconds.
var DefaultBackoff = Backoff{Attempts: 3, Initial: time.Second, Max: 10 * time.Second}

// Retry calls fn until it succeeds, fails permanently or b.Attempts calls
// have been made.
//
// Errors wrapped in [RetryableError] are retried after the current delay. A
// [rerrors.RateLimitedError] is retried only when its RetryAfter fits under
// b.Max; the wait is then the longer of RetryAfter and the current delay.
// Every other error is returned at once. Cancelling ctx stops the wait and
// returns ctx.Err().
func Retry(ctx context.Context, b Backoff, fn func() error) error {
	attempts := max(b.Attempts, 1)
	delay := b.Initial
	var lastErr error

	for i := range attempts {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		wait, ok := b.wait(lastErr, delay)
		if !ok || i == attempts-1 {
			return lastErr
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
		delay *= 2
		if b.Max > 0 && delay > b.Max {
			delay = b.Max
		}
	}
	return lastErr
}

// wait reports how long to sleep before retrying err, and whether to retry
// at all.
func (b Backoff) wait(err error, delay time.Duration) (time.Duration, bool) {
	var limited *rerrors.RateLimitedError
	if errors.As(err, &limited) {
		after := time.Duration(limited.RetryAfter) * time.Second
		if b.Max > 0 && after > b.Max {
			return 0, false
		}
		return max(after, delay), true
	}
	return delay, isRetryable(err)
}

// RetryWithBackoff is [Retry] with [DefaultBackoff].
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return Retry(ctx, DefaultBackoff, fn)
}

func isRetryable(err error) bool {
	return errors.As(err, new(*RetryableError))
}
