// Package retry provides the single retry policy used by every
// store-touching operation: capped exponential backoff with an
// injectable sleeper so tests can observe delays instead of waiting
// through them.
package retry

import (
	"context"
	"time"
)

// Policy describes how an operation is retried.  The zero value is
// not usable; start from Default().
type Policy struct {
	// MaxRetries is the highest attempt index.  Attempts are numbered
	// 0..MaxRetries, so MaxRetries=5 allows six tries in total.
	MaxRetries int
	// BaseDelay is the wait after the first failed attempt.
	BaseDelay time.Duration
	// MaxDelay caps the exponential growth.
	MaxDelay time.Duration
	// Retryable reports whether an error is worth another attempt.
	// Nil means every error is retryable.
	Retryable func(error) bool
	// Sleep waits between attempts.  Nil means time.Sleep.  Tests
	// inject a recorder here.
	Sleep func(time.Duration)
}

// Default returns the policy shared by synchronization operations:
// up to five retries, 500ms doubling to a 10s cap.
func Default() Policy {
	return Policy{
		MaxRetries: 5,
		BaseDelay:  500 * time.Millisecond,
		MaxDelay:   10 * time.Second,
	}
}

// Backoff returns the delay after a failed attempt n (zero-based):
// min(BaseDelay * 2^n, MaxDelay).
func (p Policy) Backoff(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	d := p.BaseDelay
	for i := 0; i < attempt; i++ {
		d *= 2
		if d >= p.MaxDelay {
			return p.MaxDelay
		}
	}
	if d > p.MaxDelay {
		return p.MaxDelay
	}
	return d
}

// Wait sleeps for d via the injected sleeper, or time.Sleep when
// none is set.  Exposed for callers that drive their own attempt
// loop but should share the policy's (possibly faked) clock.
func (p Policy) Wait(d time.Duration) {
	if p.Sleep != nil {
		p.Sleep(d)
		return
	}
	time.Sleep(d)
}

// Do runs fn until it succeeds, the error is not retryable, the
// context is cancelled, or attempts are exhausted.  The last error is
// returned on failure.
func (p Policy) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	var last error
	for attempt := 0; attempt <= p.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		last = fn(ctx)
		if last == nil {
			return nil
		}
		if p.Retryable != nil && !p.Retryable(last) {
			return last
		}
		if attempt < p.MaxRetries {
			p.Wait(p.Backoff(attempt))
		}
	}
	return last
}
