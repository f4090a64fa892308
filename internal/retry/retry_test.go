package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackoff_DoublesAndCaps(t *testing.T) {
	p := Default()
	assert.Equal(t, 500*time.Millisecond, p.Backoff(0))
	assert.Equal(t, 1000*time.Millisecond, p.Backoff(1))
	assert.Equal(t, 2000*time.Millisecond, p.Backoff(2))
	assert.Equal(t, 4000*time.Millisecond, p.Backoff(3))
	assert.Equal(t, 8000*time.Millisecond, p.Backoff(4))
	assert.Equal(t, 10*time.Second, p.Backoff(5))
	assert.Equal(t, 10*time.Second, p.Backoff(20))
	assert.Equal(t, 500*time.Millisecond, p.Backoff(-1))
}

func TestDo_SucceedsAfterFailures(t *testing.T) {
	var delays []time.Duration
	p := Default()
	p.Sleep = func(d time.Duration) { delays = append(delays, d) }

	calls := 0
	err := p.Do(context.Background(), func(context.Context) error {
		calls++
		if calls <= 4 {
			return errors.New("transient")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 5, calls)
	assert.Equal(t, []time.Duration{
		500 * time.Millisecond,
		1000 * time.Millisecond,
		2000 * time.Millisecond,
		4000 * time.Millisecond,
	}, delays, "delays are monotonically non-decreasing")
}

func TestDo_ExhaustsRetries(t *testing.T) {
	p := Default()
	p.Sleep = func(time.Duration) {}

	calls := 0
	boom := errors.New("boom")
	err := p.Do(context.Background(), func(context.Context) error {
		calls++
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 6, calls, "attempts 0..MaxRetries")
}

func TestDo_NonRetryableStopsImmediately(t *testing.T) {
	p := Default()
	p.Sleep = func(time.Duration) { t.Fatal("should not sleep") }
	fatal := errors.New("validation")
	p.Retryable = func(err error) bool { return !errors.Is(err, fatal) }

	calls := 0
	err := p.Do(context.Background(), func(context.Context) error {
		calls++
		return fatal
	})
	assert.ErrorIs(t, err, fatal)
	assert.Equal(t, 1, calls)
}

func TestDo_ContextCancelled(t *testing.T) {
	p := Default()
	p.Sleep = func(time.Duration) {}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := p.Do(ctx, func(context.Context) error { return errors.New("never tried") })
	assert.ErrorIs(t, err, context.Canceled)
}
