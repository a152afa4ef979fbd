// Package retry runs upstream operations under a bounded exponential backoff.
package retry

import (
	"context"
	"errors"
	"time"

	"github.com/custodia-labs/filesearch/internal/logger"
)

// Defaults used when a Policy leaves a field unset.
const (
	DefaultMaxAttempts = 3
	DefaultMinDelay    = time.Second
	DefaultMaxDelay    = 10 * time.Second
)

// Policy controls how an operation is retried.
type Policy struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int

	// MinDelay is the delay before the first retry.
	MinDelay time.Duration

	// MaxDelay caps every delay.
	MaxDelay time.Duration

	// RetryOn lists the error kinds worth retrying, matched with errors.Is.
	// Any other error is returned immediately.
	RetryOn []error

	// OnRetry is called once per retry, before sleeping. Optional.
	OnRetry func(attempt int, delay time.Duration, err error)

	// Sleep waits for d or until ctx is done. Defaults to a timer-based sleep.
	Sleep func(ctx context.Context, d time.Duration) error
}

// Delay returns the wait before retry n, where n counts failed attempts from 1.
// It is min(MaxDelay, MinDelay * 2^(n-1)).
func (p Policy) Delay(n int) time.Duration {
	p = p.withDefaults()
	d := p.MinDelay
	for i := 1; i < n; i++ {
		if d >= p.MaxDelay {
			break
		}
		d *= 2
	}
	if d > p.MaxDelay {
		d = p.MaxDelay
	}
	return d
}

// Retryable reports whether err matches one of the policy's retry kinds.
func (p Policy) Retryable(err error) bool {
	for _, kind := range p.RetryOn {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}

func (p Policy) withDefaults() Policy {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = DefaultMaxAttempts
	}
	if p.MinDelay <= 0 {
		p.MinDelay = DefaultMinDelay
	}
	if p.MaxDelay <= 0 {
		p.MaxDelay = DefaultMaxDelay
	}
	if p.MaxDelay < p.MinDelay {
		p.MaxDelay = p.MinDelay
	}
	if p.Sleep == nil {
		p.Sleep = Sleep
	}
	return p
}

// Do runs op until it succeeds, fails with a non-retryable error,
// or MaxAttempts is reached. The last error is returned unchanged.
// Attempts are strictly sequential.
func Do[T any](ctx context.Context, p Policy, op func(ctx context.Context) (T, error)) (T, error) {
	p = p.withDefaults()

	var zero T
	for attempt := 1; ; attempt++ {
		v, err := op(ctx)
		if err == nil {
			return v, nil
		}
		if attempt >= p.MaxAttempts || !p.Retryable(err) {
			return zero, err
		}

		delay := p.Delay(attempt)
		logger.Warn("retrying upstream call",
			"attempt", attempt,
			"max_attempts", p.MaxAttempts,
			"delay", delay,
			"error", err.Error(),
		)
		if p.OnRetry != nil {
			p.OnRetry(attempt, delay, err)
		}

		if sleepErr := p.Sleep(ctx, delay); sleepErr != nil {
			return zero, err
		}
	}
}

// Sleep waits for d or until ctx is done, whichever comes first.
func Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
