// Package retry provides a reusable bounded exponential-backoff executor
// for best-effort side effects that must not fail their caller outright.
package retry

import (
	"context"
	"time"
)

const (
	defaultMaxAttempts = 3
	defaultBaseDelay   = 1 * time.Second
	defaultMultiplier  = 2
)

// Policy describes a bounded exponential backoff: the delay before attempt
// n+1 is BaseDelay * Multiplier^(n-1).
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Multiplier  int
}

// DefaultPolicy returns the standard saga policy: 3 attempts with 1s and 2s
// pauses between them.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: defaultMaxAttempts,
		BaseDelay:   defaultBaseDelay,
		Multiplier:  defaultMultiplier,
	}
}

// Executor runs operations under a Policy.
type Executor struct {
	policy Policy
	sleep  func(ctx context.Context, d time.Duration) error
}

// NewExecutor creates an Executor for the given policy. Zero or negative
// policy fields fall back to the defaults.
func NewExecutor(policy Policy) *Executor {
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = defaultMaxAttempts
	}
	if policy.BaseDelay <= 0 {
		policy.BaseDelay = defaultBaseDelay
	}
	if policy.Multiplier < 1 {
		policy.Multiplier = defaultMultiplier
	}
	return &Executor{
		policy: policy,
		sleep:  sleepContext,
	}
}

// Do runs op until it succeeds or the attempt budget is exhausted, sleeping
// between attempts. It returns nil on the first success, the last operation
// error on exhaustion, or the context error if ctx is cancelled mid-backoff.
// The sleep blocks only the calling goroutine, never sibling requests.
func (e *Executor) Do(ctx context.Context, op func(ctx context.Context) error) error {
	delay := e.policy.BaseDelay

	var lastErr error
	for attempt := 1; attempt <= e.policy.MaxAttempts; attempt++ {
		lastErr = op(ctx)
		if lastErr == nil {
			return nil
		}

		if attempt == e.policy.MaxAttempts {
			break
		}
		if err := e.sleep(ctx, delay); err != nil {
			return err
		}
		delay *= time.Duration(e.policy.Multiplier)
	}
	return lastErr
}

// sleepContext waits for d or until ctx is done, whichever comes first.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
