package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

// stubSleep records requested delays without actually sleeping.
func stubSleep(delays *[]time.Duration) func(ctx context.Context, d time.Duration) error {
	return func(ctx context.Context, d time.Duration) error {
		*delays = append(*delays, d)
		return ctx.Err()
	}
}

func TestExecutor_Do(t *testing.T) {
	t.Run("returns nil on first success without sleeping", func(t *testing.T) {
		var delays []time.Duration
		executor := NewExecutor(DefaultPolicy())
		executor.sleep = stubSleep(&delays)

		calls := 0
		err := executor.Do(context.Background(), func(ctx context.Context) error {
			calls++
			return nil
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if calls != 1 {
			t.Errorf("expected 1 call, got %d", calls)
		}
		if len(delays) != 0 {
			t.Errorf("expected no sleeps, got %v", delays)
		}
	})

	t.Run("succeeds on a later attempt", func(t *testing.T) {
		var delays []time.Duration
		executor := NewExecutor(DefaultPolicy())
		executor.sleep = stubSleep(&delays)

		calls := 0
		err := executor.Do(context.Background(), func(ctx context.Context) error {
			calls++
			if calls < 3 {
				return errors.New("transient")
			}
			return nil
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if calls != 3 {
			t.Errorf("expected 3 calls, got %d", calls)
		}
	})

	t.Run("backs off exponentially between attempts", func(t *testing.T) {
		var delays []time.Duration
		executor := NewExecutor(Policy{MaxAttempts: 3, BaseDelay: 1 * time.Second, Multiplier: 2})
		executor.sleep = stubSleep(&delays)

		failure := errors.New("still broken")
		err := executor.Do(context.Background(), func(ctx context.Context) error {
			return failure
		})
		if !errors.Is(err, failure) {
			t.Fatalf("expected the last operation error, got %v", err)
		}

		want := []time.Duration{1 * time.Second, 2 * time.Second}
		if len(delays) != len(want) {
			t.Fatalf("expected %d sleeps, got %v", len(want), delays)
		}
		for i, d := range delays {
			if d != want[i] {
				t.Errorf("sleep %d: got %v, want %v", i, d, want[i])
			}
		}
	})

	t.Run("returns the last error on exhaustion", func(t *testing.T) {
		var delays []time.Duration
		executor := NewExecutor(Policy{MaxAttempts: 2, BaseDelay: time.Millisecond, Multiplier: 2})
		executor.sleep = stubSleep(&delays)

		first := errors.New("first failure")
		last := errors.New("last failure")
		calls := 0
		err := executor.Do(context.Background(), func(ctx context.Context) error {
			calls++
			if calls == 1 {
				return first
			}
			return last
		})
		if !errors.Is(err, last) {
			t.Errorf("expected last failure, got %v", err)
		}
		if calls != 2 {
			t.Errorf("expected 2 calls, got %d", calls)
		}
	})

	t.Run("stops when the context is cancelled mid-backoff", func(t *testing.T) {
		executor := NewExecutor(DefaultPolicy())
		ctx, cancel := context.WithCancel(context.Background())

		calls := 0
		executor.sleep = func(ctx context.Context, d time.Duration) error {
			cancel()
			return ctx.Err()
		}

		err := executor.Do(ctx, func(ctx context.Context) error {
			calls++
			return errors.New("failing")
		})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if calls != 1 {
			t.Errorf("expected 1 call before cancellation, got %d", calls)
		}
	})
}

func TestNewExecutor_Defaults(t *testing.T) {
	executor := NewExecutor(Policy{})
	if executor.policy.MaxAttempts != defaultMaxAttempts {
		t.Errorf("max attempts %d, want %d", executor.policy.MaxAttempts, defaultMaxAttempts)
	}
	if executor.policy.BaseDelay != defaultBaseDelay {
		t.Errorf("base delay %v, want %v", executor.policy.BaseDelay, defaultBaseDelay)
	}
	if executor.policy.Multiplier != defaultMultiplier {
		t.Errorf("multiplier %d, want %d", executor.policy.Multiplier, defaultMultiplier)
	}
}
