package event

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type testEvent struct {
	kind Kind
}

func (e *testEvent) EventKind() Kind { return e.kind }

func TestBus_Emit(t *testing.T) {
	const kind Kind = "test.event"

	t.Run("runs handlers in registration order", func(t *testing.T) {
		bus := NewBus()
		var order []int
		for i := 0; i < 3; i++ {
			i := i
			bus.Register(kind, func(ctx context.Context, evt Event) error {
				order = append(order, i)
				return nil
			})
		}

		if err := bus.Emit(context.Background(), &testEvent{kind: kind}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(order) != 3 || order[0] != 0 || order[1] != 1 || order[2] != 2 {
			t.Errorf("handlers ran out of order: %v", order)
		}
	})

	t.Run("first handler error aborts the emit", func(t *testing.T) {
		bus := NewBus()
		boom := errors.New("boom")
		var secondRan bool

		bus.Register(kind, func(ctx context.Context, evt Event) error {
			return boom
		})
		bus.Register(kind, func(ctx context.Context, evt Event) error {
			secondRan = true
			return nil
		})

		err := bus.Emit(context.Background(), &testEvent{kind: kind})
		if !errors.Is(err, boom) {
			t.Fatalf("expected wrapped handler error, got %v", err)
		}
		if !strings.Contains(err.Error(), string(kind)) {
			t.Errorf("error should name the event kind: %v", err)
		}
		if secondRan {
			t.Error("second handler must not run after a failure")
		}
	})

	t.Run("event with no handlers is a no-op", func(t *testing.T) {
		bus := NewBus()
		if err := bus.Emit(context.Background(), &testEvent{kind: "nobody.listens"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("handlers are scoped to their kind", func(t *testing.T) {
		bus := NewBus()
		var ran bool
		bus.Register("other.kind", func(ctx context.Context, evt Event) error {
			ran = true
			return nil
		})

		if err := bus.Emit(context.Background(), &testEvent{kind: kind}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ran {
			t.Error("handler for a different kind must not run")
		}
	})
}
