package event

import (
	"context"
	"fmt"
	"sync"
)

// Handler reacts to one event. A non-nil error aborts the emit and
// propagates to the emitter, which is expected to roll back its unit of work.
type Handler func(ctx context.Context, evt Event) error

// Bus is a process-wide registry mapping event kinds to ordered handler
// lists. Registration happens once at startup; Emit may run concurrently
// across requests.
type Bus struct {
	mu       sync.RWMutex
	handlers map[Kind][]Handler
}

// NewBus creates an empty Bus.
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[Kind][]Handler),
	}
}

// Register appends handler to the list for kind. Multiple registrations for
// the same kind are legal and all run, in registration order.
func (b *Bus) Register(kind Kind, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[kind] = append(b.handlers[kind], handler)
}

// Emit invokes every handler registered for the event's kind, strictly in
// registration order, waiting for each before starting the next. Handlers
// for one emit often share a single database transaction, and concurrent
// statements on one connection are not allowed. An event with no handlers
// is a no-op. The first handler error aborts the emit and is returned.
func (b *Bus) Emit(ctx context.Context, evt Event) error {
	b.mu.RLock()
	handlers := b.handlers[evt.EventKind()]
	b.mu.RUnlock()

	for i, handler := range handlers {
		if err := handler(ctx, evt); err != nil {
			return fmt.Errorf("event %s handler %d: %w", evt.EventKind(), i, err)
		}
	}
	return nil
}
