package event

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Handler receives one event. A returned error is reported and does not stop dispatch.
type Handler func(Event) error

// Handle adapts a typed function into a Handler. Payloads of another type are
// reported as handler failures.
func Handle[T Event](fn func(T) error) Handler {
	return func(e Event) error {
		typed, ok := e.(T)
		if !ok {
			return fmt.Errorf("event: unexpected payload %T for %s", e, e.Name())
		}
		return fn(typed)
	}
}

// Subscription identifies one registered handler.
type Subscription struct {
	bus  *Bus
	name Name
	id   uint64
}

// ID returns the subscription's bus-unique id.
func (s Subscription) ID() uint64 { return s.id }

// Unsubscribe removes the handler. Safe to call more than once.
func (s Subscription) Unsubscribe() {
	if s.bus != nil {
		s.bus.Off(s)
	}
}

type entry struct {
	id      uint64
	handler Handler
}

// Bus dispatches events synchronously to handlers in registration order.
//
// Invariant: a handler that fails or panics never prevents the remaining
// handlers of the same Emit from running.
type Bus struct {
	mu     sync.Mutex
	nextID uint64
	subs   map[Name][]entry
	logger *zap.Logger
}

// NewBus returns an empty Bus. A nil logger discards handler failure reports.
func NewBus(logger *zap.Logger) *Bus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bus{subs: make(map[Name][]entry), logger: logger}
}

// On registers h for events named name.
//
// Precondition: h must be non-nil.
func (b *Bus) On(name Name, h Handler) Subscription {
	if h == nil {
		panic("event: Bus.On requires a non-nil handler")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	b.subs[name] = append(b.subs[name], entry{id: b.nextID, handler: h})
	return Subscription{bus: b, name: name, id: b.nextID}
}

// Off removes the handler registered under sub.
func (b *Bus) Off(sub Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	list := b.subs[sub.name]
	for i, e := range list {
		if e.id == sub.id {
			b.subs[sub.name] = append(list[:i:i], list[i+1:]...)
			return
		}
	}
}

// Count returns the number of handlers registered for name.
func (b *Bus) Count(name Name) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[name])
}

// Emit delivers e to every handler registered when Emit was called.
// Handlers added during dispatch are not called in this pass.
func (b *Bus) Emit(e Event) {
	b.mu.Lock()
	snapshot := append([]entry(nil), b.subs[e.Name()]...)
	b.mu.Unlock()

	for _, s := range snapshot {
		if err := b.dispatch(s, e); err != nil {
			b.logger.Error("event handler failed",
				zap.String("event", string(e.Name())),
				zap.Uint64("subscription", s.id),
				zap.Error(err),
			)
		}
	}
}

func (b *Bus) dispatch(s entry, e Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return s.handler(e)
}
