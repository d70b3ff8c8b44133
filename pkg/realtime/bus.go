package realtime

import "sync"

// EventKind names a semantic notification (token selected, canvas moved, ...).
// The concrete kinds are defined by the domain packages that publish them.
type EventKind string

// Event is one notification delivered to subscribers. The ID fields identify
// what the event is about; Data carries a kind-specific payload when the IDs
// are not enough (e.g. a canvas transform).
type Event struct {
	Kind    EventKind
	SceneID string
	TokenID string
	ActorID string
	UserID  string
	Data    any
}

// Handler receives events for a subscribed kind. Handlers run synchronously
// on the publisher's goroutine; long work should be handed off by the handler.
type Handler func(Event)

// Bus routes events to handlers by kind. Subscribe returns a cancel func that
// removes the handler; canceling twice is safe.
type Bus struct {
	mu   sync.Mutex
	next int
	subs map[EventKind]map[int]Handler
}

// NewBus creates an empty event bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[EventKind]map[int]Handler)}
}

// Subscribe registers a handler for one event kind.
func (b *Bus) Subscribe(kind EventKind, handler Handler) (cancel func()) {
	b.mu.Lock()
	b.next++
	id := b.next
	handlers, ok := b.subs[kind]
	if !ok {
		handlers = make(map[int]Handler)
		b.subs[kind] = handlers
	}
	handlers[id] = handler
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		if handlers, ok := b.subs[kind]; ok {
			delete(handlers, id)
		}
		b.mu.Unlock()
	}
}

// Publish delivers the event to every handler subscribed to its kind.
// Handlers are invoked outside the bus lock so they may publish or subscribe.
func (b *Bus) Publish(event Event) {
	b.mu.Lock()
	handlers := make([]Handler, 0, len(b.subs[event.Kind]))
	for _, h := range b.subs[event.Kind] {
		handlers = append(handlers, h)
	}
	b.mu.Unlock()
	for _, h := range handlers {
		h(event)
	}
}
