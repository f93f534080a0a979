package eventbus

import (
	"sync"

	"listmenu/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventCursorMoved     = domain.EventCursorMoved
	EventWindowChanged   = domain.EventWindowChanged
	EventViewportResized = domain.EventViewportResized
	EventRedraw          = domain.EventRedraw
	EventKeyUnbound      = domain.EventKeyUnbound
	EventAccepted        = domain.EventAccepted
	EventAcceptIgnored   = domain.EventAcceptIgnored
	EventQuit            = domain.EventQuit
	EventConfigLoaded    = domain.EventConfigLoaded
	EventConfigSaved     = domain.EventConfigSaved
	EventScanCompleted   = domain.EventScanCompleted
)

// Re-export domain event types
type CursorMovedEvent = domain.CursorMovedEvent
type WindowChangedEvent = domain.WindowChangedEvent
type ViewportResizedEvent = domain.ViewportResizedEvent
type RedrawEvent = domain.RedrawEvent
type KeyUnboundEvent = domain.KeyUnboundEvent
type AcceptedEvent = domain.AcceptedEvent
type AcceptIgnoredEvent = domain.AcceptIgnoredEvent
type QuitEvent = domain.QuitEvent
type ConfigLoadedEvent = domain.ConfigLoadedEvent
type ConfigSavedEvent = domain.ConfigSavedEvent
type ScanCompletedEvent = domain.ScanCompletedEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
	SubscribeAll(handler EventHandler) func()
}

type subscription struct {
	id      uint64
	handler EventHandler
}

// bus delivers events synchronously on the publishing goroutine, in
// subscription order. Handlers must not block.
type bus struct {
	mu       sync.RWMutex
	nextID   uint64
	handlers map[EventType][]subscription
	all      []subscription
}

// New creates a new event bus
func New() EventBus {
	return &bus{
		handlers: make(map[EventType][]subscription),
	}
}

// Publish delivers an event to typed subscribers, then to catch-all subscribers
func (b *bus) Publish(event DomainEvent) {
	if event == nil {
		return
	}

	b.mu.RLock()
	typed := b.handlers[event.Type()]
	// Copy so handlers may subscribe or unsubscribe while we dispatch
	targets := make([]subscription, 0, len(typed)+len(b.all))
	targets = append(targets, typed...)
	targets = append(targets, b.all...)
	b.mu.RUnlock()

	for _, s := range targets {
		s.handler(event)
	}
}

// Subscribe subscribes to events of a specific type
// Returns an unsubscribe function
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.handlers[eventType] = remove(b.handlers[eventType], id)
	}
}

// SubscribeAll subscribes to every event published on the bus
func (b *bus) SubscribeAll(handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.all = append(b.all, subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.all = remove(b.all, id)
	}
}

func remove(subs []subscription, id uint64) []subscription {
	out := subs[:0:0]
	for _, s := range subs {
		if s.id != id {
			out = append(out, s)
		}
	}
	return out
}

// NullBus is a no-op implementation of EventBus
type NullBus struct{}

func (NullBus) Publish(DomainEvent) {}
func (NullBus) Subscribe(EventType, EventHandler) func() { return func() {} }
func (NullBus) SubscribeAll(EventHandler) func() { return func() {} }
