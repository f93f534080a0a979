package eventbus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishDeliversSynchronously(t *testing.T) {
	b := New()
	var got []DomainEvent
	b.Subscribe(EventCursorMoved, func(e DomainEvent) { got = append(got, e) })

	b.Publish(CursorMovedEvent{OldIndex: 0, NewIndex: 1})
	b.Publish(WindowChangedEvent{Start: 0, End: 9, Height: 10})

	require.Len(t, got, 1, "only the typed subscriber's event should arrive")
	assert.Equal(t, CursorMovedEvent{OldIndex: 0, NewIndex: 1}, got[0])
}

func TestSubscribeAllSeesEveryEvent(t *testing.T) {
	b := New()
	var types []EventType
	b.SubscribeAll(func(e DomainEvent) { types = append(types, e.Type()) })

	b.Publish(CursorMovedEvent{})
	b.Publish(QuitEvent{})

	assert.Equal(t, []EventType{EventCursorMoved, EventQuit}, types)
}

func TestTypedHandlersRunBeforeCatchAll(t *testing.T) {
	b := New()
	var order []string
	b.SubscribeAll(func(DomainEvent) { order = append(order, "all") })
	b.Subscribe(EventQuit, func(DomainEvent) { order = append(order, "typed") })

	b.Publish(QuitEvent{})

	assert.Equal(t, []string{"typed", "all"}, order)
}

func TestUnsubscribe(t *testing.T) {
	b := New()
	calls := 0
	unsub := b.Subscribe(EventQuit, func(DomainEvent) { calls++ })
	unsubAll := b.SubscribeAll(func(DomainEvent) { calls++ })

	b.Publish(QuitEvent{})
	unsub()
	unsubAll()
	b.Publish(QuitEvent{})

	assert.Equal(t, 2, calls)
}

func TestUnsubscribeOnlyRemovesOwnHandler(t *testing.T) {
	b := New()
	var first, second int
	unsub := b.Subscribe(EventQuit, func(DomainEvent) { first++ })
	b.Subscribe(EventQuit, func(DomainEvent) { second++ })

	unsub()
	b.Publish(QuitEvent{})

	assert.Equal(t, 0, first)
	assert.Equal(t, 1, second)
}

func TestPublishNilIsIgnored(t *testing.T) {
	b := New()
	called := false
	b.SubscribeAll(func(DomainEvent) { called = true })

	b.Publish(nil)

	assert.False(t, called)
}

func TestNullBus(t *testing.T) {
	var b EventBus = NullBus{}
	b.Publish(QuitEvent{})
	b.Subscribe(EventQuit, func(DomainEvent) { t.Fatal("null bus must not deliver") })()
	b.SubscribeAll(func(DomainEvent) { t.Fatal("null bus must not deliver") })()
	b.Publish(QuitEvent{})
}
