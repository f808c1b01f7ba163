package event_bus

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

type EventType string

// Event announces a change that already reached a store.
type Event struct {
	ctx       context.Context
	Type      EventType
	Timestamp time.Time
	Data      any
}

// NewEvent stamps an event with the current time. The event keeps the values of ctx
// but not its cancellation, a store change is announced even when the request that
// made it is gone.
func NewEvent(ctx context.Context, eventType EventType, data any) Event {
	if ctx == nil {
		ctx = context.Background()
	}
	return Event{
		ctx:       context.WithoutCancel(ctx),
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      data,
	}
}

func (e Event) Context() context.Context {
	if e.ctx == nil {
		return context.Background()
	}
	return e.ctx
}

type subscription struct {
	id      uint64
	handler func(Event) error
}

// EventBus dispatches events synchronously, in subscription order, on the publishing goroutine.
type EventBus struct {
	mu          sync.RWMutex
	subscribers map[EventType][]subscription
	lastId      uint64
}

func NewEventBus() *EventBus {
	return &EventBus{subscribers: make(map[EventType][]subscription)}
}

// Subscribe registers h for eventType and returns a function removing it.
func (eb *EventBus) Subscribe(eventType EventType, h func(Event) error) (unsubscribe func()) {
	eb.mu.Lock()
	eb.lastId++
	id := eb.lastId
	eb.subscribers[eventType] = append(eb.subscribers[eventType], subscription{id: id, handler: h})
	eb.mu.Unlock()

	return func() {
		eb.mu.Lock()
		defer eb.mu.Unlock()
		remaining := slices.DeleteFunc(eb.subscribers[eventType], func(s subscription) bool { return s.id == id })
		if len(remaining) == 0 {
			delete(eb.subscribers, eventType)
			return
		}
		eb.subscribers[eventType] = remaining
	}
}

// SubscribeMany registers the same handler for several event types.
func (eb *EventBus) SubscribeMany(eventTypes []EventType, h func(Event) error) (unsubscribe func()) {
	unsubscribers := make([]func(), 0, len(eventTypes))
	for _, eventType := range eventTypes {
		unsubscribers = append(unsubscribers, eb.Subscribe(eventType, h))
	}
	return func() {
		for _, unsubscribe := range unsubscribers {
			unsubscribe()
		}
	}
}

// Publish hands e to every subscriber of its type. A failing or panicking subscriber
// does not stop the others; their errors are joined into the result.
func (eb *EventBus) Publish(e Event) error {
	eb.mu.RLock()
	subscribers := slices.Clone(eb.subscribers[e.Type])
	eb.mu.RUnlock()

	var errs []error
	for _, s := range subscribers {
		if err := deliver(s, e); err != nil {
			log.Errorf("EventBus: subscriber %d failed on %s: %v", s.id, e.Type, err)
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("event %s: %d subscriber(s) failed: %w", e.Type, len(errs), errors.Join(errs...))
	}
	return nil
}

func deliver(s subscription, e Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("subscriber panic: %v", r)
		}
	}()
	return s.handler(e)
}
