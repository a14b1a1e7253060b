package events

import (
	"fmt"
	"sync"
)

// Handler processes a single event. Handlers run synchronously on the
// publishing goroutine; a handler that needs to do slow work should hand the
// event off to its own goroutine.
type Handler func(event Event)

// ErrorHandler is called when a subscriber panics during dispatch.
// Common use: logging the recovered value together with the event.
type ErrorHandler func(err error, event Event)

// EventBus distributes framework events to subscribers.
//
// Dispatch is synchronous and ordered by registration: when Publish returns,
// every matching subscriber has observed the event, in the order the
// subscriptions were created. A panicking subscriber is recovered and reported
// through the error handler; it never aborts dispatch to later subscribers and
// never propagates to the publisher.
//
// Thread Safety:
//   - All methods are safe for concurrent use
//   - Multiple goroutines can publish and subscribe simultaneously
type EventBus interface {
	// Publish sends an event to all matching subscribers.
	// Returns an error only if the event bus is closed.
	Publish(event Event) error

	// Subscribe registers a handler for the given event types.
	// An empty type list subscribes to every event.
	// The returned function removes the subscription; it must be called to
	// prevent leaked handlers across teardown cycles and is safe to call
	// more than once.
	Subscribe(handler Handler, eventTypes ...EventType) func()

	// Close shuts down the event bus and removes all subscriptions.
	// After Close returns, Publish will return an error.
	Close() error
}

// subscription holds a single registered handler with its type filter.
type subscription struct {
	id      uint64
	handler Handler
	types   map[EventType]struct{} // nil means all types
}

// matches reports whether the subscription wants the given event type.
func (s *subscription) matches(t EventType) bool {
	if s.types == nil {
		return true
	}
	_, ok := s.types[t]
	return ok
}

// busOptions holds configuration for DefaultEventBus.
type busOptions struct {
	errorHandler ErrorHandler
}

// Option is a functional option for configuring DefaultEventBus.
type Option func(*busOptions)

// WithErrorHandler sets the handler invoked when a subscriber panics.
// Default: no-op handler.
func WithErrorHandler(handler ErrorHandler) Option {
	return func(opts *busOptions) {
		if handler != nil {
			opts.errorHandler = handler
		}
	}
}

// DefaultEventBus implements EventBus with synchronous in-order dispatch.
type DefaultEventBus struct {
	mu          sync.RWMutex
	subscribers []*subscription
	nextID      uint64
	options     *busOptions
	closed      bool
}

// NewEventBus creates a new DefaultEventBus with the given options.
func NewEventBus(opts ...Option) *DefaultEventBus {
	options := &busOptions{
		errorHandler: noopErrorHandler,
	}

	for _, opt := range opts {
		opt(options)
	}

	return &DefaultEventBus{
		options: options,
	}
}

// Publish sends an event to all matching subscribers in registration order.
//
// The snapshot of subscribers is taken under the read lock, then handlers run
// outside it so a handler may subscribe or unsubscribe without deadlocking.
func (eb *DefaultEventBus) Publish(event Event) error {
	eb.mu.RLock()
	if eb.closed {
		eb.mu.RUnlock()
		return fmt.Errorf("event bus is closed")
	}
	subs := make([]*subscription, len(eb.subscribers))
	copy(subs, eb.subscribers)
	eb.mu.RUnlock()

	for _, sub := range subs {
		if !sub.matches(event.Type) {
			continue
		}
		eb.dispatch(sub, event)
	}

	return nil
}

// dispatch invokes a single handler, converting a panic into an error-handler
// callback instead of letting it unwind into the publisher.
func (eb *DefaultEventBus) dispatch(sub *subscription, event Event) {
	defer func() {
		if r := recover(); r != nil {
			eb.options.errorHandler(fmt.Errorf("event handler panic: %v", r), event)
		}
	}()
	sub.handler(event)
}

// Subscribe registers a handler for the given event types and returns its
// unsubscribe function.
func (eb *DefaultEventBus) Subscribe(handler Handler, eventTypes ...EventType) func() {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	var filter map[EventType]struct{}
	if len(eventTypes) > 0 {
		filter = make(map[EventType]struct{}, len(eventTypes))
		for _, t := range eventTypes {
			filter[t] = struct{}{}
		}
	}

	eb.nextID++
	sub := &subscription{
		id:      eb.nextID,
		handler: handler,
		types:   filter,
	}
	eb.subscribers = append(eb.subscribers, sub)

	var once sync.Once
	return func() {
		once.Do(func() {
			eb.unsubscribe(sub.id)
		})
	}
}

// unsubscribe removes a subscription by id, preserving registration order of
// the remaining subscribers.
func (eb *DefaultEventBus) unsubscribe(id uint64) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	for i, sub := range eb.subscribers {
		if sub.id == id {
			eb.subscribers = append(eb.subscribers[:i], eb.subscribers[i+1:]...)
			return
		}
	}
}

// Close shuts down the event bus and removes all subscriptions.
// Close is idempotent; multiple calls are safe.
func (eb *DefaultEventBus) Close() error {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	if eb.closed {
		return nil
	}

	eb.closed = true
	eb.subscribers = nil

	return nil
}

// SubscriberCount returns the current number of active subscribers.
// Useful for monitoring and testing.
func (eb *DefaultEventBus) SubscriberCount() int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	return len(eb.subscribers)
}

// noopErrorHandler is the default error handler that does nothing.
func noopErrorHandler(err error, event Event) {}

// Ensure DefaultEventBus implements EventBus at compile time.
var _ EventBus = (*DefaultEventBus)(nil)
