package reactive

import (
	"sync"
	"time"

	"github.com/livellm/livellm/pkg/livellm/observability"
)

// Event represents a component event with metadata.
// Events are emitted by components and can be listened to by parent components.
//
// The Event struct includes:
//   - Name: The event name (e.g., "click", "submit", "change")
//   - Source: The component that emitted the event
//   - Data: Arbitrary data associated with the event
//   - Timestamp: When the event was emitted
//
// Example:
//
//	event := Event{
//	    Name:      "submit",
//	    Source:    component,
//	    Data:      FormData{Username: "user"},
//	    Timestamp: time.Now(),
//	}
type Event struct {
	// Name is the event identifier (e.g., "click", "submit")
	Name string

	// Source is the component that emitted the event
	Source Component

	// Data is arbitrary data associated with the event
	// Handlers should type-assert this to the expected type
	Data interface{}

	// Timestamp is when the event was emitted
	Timestamp time.Time

	// Stopped marks that the event must not bubble past the component
	// currently handling it. Handlers do not receive the Event struct
	// directly today, so nothing sets this yet, but bubbleEvent already
	// honors it for the day a handler signature exposes it.
	Stopped bool
}

// StopPropagation marks the event so bubbleEvent stops walking up the
// parent chain once the current component's handlers have run.
func (e *Event) StopPropagation() {
	e.Stopped = true
}

// eventPool recycles Event structs across Emit calls to avoid an
// allocation per emission.
var eventPool = sync.Pool{
	New: func() interface{} {
		return &Event{}
	},
}

// bubbleEvent runs every handler registered on c for event.Name, then,
// unless a handler stopped propagation, repeats the dispatch on c's
// parent. This is how a child's Emit reaches ancestors registered for
// the same event name.
//
// Handler panics are recovered and reported through the observability
// system rather than propagating, so one broken handler cannot take
// down the rest of the chain or the caller of Emit.
func (c *componentImpl) bubbleEvent(event *Event) {
	c.handlersMu.RLock()
	handlers := c.handlers[event.Name]
	c.handlersMu.RUnlock()

	for _, handler := range handlers {
		c.runHandlerSafely(event, handler)
	}

	if event.Stopped {
		return
	}
	if c.parent != nil {
		c.parent.bubbleEvent(event)
	}
}

// runHandlerSafely invokes handler with event.Data, recovering any
// panic and reporting it through the observability system so a single
// misbehaving handler cannot crash Emit.
func (c *componentImpl) runHandlerSafely(event *Event, handler EventHandler) {
	defer func() {
		if r := recover(); r != nil {
			reporter := observability.GetErrorReporter()
			if reporter == nil {
				return
			}
			reporter.ReportPanic(&observability.HandlerPanicError{
				ComponentName: c.name,
				EventName:     event.Name,
				PanicValue:    r,
			}, &observability.ErrorContext{
				ComponentName: c.name,
				ComponentID:   c.id,
				EventName:     event.Name,
				Timestamp:     time.Now(),
			})
		}
	}()
	handler(event.Data)
}

// registerHandler is an internal method that registers an event handler.
// It ensures thread-safe handler registration and supports multiple handlers per event.
//
// This method:
//   - Initializes the handlers map if needed
//   - Appends the handler to the list for the given event name
//   - Supports multiple handlers for the same event
//
// Note: This is called by the public On() method on componentImpl.
func (c *componentImpl) registerHandler(eventName string, handler EventHandler) {
	c.handlersMu.Lock()
	defer c.handlersMu.Unlock()

	// Ensure handlers map is initialized
	if c.handlers == nil {
		c.handlers = make(map[string][]EventHandler)
	}

	// Append handler to the list for this event
	c.handlers[eventName] = append(c.handlers[eventName], handler)
}

// eventRegistry is a global registry for tracking event listeners.
// This is useful for debugging and testing event flow.
// Note: This is an optional enhancement for future use.
type eventRegistry struct {
	mu        sync.RWMutex
	listeners map[string]int // event name -> listener count
}

// Global event registry instance
var globalEventRegistry = &eventRegistry{
	listeners: make(map[string]int),
}

// trackEventListener increments the listener count for an event.
// This is useful for debugging and testing.
func (r *eventRegistry) trackEventListener(eventName string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners[eventName]++
}

// getListenerCount returns the number of listeners for an event.
// This is useful for testing and debugging.
func (r *eventRegistry) getListenerCount(eventName string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.listeners[eventName]
}

// resetRegistry clears all listener counts.
// This is useful for testing.
func (r *eventRegistry) resetRegistry() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = make(map[string]int)
}
