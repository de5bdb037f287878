// Package action implements the router that normalises component-emitted
// action events into a uniform record, optionally holds them for host
// confirmation, and forwards accepted ones to a host callback.
package action

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/livellm/livellm/pkg/livellm/bus"
	"github.com/livellm/livellm/pkg/livellm/monitoring"
)

// Metadata carries the bookkeeping fields that ride alongside an Action
// but aren't part of its user-facing payload.
type Metadata struct {
	ComponentID     string
	Timestamp       int64
	QuestionContext string
}

// Action is the normalised record a component's "livellm:action" event
// becomes before it reaches the host callback.
type Action struct {
	Component string
	Kind      string
	Value     interface{}
	Label     string
	Metadata  Metadata
}

// Callback is the host-supplied sink for accepted actions. Its error, if
// any, is logged — never propagated back into the event pipeline.
type Callback func(Action) error

// Router normalises, labels, and (subject to AutoSend/confirmation)
// forwards component action events.
type Router struct {
	mu sync.Mutex

	AutoSend bool
	OnAction Callback

	componentTemplates map[string]func(Action) string
	pending            map[string]Action

	bus *bus.Bus
	log *slog.Logger
}

// NewRouter builds a Router emitting lifecycle events on b (nil creates a
// private bus).
func NewRouter(b *bus.Bus) *Router {
	if b == nil {
		b = bus.New(nil)
	}
	return &Router{
		componentTemplates: make(map[string]func(Action) string),
		pending:            make(map[string]Action),
		bus:                b,
		log:                slog.Default(),
	}
}

// Bus returns the event bus this router emits lifecycle events on.
func (r *Router) Bus() *bus.Bus { return r.bus }

// SetLabelTemplate registers a per-component label override, consulted
// before the built-in default-by-kind templates in FormatAction.
func (r *Router) SetLabelTemplate(component string, tmpl func(Action) string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.componentTemplates[component] = tmpl
}

// HandleEvent is the function to pass to container.Container.BindActions:
// it is the single event-delegated listener for every "livellm:action"
// event bubbling up from a materialised component.
func (r *Router) HandleEvent(payload map[string]interface{}) {
	a := normalize(payload)

	r.mu.Lock()
	tmpl, ok := r.componentTemplates[a.Component]
	r.mu.Unlock()
	if ok {
		a.Label = tmpl(a)
	} else if a.Label == "" {
		a.Label = FormatAction(a)
	}

	if r.AutoSend {
		r.dispatch(a)
		return
	}

	r.mu.Lock()
	r.pending[a.Metadata.ComponentID] = a
	r.mu.Unlock()
	r.bus.Emit("action:previewing", a)
}

// Send forwards the pending action for componentID to the host callback.
// Returns false if no such action is pending (already sent, cancelled,
// or never previewed).
func (r *Router) Send(componentID string) bool {
	r.mu.Lock()
	a, ok := r.pending[componentID]
	if ok {
		delete(r.pending, componentID)
	}
	r.mu.Unlock()
	if !ok {
		return false
	}
	r.dispatch(a)
	return true
}

// Cancel discards the pending action for componentID without forwarding
// it. Returns false if no such action is pending.
func (r *Router) Cancel(componentID string) bool {
	r.mu.Lock()
	a, ok := r.pending[componentID]
	if ok {
		delete(r.pending, componentID)
	}
	r.mu.Unlock()
	if !ok {
		return false
	}
	r.bus.Emit("action:cancelled", a)
	return true
}

func (r *Router) dispatch(a Action) {
	if r.OnAction == nil {
		r.bus.Emit("action:sent", a)
		return
	}
	if err := r.safeInvoke(a); err != nil {
		r.log.Error("action: host callback failed", "component", a.Component, "kind", a.Kind, "error", err)
		monitoring.GetGlobalMetrics().RecordActionCallbackError(a.Component)
	}
	r.bus.Emit("action:sent", a)
}

func (r *Router) safeInvoke(a Action) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("action: host callback panicked: %v", rec)
		}
	}()
	return r.OnAction(a)
}

// normalize maps the raw "livellm:action" event payload ({ component,
// action, data, timestamp, componentId }) onto Action's field names.
func normalize(payload map[string]interface{}) Action {
	a := Action{
		Component: stringField(payload, "component"),
		Kind:      stringField(payload, "action"),
		Value:     payload["data"],
		Metadata: Metadata{
			ComponentID:     stringField(payload, "componentId"),
			Timestamp:       int64Field(payload, "timestamp"),
			QuestionContext: stringField(payload, "questionContext"),
		},
	}
	if label, ok := payload["label"]; ok {
		a.Label = fmt.Sprint(label)
	}
	return a
}

func stringField(payload map[string]interface{}, key string) string {
	v, ok := payload[key]
	if !ok || v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

func int64Field(payload map[string]interface{}, key string) int64 {
	switch v := payload[key].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	}
	return 0
}
