// Package registry is the type-safe catalogue of component descriptors:
// it maps directive type names to schema + placeholder + render metadata,
// validates and defaults-fills props, and emits lifecycle events on the
// event bus as entries are registered, removed or lazily loaded.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/livellm/livellm/pkg/livellm/bus"
	"github.com/livellm/livellm/pkg/livellm/directive"
	"github.com/livellm/livellm/pkg/livellm/schema"
)

// Category classifies how a component participates in the pipeline.
type Category string

const (
	CategoryInline Category = "inline"
	CategoryBlock  Category = "block"
	CategoryAction Category = "action"
)

// Placeholder is the visible stand-in shown while a streaming component's
// body is still arriving.
type Placeholder struct {
	// HTML is the placeholder fragment (or, in this terminal realization,
	// the plain-text skeleton rendered in its place).
	HTML string

	// MinHeight reserves vertical space so surrounding text doesn't
	// reflow when the real component swaps in.
	MinHeight int
}

// Renderer produces the visible text for a component instance given its
// validated, defaults-applied props. Used by both the static renderer and
// the stream renderer's COMPONENT-state finalisation.
type Renderer func(props map[string]interface{}) string

// LazyLoader is the locator for a component whose implementation is
// fetched on first use rather than registered up front.
type LazyLoader struct {
	URL    string
	loaded bool
	class  interface{}
}

// ComponentDescriptor is one entry in the registry.
type ComponentDescriptor struct {
	Name        string
	TagName     string
	Schema      schema.Schema
	Placeholder Placeholder
	Category    Category
	Render      Renderer
	Lazy        *LazyLoader
}

// Registry stores name -> ComponentDescriptor. The zero value is not
// usable; construct with New or Default.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*ComponentDescriptor
	bus     *bus.Bus
}

// New constructs an empty registry that emits lifecycle events on b. If b
// is nil, a private bus is created (events are then only observable by
// handlers registered directly on the returned Registry's Bus()).
func New(b *bus.Bus) *Registry {
	if b == nil {
		b = bus.New(nil)
	}
	return &Registry{
		entries: make(map[string]*ComponentDescriptor),
		bus:     b,
	}
}

// Bus returns the event bus this registry emits lifecycle events on.
func (r *Registry) Bus() *bus.Bus { return r.bus }

// Register adds or replaces a descriptor under name. Idempotent: calling
// it twice with the same name and component just redefines the entry, the
// way a custom-element registry is queried before being (re)defined.
// Emits "registry:registered".
func (r *Registry) Register(name string, component ComponentDescriptor, _ ...interface{}) {
	component.Name = name
	if component.TagName == "" {
		component.TagName = directive.TagName(name)
	}
	r.mu.Lock()
	r.entries[name] = &component
	r.mu.Unlock()
	r.bus.Emit("registry:registered", name)
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[name]
	return ok
}

// Get returns the descriptor for name, or false if unregistered.
func (r *Registry) Get(name string) (ComponentDescriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.entries[name]
	if !ok {
		return ComponentDescriptor{}, false
	}
	return *d, true
}

// List returns every registered name, sorted for deterministic iteration.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Filtered returns a new registry containing only the entries of r whose
// name appears in allow, sharing r's event bus so lifecycle events still
// reach the same subscribers. Used to honour a host's Components
// allow-list (config.Config.Components) without mutating the shared
// default registry.
func Filtered(r *Registry, allow []string) *Registry {
	out := &Registry{
		entries: make(map[string]*ComponentDescriptor, len(allow)),
		bus:     r.bus,
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, name := range allow {
		if d, ok := r.entries[name]; ok {
			copied := *d
			out.entries[name] = &copied
		}
	}
	return out
}

// Remove deletes name from the registry, if present.
func (r *Registry) Remove(name string) {
	r.mu.Lock()
	delete(r.entries, name)
	r.mu.Unlock()
	r.bus.Emit("registry:removed", name)
}

// Clear removes every entry.
func (r *Registry) Clear() {
	r.mu.Lock()
	r.entries = make(map[string]*ComponentDescriptor)
	r.mu.Unlock()
}

// ValidationResult mirrors schema.Result with the registry-level
// "unregistered name" failure mode folded in.
type ValidationResult struct {
	Valid  bool
	Errors []schema.ValidationError
}

// Validate checks props for name against its schema. An unregistered name
// yields a single "_component" error, per the registry's contract with
// the parser and stream renderer.
func (r *Registry) Validate(name string, props map[string]interface{}) ValidationResult {
	d, ok := r.Get(name)
	if !ok {
		return ValidationResult{
			Valid: false,
			Errors: []schema.ValidationError{
				{Prop: "_component", Message: fmt.Sprintf("component %q is not registered", name)},
			},
		}
	}
	res := schema.Validate(d.Schema, props)
	return ValidationResult{Valid: res.Valid, Errors: res.Errors}
}

// ApplyDefaults returns props with name's schema defaults filled in. An
// unregistered name returns props unchanged.
func (r *Registry) ApplyDefaults(name string, props map[string]interface{}) map[string]interface{} {
	d, ok := r.Get(name)
	if !ok {
		return props
	}
	return schema.ApplyDefaults(d.Schema, props)
}

// globalFallbackPlaceholder is used by GetPlaceholder when a type has no
// descriptor at all (so not even a placeholder is known).
var globalFallbackPlaceholder = Placeholder{HTML: "…", MinHeight: 1}

// Materialize renders name's final visible content for validated,
// defaults-applied props. A name with no registered Render func (or no
// descriptor at all) falls back to a generic card rather than panicking,
// since a descriptor-only entry is a legitimate, if incomplete, state
// during incremental registration.
func (r *Registry) Materialize(name string, props map[string]interface{}) string {
	d, ok := r.Get(name)
	if !ok || d.Render == nil {
		return FallbackCard(fmt.Sprintf("component %q has no renderer", name), fmt.Sprintf("%v", props))
	}
	return d.Render(props)
}

// GetPlaceholder returns name's declared placeholder, or a global
// fallback when name is unregistered.
func (r *Registry) GetPlaceholder(name string) Placeholder {
	d, ok := r.Get(name)
	if !ok || d.Placeholder.HTML == "" {
		return globalFallbackPlaceholder
	}
	return d.Placeholder
}

// LoadComponent resolves a lazy component's implementation on first use.
// Non-lazy or already-loaded components are no-ops. Emits
// "registry:component:loading" then "registry:component:loaded".
func (r *Registry) LoadComponent(name string) error {
	r.mu.Lock()
	d, ok := r.entries[name]
	if !ok {
		r.mu.Unlock()
		return fmt.Errorf("registry: %q is not registered", name)
	}
	if d.Lazy == nil || d.Lazy.loaded {
		r.mu.Unlock()
		return nil
	}
	r.mu.Unlock()

	r.bus.Emit("registry:component:loading", name, d.Lazy.URL)
	// No real module system backs this terminal realization; loading a
	// lazy descriptor just marks it resolved so callers can proceed.
	r.mu.Lock()
	d.Lazy.loaded = true
	r.mu.Unlock()
	r.bus.Emit("registry:component:loaded", name)
	return nil
}
