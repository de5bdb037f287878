package reactive

// Context provides the API available during component setup.
// It allows components to create reactive state, register event handlers,
// and access component data during the initialization phase.
//
// The Context is passed to the Setup function and provides access to:
//   - Reactive primitives (Ref, Computed, Watch)
//   - Event handling (On, Emit)
//   - Component data (Props, Children)
//   - State exposure (Expose, Get)
//   - Dependency injection across the component tree (Provide, Inject, AddChild)
//
// Example usage in a Setup function:
//
//	Setup(func(ctx *Context) {
//	    // Create reactive state
//	    count := ctx.Ref(0)
//	    doubled := ctx.Computed(func() interface{} {
//	        return count.Get().(int) * 2
//	    })
//
//	    // Expose state to template
//	    ctx.Expose("count", count)
//	    ctx.Expose("doubled", doubled)
//
//	    // Register event handlers
//	    ctx.On("increment", func(data interface{}) {
//	        current := count.Get().(int)
//	        count.Set(current + 1)
//	    })
//
//	    // Watch for changes
//	    ctx.Watch(count, func(newVal, oldVal interface{}) {
//	        log.Printf("Count changed: %v -> %v", oldVal, newVal)
//	    })
//
//	    // Access props
//	    props := ctx.Props()
//
//	    // Access children
//	    children := ctx.Children()
//	})
type Context struct {
	component *componentImpl
}

// Ref creates a new reactive reference with the given initial value.
// The returned Ref can be used to get and set values reactively.
//
// Example:
//
//	count := ctx.Ref(0)
//	count.Set(42)
//	value := count.Get()
func (ctx *Context) Ref(value interface{}) *Ref[interface{}] {
	return NewRef(value)
}

// Computed creates a new computed value that automatically updates
// when its dependencies change.
//
// Example:
//
//	count := ctx.Ref(10)
//	doubled := ctx.Computed(func() interface{} {
//	    return count.Get().(int) * 2
//	})
func (ctx *Context) Computed(fn func() interface{}) *Computed[interface{}] {
	return NewComputed(fn)
}

// Watch registers a callback that is called whenever the given Ref changes.
// The callback receives the new and old values. The returned cleanup stops
// the watch and is also registered with the component's lifecycle manager,
// so it runs automatically when the component unmounts even if the caller
// never invokes it directly.
//
// Example:
//
//	count := ctx.Ref(0)
//	ctx.Watch(count, func(newVal, oldVal interface{}) {
//	    log.Printf("Count: %v -> %v", oldVal, newVal)
//	})
func (ctx *Context) Watch(ref *Ref[interface{}], callback WatchCallback[interface{}]) WatchCleanup {
	cleanup := Watch(ref, callback)
	lm := ctx.ensureLifecycle()
	lm.registerWatcher(cleanup)
	return cleanup
}

// ensureLifecycle returns the component's lifecycle manager, lazily
// creating one the first time a hook is registered.
func (ctx *Context) ensureLifecycle() *LifecycleManager {
	if ctx.component.lifecycle == nil {
		ctx.component.lifecycle = newLifecycleManager(ctx.component)
	}
	return ctx.component.lifecycle
}

// OnMounted registers fn to run once, the first time the component is
// rendered via View(). Use it to kick off work that depends on the
// component actually being on screen, such as starting a spinner ticker
// while a directive's output is still streaming in.
//
// Example:
//
//	ctx.OnMounted(func() {
//	    ctx.Emit("mounted", nil)
//	})
func (ctx *Context) OnMounted(fn func()) {
	lm := ctx.ensureLifecycle()
	lm.registerHook("mounted", lifecycleHook{
		id:       nextHookID(),
		callback: fn,
		order:    len(lm.hooks["mounted"]),
	})
}

// OnUpdated registers fn to run after the component processes a Bubbletea
// message. If deps is non-empty, fn only runs when at least one of the
// given Refs changed value since the previous run; with no deps, fn runs
// on every update.
//
// Example:
//
//	ctx.OnUpdated(func() {
//	    recalculateLayout()
//	}, widthRef)
func (ctx *Context) OnUpdated(fn func(), deps ...*Ref[any]) {
	lm := ctx.ensureLifecycle()

	var lastValues []any
	if len(deps) > 0 {
		lastValues = make([]any, len(deps))
		for i, dep := range deps {
			lastValues[i] = dep.Get()
		}
	}

	lm.registerHook("updated", lifecycleHook{
		id:           nextHookID(),
		callback:     fn,
		dependencies: deps,
		lastValues:   lastValues,
		order:        len(lm.hooks["updated"]),
	})
}

// OnUnmounted registers fn to run once, when the component is unmounted,
// before its registered Watch subscriptions and OnCleanup functions run.
//
// Example:
//
//	ctx.OnUnmounted(func() {
//	    ctx.Emit("closed", nil)
//	})
func (ctx *Context) OnUnmounted(fn func()) {
	lm := ctx.ensureLifecycle()
	lm.registerHook("unmounted", lifecycleHook{
		id:       nextHookID(),
		callback: fn,
		order:    len(lm.hooks["unmounted"]),
	})
}

// OnCleanup registers fn to run when the component unmounts, after
// OnUnmounted hooks and Watch subscriptions have been torn down. Cleanups
// run in reverse registration order (LIFO), mirroring defer semantics.
//
// Example:
//
//	ticker := time.NewTicker(time.Second)
//	ctx.OnCleanup(func() {
//	    ticker.Stop()
//	})
func (ctx *Context) OnCleanup(fn func()) {
	lm := ctx.ensureLifecycle()
	lm.mu.Lock()
	lm.cleanups = append(lm.cleanups, fn)
	lm.mu.Unlock()
}

// Expose stores a value in the component's state map, making it accessible
// in the template function via RenderContext.Get().
//
// This is the primary way to share state between the setup function
// and the template function.
//
// Example:
//
//	count := ctx.Ref(0)
//	ctx.Expose("count", count)
//	// Later in template: count := ctx.Get("count").(*Ref[interface{}])
func (ctx *Context) Expose(key string, value interface{}) {
	if ctx.component.state == nil {
		ctx.component.state = make(map[string]interface{})
	}
	ctx.component.state[key] = value
}

// Get retrieves a value from the component's state map.
// Returns nil if the key doesn't exist.
//
// This is typically used in the setup function to access previously
// exposed values, though it's more commonly used in templates.
//
// Example:
//
//	value := ctx.Get("count")
//	if ref, ok := value.(*Ref[interface{}]); ok {
//	    // Use the ref
//	}
func (ctx *Context) Get(key string) interface{} {
	if ctx.component.state == nil {
		return nil
	}
	return ctx.component.state[key]
}

// On registers an event handler for the specified event name.
// Multiple handlers can be registered for the same event.
//
// Event handlers are called when the event is emitted via Emit()
// or when the component receives the event from a child.
//
// Example:
//
//	ctx.On("submit", func(data interface{}) {
//	    if formData, ok := data.(FormData); ok {
//	        // Handle form submission
//	    }
//	})
func (ctx *Context) On(event string, handler EventHandler) {
	ctx.component.On(event, handler)
}

// Emit sends a custom event with associated data.
// All registered handlers for this event will be called.
//
// Events can be used for internal component logic or to communicate
// with parent components.
//
// Example:
//
//	ctx.Emit("submit", FormData{
//	    Username: "user",
//	    Password: "pass",
//	})
func (ctx *Context) Emit(event string, data interface{}) {
	ctx.component.Emit(event, data)
}

// Props returns the component's props (configuration data).
// Props are immutable from the component's perspective and are
// passed down from parent components.
//
// The returned value should be type-asserted to the expected props type.
//
// Example:
//
//	props := ctx.Props().(ButtonProps)
//	label := props.Label
func (ctx *Context) Props() interface{} {
	return ctx.component.Props()
}

// Children returns the component's child components.
// This allows the setup function to access and interact with children,
// such as registering event handlers on them.
//
// Example:
//
//	children := ctx.Children()
//	for _, child := range children {
//	    child.On("click", func(data interface{}) {
//	        // Handle child click
//	    })
//	}
func (ctx *Context) Children() []Component {
	return ctx.component.children
}

// AddChild registers child as a child of this component. This establishes
// the parent link Inject walks to resolve a value Provide'd by an ancestor,
// and causes Init to cascade into child so its own Setup runs before its
// View is ever called.
//
// Example:
//
//	ctx.AddChild(childComponent)
func (ctx *Context) AddChild(child Component) error {
	return ctx.component.AddChild(child)
}

// Provide stores a value under key in this component's state, making it
// available to Inject calls made by this component or any descendant
// registered via AddChild. Values provided by a closer ancestor shadow
// those provided further up the tree.
//
// Example:
//
//	ctx.Provide("theme", resolvedTheme)
func (ctx *Context) Provide(key string, value interface{}) {
	ctx.component.provide(key, value)
}

// Inject retrieves the value stored under key by this component or the
// nearest ancestor that called Provide, walking up the parent chain
// established by AddChild. Returns defaultValue if no provider is found.
//
// Example:
//
//	theme := ctx.Inject("theme", DefaultTheme)
func (ctx *Context) Inject(key string, defaultValue interface{}) interface{} {
	return ctx.component.inject(key, defaultValue)
}
