package reactive

import "errors"

// ComponentBuilder provides a fluent API for creating components.
// It implements the builder pattern to make component creation
// readable and type-safe.
//
// The builder:
//   - Stores a reference to the component being built
//   - Tracks validation errors during configuration
//   - Provides chainable methods for setting component properties
//   - Validates configuration before building the final component
//
// Example:
//
//	component, err := NewComponent("Button").
//	    Props(ButtonProps{Label: "Click me"}).
//	    Setup(func(ctx *Context) {
//	        // Initialize state
//	    }).
//	    Template(func(ctx RenderContext) string {
//	        return "Hello"
//	    }).
//	    Build()
type ComponentBuilder struct {
	// component is the component being built.
	// It's created immediately in NewComponent() and configured
	// through the builder methods.
	component *componentImpl

	// errors tracks validation errors encountered during configuration.
	// Errors are accumulated and checked in Build().
	errors []error
}

// NewComponent creates a new ComponentBuilder for building a component.
// This is the entry point for creating components using the fluent API.
//
// The function:
//   - Creates a new component instance with the given name
//   - Initializes the builder with empty error tracking
//   - Returns the builder ready for method chaining
//
// Example:
//
//	builder := NewComponent("Button")
//	// Now chain configuration methods...
//	builder.Props(...).Setup(...).Template(...).Build()
//
// Parameters:
//   - name: The component name (e.g., "Button", "Counter", "Form")
//
// Returns:
//   - *ComponentBuilder: A builder instance ready for configuration
func NewComponent(name string) *ComponentBuilder {
	return &ComponentBuilder{
		component: newComponentImpl(name),
		errors:    []error{},
	}
}

// Props sets the component's props, the immutable configuration data
// passed down from the component's caller. Validation errors are
// accumulated and surface from Build rather than panicking mid-chain.
func (b *ComponentBuilder) Props(props interface{}) *ComponentBuilder {
	if err := validateProps(b.component.name, props); err != nil {
		b.errors = append(b.errors, err)
		return b
	}
	b.component.props = props
	return b
}

// Setup registers the function Init runs once to create the component's
// reactive state, register event handlers, and provide or inject values
// shared with the component tree.
func (b *ComponentBuilder) Setup(fn SetupFunc) *ComponentBuilder {
	b.component.setup = fn
	return b
}

// Template registers the function View calls on every render to produce
// the component's output from its exposed state and props.
func (b *ComponentBuilder) Template(fn RenderFunc) *ComponentBuilder {
	b.component.template = fn
	return b
}

// Children registers initial child components. Each child is attached via
// AddChild when Build runs, so circular-reference and max-depth validation
// apply the same as calling AddChild directly after construction.
func (b *ComponentBuilder) Children(children ...Component) *ComponentBuilder {
	b.component.pendingChildren = append(b.component.pendingChildren, children...)
	return b
}

// Build finalises the component. It returns an error joining every
// validation failure accumulated during configuration (e.g. from Props)
// instead of the component, so callers fail fast on misconfiguration.
func (b *ComponentBuilder) Build() (Component, error) {
	for _, child := range b.component.pendingChildren {
		if err := b.component.AddChild(child); err != nil {
			b.errors = append(b.errors, err)
		}
	}
	b.component.pendingChildren = nil

	if len(b.errors) > 0 {
		return nil, errors.Join(b.errors...)
	}
	return b.component, nil
}
