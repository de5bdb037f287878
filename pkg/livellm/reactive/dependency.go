package reactive

// Dependency represents a reactive value that can be watched and tracked.
// It serves as the unified interface for all reactive primitives in LiveLLM,
// enabling both dependency tracking (for computed values) and type-erased
// value access.
//
// The Dependency interface is implemented by both Ref[T] and Computed[T],
// allowing them to be used interchangeably in contexts that need to track
// reactive dependencies or access reactive values.
//
// Key capabilities:
//   - Get() returns the current value as any, enabling type-erased access
//   - Invalidate() marks the dependency as needing recomputation
//   - AddDependent() registers dependencies for automatic invalidation
//
// This interface lets dependency chains propagate invalidation: the tracker
// records each Dependency read while a Computed evaluates, and the Computed
// registers itself with each of them through AddDependent.
//
// Design rationale:
// Go's type system doesn't support covariance, so *Ref[int] cannot be used
// where *Ref[any] is expected. The Dependency interface solves this by providing
// a common contract that all reactive types implement, enabling polymorphic
// usage while maintaining type safety within each implementation.
//
// See also: Ref, Computed, Watch
type Dependency interface {
	// Get returns the current value of the dependency as any.
	// Callers must type assert the result to the expected type.
	//
	// For Ref[T], this returns the stored value.
	// For Computed[T], this triggers evaluation if dirty and returns the cached result.
	//
	// This method enables type-erased access to reactive values, so code that
	// holds dependencies of mixed types can read them through one interface.
	//
	// Example:
	//   count := reactive.NewRef(42)
	//   value := count.Get().(int)  // Type assertion required
	Get() any

	// Invalidate marks this dependency as needing recomputation or re-evaluation.
	// This method is called automatically by the reactivity system when a dependency changes.
	//
	// For Ref[T], this notifies all watchers and dependents.
	// For Computed[T], this marks the cache as dirty and propagates to dependents.
	//
	// The invalidation propagates through the dependency graph, ensuring that
	// all dependent computed values are marked as needing recomputation.
	Invalidate()

	// AddDependent registers another dependency that depends on this one.
	// When this dependency is invalidated, all registered dependents are also invalidated.
	//
	// This method is used internally by the reactivity system to build the dependency graph.
	// It enables automatic invalidation propagation through chains of computed values.
	//
	// Example dependency chain:
	//   ref → computed1 → computed2
	// When ref changes, computed1 and computed2 are both invalidated automatically.
	AddDependent(dep Dependency)
}
