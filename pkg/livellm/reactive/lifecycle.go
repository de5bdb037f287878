package reactive

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/livellm/livellm/pkg/livellm/observability"
)

// hookIDCounter generates unique lifecycle hook identifiers.
var hookIDCounter atomic.Uint64

// nextHookID returns a unique identifier for a newly registered hook.
func nextHookID() string {
	return fmt.Sprintf("hook-%d", hookIDCounter.Add(1))
}

// maxUpdateDepth bounds how many nested onUpdated executions a single
// component can trigger before executeUpdated refuses to run hooks. It
// catches a hook that sets one of its own dependencies, which would
// otherwise recurse forever.
const maxUpdateDepth = 100

// CleanupFunc is a function that performs cleanup operations.
// It is called when a component is unmounted to release resources,
// cancel subscriptions, or perform other cleanup tasks.
//
// Example:
//
//	ctx.OnCleanup(func() {
//	    ticker.Stop()
//	    subscription.Unsubscribe()
//	})
type CleanupFunc func()

// lifecycleHook represents a single lifecycle hook registration.
// It stores the callback function, dependencies for change tracking,
// and metadata about the hook.
type lifecycleHook struct {
	// id is a unique identifier for this hook instance
	id string

	// callback is the function to execute when the hook fires
	callback func()

	// dependencies are the Refs that this hook depends on.
	// The hook only executes if one of these dependencies changes.
	// Empty slice means the hook runs on every trigger.
	dependencies []*Ref[any]

	// lastValues stores the previous values of dependencies
	// for change detection
	lastValues []any

	// order is the registration order of this hook.
	// Hooks execute in registration order.
	order int
}

// watcherCleanup represents a watcher that needs cleanup on unmount.
type watcherCleanup struct {
	// cleanup is the function to call to stop watching
	cleanup func()
}

// LifecycleManager manages the lifecycle hooks for a component.
// It handles hook registration, execution, and cleanup.
//
// The lifecycle manager is responsible for:
//   - Storing registered hooks by type (mounted, updated, unmounted)
//   - Tracking component lifecycle state (mounted, unmounting)
//   - Executing hooks at appropriate times
//   - Managing cleanup functions and auto-cleanup
//   - Preventing infinite update loops
//
// Lifecycle flow:
//  1. Component created → LifecycleManager created
//  2. Setup() runs → Hooks registered
//  3. First View() → onMounted hooks execute
//  4. Update(msg) → onUpdated hooks execute
//  5. Component unmounts → onUnmounted hooks + cleanup execute
type LifecycleManager struct {
	// component is the component this lifecycle manager belongs to
	component *componentImpl

	mu sync.Mutex

	// hooks stores registered lifecycle hooks by type.
	// Keys: "mounted", "updated", "unmounted"
	// Values: slices of hooks in registration order
	hooks map[string][]lifecycleHook

	// cleanups stores cleanup functions to execute on unmount.
	// Executed in reverse order (LIFO).
	cleanups []CleanupFunc

	// watchers stores watcher cleanup functions for auto-cleanup.
	// All watchers are automatically cleaned up when component unmounts.
	watchers []watcherCleanup

	// mounted indicates whether the component has been mounted.
	// Set to true after onMounted hooks execute.
	mounted bool

	// unmounting indicates whether the component is currently unmounting.
	// Set to true when unmount process begins.
	unmounting bool

	// updateCount tracks the number of updates to detect infinite loops.
	// Reset by resetUpdateCount once an update cycle settles.
	updateCount int
}

// newLifecycleManager creates a new LifecycleManager for the given component.
// It initializes all maps and slices to prevent nil pointer panics.
//
// The lifecycle manager starts in an unmounted state with no registered hooks.
//
// Example:
//
//	lm := newLifecycleManager(component)
//	// lm.mounted == false
//	// lm.hooks is empty but not nil
func newLifecycleManager(c *componentImpl) *LifecycleManager {
	return &LifecycleManager{
		component:   c,
		hooks:       make(map[string][]lifecycleHook),
		cleanups:    []CleanupFunc{},
		watchers:    []watcherCleanup{},
		mounted:     false,
		unmounting:  false,
		updateCount: 0,
	}
}

// registerHook appends hook to the list registered under hookType.
func (lm *LifecycleManager) registerHook(hookType string, hook lifecycleHook) {
	lm.mu.Lock()
	defer lm.mu.Unlock()
	lm.hooks[hookType] = append(lm.hooks[hookType], hook)
}

// registerWatcher records a watch cleanup function to run automatically
// when the component unmounts.
func (lm *LifecycleManager) registerWatcher(cleanup func()) {
	lm.mu.Lock()
	defer lm.mu.Unlock()
	lm.watchers = append(lm.watchers, watcherCleanup{cleanup: cleanup})
}

// setMounted sets the mounted flag.
func (lm *LifecycleManager) setMounted(v bool) {
	lm.mu.Lock()
	defer lm.mu.Unlock()
	lm.mounted = v
}

// IsMounted reports whether onMounted hooks have already run.
func (lm *LifecycleManager) IsMounted() bool {
	lm.mu.Lock()
	defer lm.mu.Unlock()
	return lm.mounted
}

// setUnmounting sets the unmounting flag.
func (lm *LifecycleManager) setUnmounting(v bool) {
	lm.mu.Lock()
	defer lm.mu.Unlock()
	lm.unmounting = v
}

// IsUnmounting reports whether the component has begun unmounting.
func (lm *LifecycleManager) IsUnmounting() bool {
	lm.mu.Lock()
	defer lm.mu.Unlock()
	return lm.unmounting
}

// resetUpdateCount clears the infinite-loop guard counter. Called once an
// update cycle has finished propagating through a component's children.
func (lm *LifecycleManager) resetUpdateCount() {
	lm.mu.Lock()
	defer lm.mu.Unlock()
	lm.updateCount = 0
}

// runHookSafely executes fn, recovering any panic and reporting it to the
// observability system instead of letting it crash the render loop. phase
// identifies which lifecycle stage the panic came from; cleanup-related
// phases are reported as ErrCleanupFailed rather than ErrHookPanic.
func (lm *LifecycleManager) runHookSafely(phase string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			sentinel := ErrHookPanic
			if phase == "cleanup" || phase == "watcher-cleanup" {
				sentinel = ErrCleanupFailed
			}
			lm.reportPanic(phase, sentinel, r)
		}
	}()
	fn()
}

func (lm *LifecycleManager) reportPanic(phase string, sentinel error, r interface{}) {
	reporter := observability.GetErrorReporter()
	if reporter == nil {
		return
	}
	name, id := "", ""
	if lm.component != nil {
		name, id = lm.component.name, lm.component.id
	}
	eventName := fmt.Sprintf("lifecycle:%s", phase)
	reporter.ReportPanic(&observability.HandlerPanicError{
		ComponentName: name,
		EventName:     eventName,
		PanicValue:    r,
	}, &observability.ErrorContext{
		ComponentName: name,
		ComponentID:   id,
		EventName:     eventName,
		Timestamp:     time.Now(),
		Extra:         map[string]interface{}{"sentinel": sentinel.Error()},
	})
}

// executeMounted runs all registered "mounted" hooks exactly once, in
// registration order. Calling it more than once is a no-op.
func (lm *LifecycleManager) executeMounted() {
	lm.mu.Lock()
	if lm.mounted {
		lm.mu.Unlock()
		return
	}
	hooks := append([]lifecycleHook(nil), lm.hooks["mounted"]...)
	lm.mu.Unlock()

	for _, hook := range hooks {
		lm.runHookSafely("mounted", hook.callback)
	}

	lm.setMounted(true)
}

// executeUpdated runs registered "updated" hooks whose dependencies changed
// since the last run, or unconditionally if a hook declared none. It
// refuses to run once updateCount exceeds maxUpdateDepth, reporting
// ErrMaxUpdateDepth instead, to stop a hook that retriggers itself from
// spinning the render loop forever.
func (lm *LifecycleManager) executeUpdated() {
	lm.mu.Lock()
	if lm.updateCount > maxUpdateDepth {
		lm.mu.Unlock()
		lm.reportError(ErrMaxUpdateDepth)
		return
	}
	lm.updateCount++
	hooks := lm.hooks["updated"]
	lm.mu.Unlock()

	for i := range hooks {
		hook := &hooks[i]
		if len(hook.dependencies) > 0 && !hookDependenciesChanged(hook) {
			continue
		}
		lm.runHookSafely("updated", hook.callback)
		for j, dep := range hook.dependencies {
			hook.lastValues[j] = dep.Get()
		}
	}
}

func (lm *LifecycleManager) reportError(err error) {
	reporter := observability.GetErrorReporter()
	if reporter == nil {
		return
	}
	name, id := "", ""
	if lm.component != nil {
		name, id = lm.component.name, lm.component.id
	}
	reporter.ReportError(err, &observability.ErrorContext{
		ComponentName: name,
		ComponentID:   id,
		Timestamp:     time.Now(),
	})
}

// hookDependenciesChanged reports whether any of hook's tracked dependency
// values differ from the values captured at the last run. A dependency
// holding an uncomparable value (slice, map, func) makes `!=` panic; that
// is recovered here and treated as a change so the hook still runs rather
// than crashing the Update() call that triggered it.
func hookDependenciesChanged(hook *lifecycleHook) (changed bool) {
	for i, dep := range hook.dependencies {
		if valuesDiffer(dep.Get(), hook.lastValues[i]) {
			return true
		}
	}
	return false
}

func valuesDiffer(a, b any) (differs bool) {
	defer func() {
		if recover() != nil {
			differs = true
		}
	}()
	return a != b
}

// executeUnmounted marks the component as unmounting, runs registered
// "unmounted" hooks, cleans up any Watch subscriptions registered through
// this component's Context, then runs OnCleanup functions in LIFO order.
// Calling it more than once is a no-op.
func (lm *LifecycleManager) executeUnmounted() {
	lm.mu.Lock()
	if lm.unmounting {
		lm.mu.Unlock()
		return
	}
	lm.unmounting = true
	hooks := append([]lifecycleHook(nil), lm.hooks["unmounted"]...)
	lm.mu.Unlock()

	for _, hook := range hooks {
		lm.runHookSafely("unmounted", hook.callback)
	}

	lm.cleanupWatchers()
	lm.executeCleanups()
}

// cleanupWatchers runs every registered watcher cleanup, recovering panics
// so one failing watcher cannot block the rest from tearing down.
func (lm *LifecycleManager) cleanupWatchers() {
	lm.mu.Lock()
	watchers := lm.watchers
	lm.watchers = nil
	lm.mu.Unlock()

	for _, w := range watchers {
		lm.runHookSafely("watcher-cleanup", w.cleanup)
	}
}

// executeCleanups runs OnCleanup functions in reverse registration order
// (LIFO), recovering panics so one failing cleanup cannot block the rest.
func (lm *LifecycleManager) executeCleanups() {
	lm.mu.Lock()
	cleanups := lm.cleanups
	lm.cleanups = nil
	lm.mu.Unlock()

	for i := len(cleanups) - 1; i >= 0; i-- {
		fn := cleanups[i]
		lm.runHookSafely("cleanup", func() { fn() })
	}
}
