// Package bus implements the single-threaded pub/sub hub that carries
// lifecycle signals between the parser, transformer, stream renderer,
// registry and action router.
package bus

import (
	"log/slog"
	"reflect"
	"sync"
)

// Handler receives the arguments passed to Emit for the event it is
// registered against.
type Handler func(args ...interface{})

type registration struct {
	handler Handler
	once    bool
}

// Bus is a single-threaded, keyed pub/sub hub. A Bus is safe to share
// across goroutines for On/Off/Emit, but handlers themselves run on the
// calling goroutine of Emit — there is no internal dispatch loop.
type Bus struct {
	mu       sync.Mutex
	handlers map[string][]*registration
	debug    bool
	log      *slog.Logger
}

// New creates an empty Bus. log may be nil, in which case slog.Default()
// is used for debug mirroring.
func New(log *slog.Logger) *Bus {
	if log == nil {
		log = slog.Default()
	}
	return &Bus{
		handlers: make(map[string][]*registration),
		log:      log,
	}
}

// SetDebug turns on mirroring of every Emit call to the debug log.
func (b *Bus) SetDebug(on bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.debug = on
}

// On registers a handler for name. Handlers for the same name run in
// registration order.
func (b *Bus) On(name string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[name] = append(b.handlers[name], &registration{handler: h})
}

// Once registers a handler that automatically unregisters itself after
// its first invocation.
func (b *Bus) Once(name string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[name] = append(b.handlers[name], &registration{handler: h, once: true})
}

// Off removes the first registration for name whose handler compares
// equal to h (by function pointer identity). Safe to call for a name
// with no registrations.
func (b *Bus) Off(name string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	regs := b.handlers[name]
	target := reflect.ValueOf(h).Pointer()
	for i, r := range regs {
		if reflect.ValueOf(r.handler).Pointer() == target {
			b.handlers[name] = append(regs[:i:i], regs[i+1:]...)
			return
		}
	}
}

// RemoveAll removes every handler for name, or every handler for every
// name when name is empty.
func (b *Bus) RemoveAll(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if name == "" {
		b.handlers = make(map[string][]*registration)
		return
	}
	delete(b.handlers, name)
}

// Emit runs every handler registered for name, in registration order,
// against a snapshot of the handler list taken before the first handler
// runs — handlers that register or unregister siblings during delivery
// never affect the in-flight iteration. A handler panic is recovered and
// logged; later handlers still run.
func (b *Bus) Emit(name string, args ...interface{}) {
	b.mu.Lock()
	snapshot := make([]*registration, len(b.handlers[name]))
	copy(snapshot, b.handlers[name])
	debug := b.debug
	b.mu.Unlock()

	if debug {
		b.log.Debug("bus.emit", "event", name, "handlers", len(snapshot))
	}

	var onceToRemove []*registration
	for _, r := range snapshot {
		b.dispatch(name, r, args)
		if r.once {
			onceToRemove = append(onceToRemove, r)
		}
	}

	if len(onceToRemove) > 0 {
		b.mu.Lock()
		regs := b.handlers[name]
		for _, stale := range onceToRemove {
			for i, r := range regs {
				if r == stale {
					regs = append(regs[:i:i], regs[i+1:]...)
					break
				}
			}
		}
		b.handlers[name] = regs
		b.mu.Unlock()
	}
}

func (b *Bus) dispatch(name string, r *registration, args []interface{}) {
	defer func() {
		if rec := recover(); rec != nil {
			b.log.Error("bus handler panic", "event", name, "recovered", rec)
		}
	}()
	r.handler(args...)
}
