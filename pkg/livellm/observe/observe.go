// Package observe implements the mutation observer: a debounced re-scan
// that finds unprocessed directive blocks left behind by a third-party
// Markdown renderer the core did not produce, and replaces them with
// materialised components.
package observe

import (
	"encoding/json"
	"log/slog"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/livellm/livellm/pkg/livellm/bus"
	"github.com/livellm/livellm/pkg/livellm/directive"
	"github.com/livellm/livellm/pkg/livellm/registry"
)

// DefaultDebounceInterval is the batching window applied to Notify calls
// before a scan runs, matching the host-configurable streaming cadence
// this package piggybacks on.
const DefaultDebounceInterval = 100 * time.Millisecond

// processedMarker is appended after a directive block the observer has
// already materialised, so a later scan doesn't re-process it.
const processedMarker = "<!--livellm:processed-->"

var codeDirective = regexp.MustCompile(`(?s)<code>livellm:([A-Za-z_][A-Za-z0-9_-]*)\n(.*?)</code>(<!--livellm:processed-->)?`)

// Observer watches externally-produced content for "<code>livellm:..."
// blocks. Source fetches the current content to scan; Sink receives it
// back once any directive blocks have been replaced. Both must be set
// before Notify is called.
type Observer struct {
	Source func() string
	Sink   func(string)

	mu       sync.Mutex
	timer    *time.Timer
	debounce time.Duration

	registry    *registry.Registry
	maxJSONSize int
	bus         *bus.Bus
	log         *slog.Logger
}

// New builds an Observer resolving directives against reg, emitting
// lifecycle events on b (nil creates a private bus). debounce <= 0 uses
// DefaultDebounceInterval.
func New(reg *registry.Registry, b *bus.Bus, debounce time.Duration) *Observer {
	if b == nil {
		b = bus.New(nil)
	}
	if debounce <= 0 {
		debounce = DefaultDebounceInterval
	}
	return &Observer{
		registry:    reg,
		maxJSONSize: 64 * 1024,
		bus:         b,
		debounce:    debounce,
		log:         slog.Default(),
	}
}

// Bus returns the event bus this observer emits lifecycle events on.
func (o *Observer) Bus() *bus.Bus { return o.bus }

// Notify signals that the watched content may have changed. Multiple
// calls within the debounce window collapse into a single scan.
func (o *Observer) Notify() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.timer != nil {
		o.timer.Stop()
	}
	o.timer = time.AfterFunc(o.debounce, o.flush)
}

// Stop cancels any pending debounced scan.
func (o *Observer) Stop() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.timer != nil {
		o.timer.Stop()
		o.timer = nil
	}
}

func (o *Observer) flush() {
	if o.Source == nil || o.Sink == nil {
		return
	}
	raw := o.Source()
	updated, processed := o.Scan(raw)
	if processed > 0 {
		o.Sink(updated)
	}
	o.bus.Emit("observer:scanned", processed)
}

// Scan finds every unprocessed "livellm:" code block in raw, resolves it
// against the registry, and replaces it with the rendered result plus a
// processed marker. Already-marked blocks are left untouched. Returns the
// updated content and how many blocks were newly processed.
func (o *Observer) Scan(raw string) (string, int) {
	processed := 0
	out := codeDirective.ReplaceAllStringFunc(raw, func(match string) string {
		groups := codeDirective.FindStringSubmatch(match)
		if groups[3] != "" {
			return match // already processed
		}
		typeName, body := groups[1], groups[2]
		processed++
		return o.resolve(typeName, body) + processedMarker
	})
	return out, processed
}

func (o *Observer) resolve(typeName, body string) string {
	if len(body) > o.maxJSONSize {
		o.bus.Emit("observer:error", "oversize directive body", typeName)
		return registry.FallbackCard("component body exceeds the configured size limit", body)
	}

	var props map[string]interface{}
	if err := json.Unmarshal([]byte(strings.TrimSpace(body)), &props); err != nil {
		o.bus.Emit("observer:error", "malformed JSON", typeName)
		return registry.FallbackCard("malformed JSON body", body)
	}

	if !directive.ValidType(typeName) || !o.registry.Has(typeName) {
		o.bus.Emit("observer:error", "unknown component type", typeName)
		return registry.FallbackCard("unknown component type \""+typeName+"\"", body)
	}

	props = o.registry.ApplyDefaults(typeName, props)
	result := o.registry.Validate(typeName, props)
	if !result.Valid {
		o.bus.Emit("observer:error", "schema validation failed", typeName)
		return registry.ErrorCard(typeName, result.Errors, body)
	}

	o.bus.Emit("observer:component:found", typeName)
	return o.registry.Materialize(typeName, props)
}
