// Package stream implements the character-level state machine that turns
// a live token stream into a continuously updated document: plain
// markdown renders incrementally while embedded component directives are
// recognised mid-stream, shown as a placeholder, and swapped for their
// finished form the moment their closing fence arrives.
package stream

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/livellm/livellm/container"
	"github.com/livellm/livellm/pkg/livellm/bus"
	"github.com/livellm/livellm/pkg/livellm/directive"
	"github.com/livellm/livellm/pkg/livellm/monitoring"
	"github.com/livellm/livellm/pkg/livellm/parser"
	"github.com/livellm/livellm/pkg/livellm/registry"
)

// Renderer consumes markdown in arbitrarily sized chunks and keeps a
// Container in sync with it, one scheduled frame at a time. A Renderer is
// single-use: once End or Abort has run it accepts no further input.
type Renderer struct {
	mu sync.Mutex

	state       State
	atLineStart bool

	fenceAccum      strings.Builder
	infoLine        strings.Builder
	textAccum       strings.Builder
	componentType   string
	componentJSON   strings.Builder
	placeholderID   container.NodeID
	placeholderShown bool
	skeletonTimer   *time.Timer

	aborted bool

	// SkeletonDelay postpones showing a component's placeholder by this
	// duration after its opening fence is recognised. A component that
	// finishes resolving before the delay elapses never shows a skeleton
	// at all.
	SkeletonDelay time.Duration

	container container.Container
	registry  *registry.Registry
	parser    *parser.Parser
	bus       *bus.Bus
	scheduler FrameScheduler
	log       *slog.Logger
}

// New builds a Renderer writing into c, resolving directives against reg
// and md, and emitting lifecycle events on b. sched controls render
// coalescing; a nil sched renders synchronously on every Push, which is
// appropriate for tests and for small, low-rate streams.
func New(c container.Container, reg *registry.Registry, md *parser.Parser, b *bus.Bus, sched FrameScheduler) *Renderer {
	if b == nil {
		b = bus.New(nil)
	}
	if sched == nil {
		sched = SyncScheduler{}
	}
	return &Renderer{
		state:       StateIdle,
		atLineStart: true,
		container:   c,
		registry:    reg,
		parser:      md,
		bus:         b,
		scheduler:   sched,
		log:         slog.Default(),
	}
}

// State reports the renderer's current phase.
func (r *Renderer) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Bus returns the event bus this renderer emits lifecycle events on.
func (r *Renderer) Bus() *bus.Bus { return r.bus }

// Push feeds the next chunk of streamed markdown through the state
// machine. Chunks may split a fence marker, an info line, a JSON body, or
// a multi-byte rune at any boundary; Push makes no assumption about
// chunk alignment.
func (r *Renderer) Push(chunk string) {
	r.mu.Lock()
	if r.aborted || r.state == StateDone {
		r.mu.Unlock()
		return
	}
	if r.state == StateIdle {
		r.state = StateText
		r.bus.Emit("stream:connected")
	}
	for i := 0; i < len(chunk); i++ {
		r.step(chunk[i])
	}
	r.mu.Unlock()

	r.scheduleRender()
}

func (r *Renderer) step(b byte) {
	switch r.state {
	case StateText:
		r.stepText(b)
	case StateFenceMaybe:
		r.stepFenceMaybe(b)
	case StateComponent:
		r.stepComponent(b)
	}
}

// stepText accumulates ordinary markdown, watching for a fence marker
// (three backticks) that opens at the start of a line.
func (r *Renderer) stepText(b byte) {
	if b == '`' && (r.atLineStart || r.fenceAccum.Len() > 0) && r.fenceAccum.Len() < 3 {
		r.fenceAccum.WriteByte(b)
		r.atLineStart = false
		if r.fenceAccum.Len() == 3 {
			r.state = StateFenceMaybe
			r.infoLine.Reset()
		}
		return
	}

	if r.fenceAccum.Len() > 0 {
		r.textAccum.WriteString(r.fenceAccum.String())
		r.fenceAccum.Reset()
	}
	r.textAccum.WriteByte(b)
	r.atLineStart = b == '\n'
}

// stepFenceMaybe reads the fence's info line, looking for a well-formed
// "livellm:<type>" directive opener. A non-matching info line releases
// everything accumulated so far back into plain text and returns to
// StateText — the fence was just an ordinary code block.
func (r *Renderer) stepFenceMaybe(b byte) {
	if b != '\n' && r.infoLine.Len() < maxInfoLineLength {
		r.infoLine.WriteByte(b)
		return
	}

	line := r.infoLine.String()
	typeName, ok := parseDirectiveInfo(line)
	if !ok {
		r.textAccum.WriteString(r.fenceAccum.String())
		r.textAccum.WriteString(line)
		r.fenceAccum.Reset()
		r.state = StateText
		if b == '\n' {
			r.textAccum.WriteByte('\n')
		}
		r.atLineStart = b == '\n'
		return
	}

	r.componentType = typeName
	r.componentJSON.Reset()
	r.placeholderShown = false
	r.bus.Emit("stream:component:start", typeName)
	r.fenceAccum.Reset()
	r.state = StateComponent

	if r.SkeletonDelay <= 0 {
		r.showPlaceholderLocked()
		return
	}
	scheduledFor := typeName
	r.skeletonTimer = time.AfterFunc(r.SkeletonDelay, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if r.aborted || r.state != StateComponent || r.placeholderShown || r.componentType != scheduledFor {
			return
		}
		r.showPlaceholderLocked()
	})
}

// showPlaceholderLocked inserts the registered skeleton for the
// in-progress component. Called with r.mu held, either immediately (no
// SkeletonDelay) or from the skeleton timer once it fires.
func (r *Renderer) showPlaceholderLocked() {
	placeholder := r.registry.GetPlaceholder(r.componentType)
	r.placeholderID = r.container.InsertPlaceholder(placeholder)
	r.placeholderShown = true
}

// stopSkeletonTimerLocked cancels a pending skeleton timer, if any, so a
// component that resolves (or the stream that ends) before SkeletonDelay
// elapses never shows a skeleton at all.
func (r *Renderer) stopSkeletonTimerLocked() {
	if r.skeletonTimer != nil {
		r.skeletonTimer.Stop()
		r.skeletonTimer = nil
	}
}

// materializeLocked writes a component's final rendered content — the
// real component, an error card, or a fallback card — into the
// container. If its skeleton was never shown (SkeletonDelay hadn't
// elapsed), it inserts the content directly instead of replacing a
// placeholder that was never there.
func (r *Renderer) materializeLocked(rendered string) {
	if !r.placeholderShown {
		r.placeholderID = r.container.InsertPlaceholder(registry.Placeholder{})
		r.placeholderShown = true
	}
	if err := r.container.ReplacePlaceholder(r.placeholderID, rendered); err != nil {
		r.log.Error("stream: replace placeholder", "error", err)
	}
}

// stepComponent buffers a directive's JSON body until its closing fence
// ("\n```") arrives, then resolves it through the shared parser pipeline.
func (r *Renderer) stepComponent(b byte) {
	r.componentJSON.WriteByte(b)
	if strings.HasSuffix(r.componentJSON.String(), "\n```") {
		body := strings.TrimSuffix(r.componentJSON.String(), "\n```")
		r.finalizeComponent(body)
	}
}

func (r *Renderer) finalizeComponent(body string) {
	r.stopSkeletonTimerLocked()
	rendered := r.resolve(r.componentType, body)
	r.materializeLocked(rendered)
	r.bus.Emit("stream:component:resolved", r.componentType)

	r.container.AppendText()
	r.state = StateText
	r.componentType = ""
	r.componentJSON.Reset()
	r.atLineStart = true
}

// resolve runs typeName/body through the parser's directive pipeline by
// re-wrapping it as the fenced form goldmark recognises, so validation,
// defaulting and fallback/error-card behaviour stay in one place.
func (r *Renderer) resolve(typeName, body string) string {
	fragment := "```livellm:" + typeName + "\n" + body + "\n```"
	html, err := r.parser.Parse(fragment)
	if err != nil {
		return registry.FallbackCard("internal render error", body)
	}
	return strings.TrimSuffix(html, "\n")
}

func parseDirectiveInfo(line string) (string, bool) {
	const prefix = "livellm:"
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, prefix) {
		return "", false
	}
	typeName := line[len(prefix):]
	if !directive.ValidType(typeName) {
		return "", false
	}
	return typeName, true
}

// scheduleRender asks the scheduler to paint the current text run at the
// next coalescing boundary. Called with the renderer unlocked.
func (r *Renderer) scheduleRender() {
	r.scheduler.RequestFrame(r.renderText)
}

func (r *Renderer) renderText() {
	r.mu.Lock()
	src := r.textAccum.String()
	r.mu.Unlock()

	html, err := r.parser.Parse(src)
	if err != nil {
		r.log.Error("stream: render text", "error", err)
		return
	}
	r.container.SetText(html)
	r.container.MoveCursorToEnd()
	r.bus.Emit("stream:render")
	monitoring.GetGlobalMetrics().RecordStreamRender()
}

// End signals the natural close of the stream: any residual fence marker
// or info line is released as plain text, an in-progress component
// always resolves to a fallback card (it never had a chance to close
// validly), and a final synchronous render runs before the container's
// action listener is bound.
func (r *Renderer) End() {
	r.mu.Lock()
	if r.state == StateDone {
		r.mu.Unlock()
		return
	}

	switch r.state {
	case StateText:
		r.textAccum.WriteString(r.fenceAccum.String())
		r.fenceAccum.Reset()
	case StateFenceMaybe:
		r.textAccum.WriteString(r.fenceAccum.String())
		r.textAccum.WriteString(r.infoLine.String())
		r.fenceAccum.Reset()
	case StateComponent:
		r.stopSkeletonTimerLocked()
		html := registry.FallbackCard("stream ended before the component's closing fence arrived", r.componentJSON.String())
		r.materializeLocked(html)
		r.bus.Emit("stream:component:incomplete", r.componentType)
	}

	r.state = StateDone
	r.scheduler.Cancel()
	r.mu.Unlock()

	r.renderText()
	r.container.BindActions(r.handleAction)
	r.bus.Emit("stream:end")
}

// Abort signals a hard stop (the producer disconnected, the caller
// cancelled). Unlike End, it performs no final text render: the document
// stays exactly as last painted, except that a component still in
// progress is swapped for a fallback card, since leaving a bare
// placeholder on screen forever would be worse than one more mutation.
// Idempotent — a second Abort or a following End is a no-op.
func (r *Renderer) Abort() {
	r.mu.Lock()
	if r.aborted || r.state == StateDone {
		r.mu.Unlock()
		return
	}
	r.aborted = true

	if r.state == StateComponent {
		r.stopSkeletonTimerLocked()
		html := registry.FallbackCard("stream aborted before the component finished", r.componentJSON.String())
		r.materializeLocked(html)
	}

	r.state = StateDone
	r.scheduler.Cancel()
	r.mu.Unlock()

	r.bus.Emit("stream:abort")
}

func (r *Renderer) handleAction(payload map[string]interface{}) {
	r.bus.Emit("stream:action", payload)
}
