// Package render implements the one-shot render path: a markdown string
// goes through pattern detection, parsing and optional sanitisation
// before landing in a container, as opposed to the incremental path in
// package stream.
package render

import (
	"log/slog"

	"github.com/livellm/livellm/container"
	"github.com/livellm/livellm/pkg/livellm/bus"
	"github.com/livellm/livellm/pkg/livellm/detect"
	"github.com/livellm/livellm/pkg/livellm/parser"
)

// Sanitizer post-processes rendered HTML/text before it reaches a
// container — a caller-supplied external collaborator, matching the
// out-of-scope "HTML sanitisation" boundary.
type Sanitizer func(rendered string) string

// Wrapper optionally wraps rendered content in a prose-typography
// container (a styling concern external to parsing).
type Wrapper func(rendered string) string

// Renderer is the static, one-shot render pipeline: transform (if a
// Transformer is set) -> parse -> sanitise -> wrap -> set into the
// container -> bind actions.
type Renderer struct {
	Transformer *detect.Transformer
	Sanitize    Sanitizer
	Wrap        Wrapper
	OnAction    func(payload map[string]interface{})

	parser *parser.Parser
	bus    *bus.Bus
	log    *slog.Logger
}

// New builds a Renderer backed by md, emitting lifecycle events on b
// (nil creates a private bus).
func New(md *parser.Parser, b *bus.Bus) *Renderer {
	if b == nil {
		b = bus.New(nil)
	}
	return &Renderer{parser: md, bus: b, log: slog.Default()}
}

// Bus returns the event bus this renderer emits lifecycle events on.
func (r *Renderer) Bus() *bus.Bus { return r.bus }

// RenderToString runs the pipeline and returns the finished content
// without touching any container.
func (r *Renderer) RenderToString(markdown string) string {
	r.bus.Emit("render:start")

	source := markdown
	if r.Transformer != nil {
		source = r.Transformer.Transform(source)
	}

	out, err := r.parser.Parse(source)
	if err != nil {
		r.log.Error("render: parse failed", "error", err)
		r.bus.Emit("render:error", err.Error())
		return ""
	}

	if r.Sanitize != nil {
		out = r.Sanitize(out)
	}
	if r.Wrap != nil {
		out = r.Wrap(out)
	}

	r.bus.Emit("render:complete")
	return out
}

// Render runs RenderToString and sets the result into c, binding the
// container's action listener to OnAction (a no-op if unset).
func (r *Renderer) Render(markdown string, c container.Container) {
	c.Clear()
	out := r.RenderToString(markdown)
	c.SetText(out)
	c.MoveCursorToEnd()

	onAction := r.OnAction
	if onAction == nil {
		onAction = func(map[string]interface{}) {}
	}
	c.BindActions(onAction)
}

// Clear empties target.
func Clear(target container.Container) {
	target.Clear()
}
