// Package container defines the single abstraction boundary the core
// renders through: it stands in for "the browser's DOM engine" that the
// specification treats as an external, out-of-scope collaborator.
//
// Two adapters are provided: container/headless, an in-memory buffer used
// by the static and stream renderer tests, and container/termdoc, a
// Bubble Tea / Lip Gloss terminal surface that makes the rendered
// document genuinely live and interactive.
package container

import "github.com/livellm/livellm/pkg/livellm/registry"

// NodeID identifies a node within a Container instance. Its zero value
// never identifies a real node.
type NodeID string

// Container is the minimal DOM-like surface the parser, stream renderer,
// static renderer and action router all render and bind actions through.
//
// A Container holds an ordered sequence of blocks: text blocks (the
// running prose between components) and component blocks (placeholders
// that resolve into a finished component, an error card, or a fallback
// card). Exactly one text block is "current" at a time — SetText
// replaces its content in place, matching the stream renderer's
// dirty-mark-and-re-render cadence for the active text run.
type Container interface {
	// SetText replaces the content of the current text block. Called
	// once per scheduled frame while TEXT is accumulating, and once more
	// (forced) at end-of-stream.
	SetText(rendered string)

	// InsertPlaceholder appends a new placeholder block for an
	// in-progress component and returns its id. This call is always
	// immediate — out of band from the frame cadence — to preserve the
	// perceptual atomicity of component materialisation.
	InsertPlaceholder(p registry.Placeholder) NodeID

	// ReplacePlaceholder swaps the placeholder at id for its resolved
	// rendered content (the real component, an error card, or a fallback
	// card). Also immediate.
	ReplacePlaceholder(id NodeID, rendered string) error

	// AppendText starts a fresh text block after the most recently
	// resolved component, becoming the new "current" text block that
	// SetText targets.
	AppendText()

	// MoveCursorToEnd repositions the optional streaming cursor glyph
	// after a render.
	MoveCursorToEnd()

	// Clear empties the container entirely.
	Clear()

	// Text returns the concatenation of every block's plain-text content,
	// in document order — used to check the static-render equality
	// property against a completed stream.
	Text() string

	// BindActions wires a single, event-delegated action listener over
	// the whole container, invoking onAction for every
	// "livellm:action"-shaped event a descendant component emits.
	BindActions(onAction func(payload map[string]interface{}))
}
