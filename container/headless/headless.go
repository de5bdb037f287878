// Package headless implements container.Container as an in-memory block
// buffer, with no terminal or rendering dependency — the adapter the
// static and stream renderer tests run against.
package headless

import (
	"fmt"
	"strings"
	"sync"

	"github.com/livellm/livellm/container"
	"github.com/livellm/livellm/pkg/livellm/registry"
)

type blockKind int

const (
	blockText blockKind = iota
	blockPlaceholder
	blockResolved
)

type block struct {
	id      container.NodeID
	kind    blockKind
	content string
}

// Container is a headless, in-memory container.Container.
type Container struct {
	mu       sync.Mutex
	blocks   []*block
	nextID   int
	cursorAt int
	onAction func(map[string]interface{})
}

// New returns an empty headless container with one current text block.
func New() *Container {
	c := &Container{}
	c.blocks = append(c.blocks, &block{kind: blockText})
	return c
}

func (c *Container) SetText(rendered string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := len(c.blocks) - 1; i >= 0; i-- {
		if c.blocks[i].kind == blockText {
			c.blocks[i].content = rendered
			return
		}
	}
	c.blocks = append(c.blocks, &block{kind: blockText, content: rendered})
}

func (c *Container) InsertPlaceholder(p registry.Placeholder) container.NodeID {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	id := container.NodeID(fmt.Sprintf("n%d", c.nextID))
	c.blocks = append(c.blocks, &block{id: id, kind: blockPlaceholder, content: p.HTML})
	return id
}

func (c *Container) ReplacePlaceholder(id container.NodeID, rendered string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, b := range c.blocks {
		if b.id == id && b.kind == blockPlaceholder {
			b.kind = blockResolved
			b.content = rendered
			return nil
		}
	}
	return fmt.Errorf("headless: no placeholder with id %q", id)
}

func (c *Container) AppendText() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.blocks = append(c.blocks, &block{kind: blockText})
}

func (c *Container) MoveCursorToEnd() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cursorAt = len(c.blocks)
}

func (c *Container) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.blocks = []*block{{kind: blockText}}
	c.cursorAt = 0
}

func (c *Container) Text() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	var b strings.Builder
	for _, blk := range c.blocks {
		b.WriteString(blk.content)
	}
	return b.String()
}

func (c *Container) BindActions(onAction func(map[string]interface{})) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onAction = onAction
}

// Dispatch simulates a component emitting a "livellm:action" event,
// exercising the single event-delegated listener BindActions installed.
func (c *Container) Dispatch(payload map[string]interface{}) {
	c.mu.Lock()
	handler := c.onAction
	c.mu.Unlock()
	if handler != nil {
		handler(payload)
	}
}

// PlaceholderCount reports how many blocks are still unresolved
// placeholders, used by stream renderer tests asserting abort semantics.
func (c *Container) PlaceholderCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, b := range c.blocks {
		if b.kind == blockPlaceholder {
			n++
		}
	}
	return n
}

// ResolvedCount reports how many component blocks finished resolving.
func (c *Container) ResolvedCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, b := range c.blocks {
		if b.kind == blockResolved {
			n++
		}
	}
	return n
}
