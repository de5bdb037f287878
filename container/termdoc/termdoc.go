// Package termdoc implements container.Container as a live terminal
// surface: a running Bubble Tea program whose View paints the document's
// current blocks through Lip Gloss, with a Bubbles spinner standing in
// for a streaming component's "still loading" glyph.
//
// Unlike container/headless, termdoc is driven from two directions at
// once: the renderer calls SetText/InsertPlaceholder/etc. synchronously
// from whatever goroutine is pumping the token stream, while Bubble Tea
// repaints asynchronously from its own event loop. Container mutates a
// mutex-protected block list directly — satisfying the interface without
// waiting on the program — and wakes the running program with a refresh
// message so the next View reflects the change.
package termdoc

import (
	"fmt"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"

	"github.com/livellm/livellm/container"
	"github.com/livellm/livellm/pkg/livellm/registry"
	"github.com/livellm/livellm/pkg/livellm/widgets"
)

type blockKind int

const (
	blockText blockKind = iota
	blockPlaceholder
	blockResolved
)

type block struct {
	id        container.NodeID
	kind      blockKind
	content   string
	minHeight int
	spin      spinner.Model
}

// Container is a container.Container backed by a running Bubble Tea
// program. Construct one with New, then pass Program() to tea.NewProgram
// and run it on its own goroutine; the Container itself is safe to drive
// from any other goroutine concurrently.
type Container struct {
	mu       sync.Mutex
	blocks   []*block
	nextID   int
	cursorAt int
	cursorOn bool
	onAction func(map[string]interface{})

	theme   widgets.Theme
	width   int
	program *tea.Program
}

// New returns an empty terminal container styled with theme (the zero
// Theme falls back to widgets.DefaultTheme).
func New(theme widgets.Theme) *Container {
	if (theme == widgets.Theme{}) {
		theme = widgets.DefaultTheme
	}
	c := &Container{theme: theme, width: 80, cursorOn: true}
	c.blocks = append(c.blocks, &block{kind: blockText})
	return c
}

// Program wires c into a *tea.Program and remembers it so later mutations
// can wake its event loop. Call this once before tea.Program.Run.
func (c *Container) Program(opts ...tea.ProgramOption) *tea.Program {
	c.mu.Lock()
	c.program = tea.NewProgram(model{c: c}, opts...)
	p := c.program
	c.mu.Unlock()
	return p
}

// refreshMsg asks the running program to repaint from the container's
// current state; it carries no data of its own.
type refreshMsg struct{}

func (c *Container) wake() {
	c.mu.Lock()
	p := c.program
	c.mu.Unlock()
	if p != nil {
		p.Send(refreshMsg{})
	}
}

func (c *Container) SetText(rendered string) {
	c.mu.Lock()
	for i := len(c.blocks) - 1; i >= 0; i-- {
		if c.blocks[i].kind == blockText {
			c.blocks[i].content = rendered
			c.mu.Unlock()
			c.wake()
			return
		}
	}
	c.blocks = append(c.blocks, &block{kind: blockText, content: rendered})
	c.mu.Unlock()
	c.wake()
}

func (c *Container) InsertPlaceholder(p registry.Placeholder) container.NodeID {
	c.mu.Lock()
	c.nextID++
	id := container.NodeID(fmt.Sprintf("n%d", c.nextID))
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(c.theme.Info)
	b := &block{id: id, kind: blockPlaceholder, content: p.HTML, minHeight: p.MinHeight, spin: sp}
	c.blocks = append(c.blocks, b)
	c.mu.Unlock()
	c.wake()
	return id
}

func (c *Container) ReplacePlaceholder(id container.NodeID, rendered string) error {
	c.mu.Lock()
	for _, b := range c.blocks {
		if b.id == id && b.kind == blockPlaceholder {
			b.kind = blockResolved
			b.content = rendered
			c.mu.Unlock()
			c.wake()
			return nil
		}
	}
	c.mu.Unlock()
	return fmt.Errorf("termdoc: no placeholder with id %q", id)
}

func (c *Container) AppendText() {
	c.mu.Lock()
	c.blocks = append(c.blocks, &block{kind: blockText})
	c.mu.Unlock()
	c.wake()
}

func (c *Container) MoveCursorToEnd() {
	c.mu.Lock()
	c.cursorAt = len(c.blocks)
	c.mu.Unlock()
	c.wake()
}

func (c *Container) Clear() {
	c.mu.Lock()
	c.blocks = []*block{{kind: blockText}}
	c.cursorAt = 0
	c.mu.Unlock()
	c.wake()
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
	c.onAction = onAction
	c.mu.Unlock()
}

// Dispatch runs the bound action listener, the same entry point a live
// component's key handling calls into when it emits a "livellm:action".
func (c *Container) Dispatch(payload map[string]interface{}) {
	c.mu.Lock()
	handler := c.onAction
	c.mu.Unlock()
	if handler != nil {
		handler(payload)
	}
}

// SetWidth sets the column width View wraps rendered blocks to.
func (c *Container) SetWidth(w int) {
	c.mu.Lock()
	c.width = w
	c.mu.Unlock()
}

// Render paints the current document: resolved and text blocks verbatim,
// an in-progress placeholder as its skeleton glyph with a spinner padded
// with blank lines up to its descriptor's MinHeight so the blocks below
// it don't reflow when it resolves, and the streaming cursor glyph (a lit
// block) appended after the last painted block when the cursor sits at
// the document's end.
func (c *Container) Render() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out strings.Builder
	for i, b := range c.blocks {
		switch b.kind {
		case blockPlaceholder:
			out.WriteString(b.spin.View())
			out.WriteString(" ")
			out.WriteString(lipgloss.NewStyle().Foreground(c.theme.Muted).Render(b.content))
			for pad := 1; pad < b.minHeight; pad++ {
				out.WriteString("\n")
			}
		default:
			out.WriteString(b.content)
		}
		if i == c.cursorAt-1 && c.cursorOn {
			out.WriteString(cursorGlyph(c.theme))
		}
		out.WriteString("\n")
	}
	if c.width > 0 {
		return lipgloss.NewStyle().Width(c.width).Render(out.String())
	}
	return out.String()
}

func cursorGlyph(t widgets.Theme) string {
	return lipgloss.NewStyle().Foreground(t.Primary).Render("▌")
}

// hasActiveSpinner reports whether any placeholder still needs spinner
// frame ticks.
func (c *Container) hasActiveSpinner() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, b := range c.blocks {
		if b.kind == blockPlaceholder {
			return true
		}
	}
	return false
}

func (c *Container) tickSpinners(msg spinner.TickMsg) tea.Cmd {
	c.mu.Lock()
	defer c.mu.Unlock()
	var cmds []tea.Cmd
	for _, b := range c.blocks {
		if b.kind != blockPlaceholder {
			continue
		}
		var cmd tea.Cmd
		b.spin, cmd = b.spin.Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

// model is the tea.Model that drives the live document. It owns no
// document state of its own — every View call reads straight through to
// c, so concurrent SetText/InsertPlaceholder/etc. calls are visible on
// the very next repaint without any message round-trip.
type model struct {
	c *Container
}

func (m model) Init() tea.Cmd {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return sp.Tick
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}
		m.c.Dispatch(map[string]interface{}{"component": "termdoc", "action": "key", "data": msg.String()})
		return m, nil
	case tea.WindowSizeMsg:
		m.c.SetWidth(msg.Width)
		return m, nil
	case spinner.TickMsg:
		if !m.c.hasActiveSpinner() {
			return m, nil
		}
		cmd := m.c.tickSpinners(msg)
		return m, cmd
	case refreshMsg:
		return m, nil
	}
	return m, nil
}

func (m model) View() string {
	return m.c.Render()
}
