package termdoc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/livellm/livellm/pkg/livellm/registry"
	"github.com/livellm/livellm/pkg/livellm/widgets"
)

func TestNewStartsWithOneEmptyTextBlock(t *testing.T) {
	c := New(widgets.Theme{})
	assert.Equal(t, "", c.Text())
}

func TestSetTextUpdatesCurrentBlock(t *testing.T) {
	c := New(widgets.DefaultTheme)
	c.SetText("hello world")
	assert.Equal(t, "hello world", c.Text())
	c.SetText("hello there")
	assert.Equal(t, "hello there", c.Text())
}

func TestInsertAndReplacePlaceholder(t *testing.T) {
	c := New(widgets.DefaultTheme)
	c.SetText("before ")
	id := c.InsertPlaceholder(registry.Placeholder{HTML: "loading…"})
	assert.Contains(t, c.Render(), "loading")

	require.NoError(t, c.ReplacePlaceholder(id, "RESOLVED"))
	assert.Contains(t, c.Text(), "RESOLVED")
	assert.Contains(t, c.Text(), "before ")
}

func TestReplacePlaceholderUnknownIDErrors(t *testing.T) {
	c := New(widgets.DefaultTheme)
	err := c.ReplacePlaceholder("nope", "x")
	assert.Error(t, err)
}

func TestAppendTextStartsNewCurrentBlock(t *testing.T) {
	c := New(widgets.DefaultTheme)
	c.SetText("first")
	c.AppendText()
	c.SetText("second")
	assert.Equal(t, "firstsecond", c.Text())
}

func TestClearResetsDocument(t *testing.T) {
	c := New(widgets.DefaultTheme)
	c.SetText("something")
	c.InsertPlaceholder(registry.Placeholder{HTML: "x"})
	c.Clear()
	assert.Equal(t, "", c.Text())
}

func TestBindActionsAndDispatch(t *testing.T) {
	c := New(widgets.DefaultTheme)
	var got map[string]interface{}
	c.BindActions(func(payload map[string]interface{}) {
		got = payload
	})
	c.Dispatch(map[string]interface{}{"component": "poll", "action": "vote"})
	require.NotNil(t, got)
	assert.Equal(t, "poll", got["component"])
}

func TestDispatchWithoutBoundHandlerIsNoop(t *testing.T) {
	c := New(widgets.DefaultTheme)
	assert.NotPanics(t, func() {
		c.Dispatch(map[string]interface{}{"component": "x"})
	})
}

func TestRenderShowsCursorAtMovedPosition(t *testing.T) {
	c := New(widgets.DefaultTheme)
	c.SetWidth(0)
	c.SetText("text")
	c.MoveCursorToEnd()
	out := c.Render()
	assert.Contains(t, out, "text")
	assert.Contains(t, out, "▌")
}

func TestRenderPadsPlaceholderToMinHeight(t *testing.T) {
	c := New(widgets.DefaultTheme)
	c.SetWidth(0)
	c.SetText("above")
	c.InsertPlaceholder(registry.Placeholder{HTML: "loading…", MinHeight: 4})
	c.AppendText()
	c.SetText("below")

	out := c.Render()
	lines := strings.Split(out, "\n")

	placeholderLine := -1
	for i, l := range lines {
		if strings.Contains(l, "loading") {
			placeholderLine = i
			break
		}
	}
	require.NotEqual(t, -1, placeholderLine, "placeholder line not found in render output")

	belowLine := -1
	for i, l := range lines {
		if strings.Contains(l, "below") {
			belowLine = i
			break
		}
	}
	require.NotEqual(t, -1, belowLine, "below line not found in render output")

	assert.GreaterOrEqual(t, belowLine-placeholderLine, 4,
		"blocks below a placeholder must not reflow into the space reserved by MinHeight")
}

func TestHasActiveSpinnerReflectsPlaceholders(t *testing.T) {
	c := New(widgets.DefaultTheme)
	assert.False(t, c.hasActiveSpinner())
	id := c.InsertPlaceholder(registry.Placeholder{HTML: "…"})
	assert.True(t, c.hasActiveSpinner())
	require.NoError(t, c.ReplacePlaceholder(id, "done"))
	assert.False(t, c.hasActiveSpinner())
}
