package stream

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/livellm/livellm/container/headless"
	"github.com/livellm/livellm/pkg/livellm/parser"
	"github.com/livellm/livellm/pkg/livellm/registry"
)

func newTestRenderer(t *testing.T) (*Renderer, *headless.Container) {
	t.Helper()
	reg := registry.New(nil)
	registry.RegisterBuiltIns(reg)
	c := headless.New()
	md := parser.New(reg, nil, 0)
	r := New(c, reg, md, nil, SyncScheduler{})
	return r, c
}

func TestPureTextStreamRendersIncrementally(t *testing.T) {
	r, c := newTestRenderer(t)
	r.Push("hello ")
	r.Push("*world*")
	r.End()

	assert.Equal(t, StateDone, r.State())
	assert.Contains(t, c.Text(), "hello")
	assert.Contains(t, c.Text(), "<em>world</em>")
}

func TestSingleBlockComponentMaterializes(t *testing.T) {
	r, c := newTestRenderer(t)

	var started, resolved bool
	r.Bus().On("stream:component:start", func(args ...interface{}) { started = true })
	r.Bus().On("stream:component:resolved", func(args ...interface{}) { resolved = true })

	r.Push("before\n\n```livellm:alert\n")
	require.Equal(t, StateComponent, r.State())
	assert.Equal(t, 1, c.PlaceholderCount())

	r.Push(`{"type":"info","text":"Hi"}`)
	r.Push("\n```\n\nafter")
	r.End()

	assert.True(t, started)
	assert.True(t, resolved)
	assert.Equal(t, 0, c.PlaceholderCount())
	assert.Equal(t, 1, c.ResolvedCount())
	assert.Contains(t, c.Text(), "Hi")
}

func TestComponentSplitAcrossManyChunks(t *testing.T) {
	r, c := newTestRenderer(t)
	chunks := []string{"```", "livellm:alert\n", `{"type":`, `"info",`, `"text":"Hi"}`, "\n", "```", "\nafter"}
	for _, chunk := range chunks {
		r.Push(chunk)
	}
	r.End()

	assert.Equal(t, 1, c.ResolvedCount())
	assert.Contains(t, c.Text(), "Hi")
}

func TestBrokenJSONBecomesFallbackCard(t *testing.T) {
	r, c := newTestRenderer(t)
	r.Push("```livellm:alert\n{\"type\":\"info\"\n```\nafter")
	r.End()

	assert.Equal(t, 1, c.ResolvedCount())
	assert.Contains(t, c.Text(), "Unable to render component")
}

func TestEndWhileStillInComponentBodyYieldsFallback(t *testing.T) {
	r, c := newTestRenderer(t)
	r.Push(`before ` + "```livellm:alert\n" + `{"type":"info"`)
	require.Equal(t, StateComponent, r.State())

	r.End()

	assert.Equal(t, StateDone, r.State())
	assert.Equal(t, 0, c.PlaceholderCount())
	assert.Equal(t, 1, c.ResolvedCount())
	assert.Contains(t, c.Text(), "Unable to render component")
}

func TestAbortMidComponentReplacesPlaceholderOnly(t *testing.T) {
	r, c := newTestRenderer(t)
	r.Push("```livellm:alert\n{\"type\":\"info\"")

	var aborted bool
	r.Bus().On("stream:abort", func(args ...interface{}) { aborted = true })

	r.Abort()

	assert.True(t, aborted)
	assert.Equal(t, StateDone, r.State())
	assert.Equal(t, 0, c.PlaceholderCount())
	assert.Contains(t, c.Text(), "Unable to render component")

	// Further input after abort is a no-op.
	r.Push("more text")
	r.End()
}

func TestEndWithPendingBackticksInTextFlushesThemAsText(t *testing.T) {
	r, c := newTestRenderer(t)
	r.Push("trailing text\n")
	r.Push("`")
	require.Equal(t, StateText, r.State())

	r.End()

	assert.Equal(t, StateDone, r.State())
	assert.Contains(t, c.Text(), "trailing text")
	assert.Contains(t, c.Text(), "`")
}

func TestSkeletonDelaySuppressesPlaceholderForFastComponent(t *testing.T) {
	r, c := newTestRenderer(t)
	r.SkeletonDelay = time.Hour

	r.Push("```livellm:alert\n")
	require.Equal(t, StateComponent, r.State())
	assert.Equal(t, 0, c.PlaceholderCount(), "skeleton must not appear before SkeletonDelay elapses")

	r.Push(`{"type":"info","text":"Hi"}`)
	r.Push("\n```\n")
	r.End()

	assert.Equal(t, 0, c.PlaceholderCount())
	assert.Equal(t, 1, c.ResolvedCount())
	assert.Contains(t, c.Text(), "Hi")
}

func TestSkeletonDelayShowsPlaceholderOnceElapsed(t *testing.T) {
	r, c := newTestRenderer(t)
	r.SkeletonDelay = time.Millisecond

	r.Push("```livellm:alert\n")
	require.Equal(t, StateComponent, r.State())

	require.Eventually(t, func() bool {
		return c.PlaceholderCount() == 1
	}, time.Second, time.Millisecond, "skeleton should appear once SkeletonDelay elapses")

	r.Push(`{"type":"info","text":"Hi"}`)
	r.Push("\n```\n")
	r.End()

	assert.Equal(t, 0, c.PlaceholderCount())
	assert.Equal(t, 1, c.ResolvedCount())
}

func TestEndTwiceIsIdempotent(t *testing.T) {
	r, _ := newTestRenderer(t)
	r.Push("hi")
	r.End()
	r.End()
	assert.Equal(t, StateDone, r.State())
}

func TestFenceThatIsNotADirectiveFallsBackToCode(t *testing.T) {
	r, c := newTestRenderer(t)
	r.Push("```go\nfmt.Println(1)\n```\n")
	r.End()

	assert.Contains(t, c.Text(), "fmt.Println(1)")
	assert.Equal(t, 0, c.ResolvedCount())
}

func TestUnknownComponentTypeFallsBack(t *testing.T) {
	r, c := newTestRenderer(t)
	r.Push("```livellm:nope\n{}\n```\n")
	r.End()

	assert.Contains(t, c.Text(), "unknown component type")
}

func TestActionsAreBoundAfterEnd(t *testing.T) {
	r, c := newTestRenderer(t)
	r.Push("hi")

	var got map[string]interface{}
	r.Bus().On("stream:action", func(args ...interface{}) {
		got = args[0].(map[string]interface{})
	})

	r.End()
	c.Dispatch(map[string]interface{}{"componentId": "abc", "type": "confirm"})

	require.NotNil(t, got)
	assert.Equal(t, "abc", got["componentId"])
}
