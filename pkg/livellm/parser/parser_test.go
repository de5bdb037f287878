package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/livellm/livellm/pkg/livellm/registry"
)

func newTestParser() *Parser {
	reg := registry.New(nil)
	registry.RegisterBuiltIns(reg)
	return New(reg, nil, 0)
}

func TestParsePlainText(t *testing.T) {
	p := newTestParser()
	out, err := p.Parse("hello *world*")
	require.NoError(t, err)
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, "<em>world</em>")
}

func TestParseBlockDirectiveSuccess(t *testing.T) {
	p := newTestParser()
	src := "before\n\n```livellm:alert\n{\"type\":\"info\",\"text\":\"Hi\"}\n```\n\nafter"
	out, err := p.Parse(src)
	require.NoError(t, err)
	assert.Contains(t, out, `Hi`)
	assert.Contains(t, out, "INFO")
}

func TestParseBlockDirectiveMalformedJSON(t *testing.T) {
	p := newTestParser()
	src := "```livellm:alert\n{\"type\":\"info\"\n```"
	out, err := p.Parse(src)
	require.NoError(t, err)
	assert.NotContains(t, out, "<livellm-alert")
	assert.Contains(t, out, "Unable to render component")
}

func TestParseBlockDirectiveUnknownType(t *testing.T) {
	p := newTestParser()
	src := "```livellm:nope\n{}\n```"
	out, err := p.Parse(src)
	require.NoError(t, err)
	assert.Contains(t, out, "unknown component type")
}

func TestParseBlockDirectiveSchemaFailure(t *testing.T) {
	p := newTestParser()
	src := "```livellm:alert\n{\"type\":\"bogus\"}\n```"
	out, err := p.Parse(src)
	require.NoError(t, err)
	assert.Contains(t, out, "failed validation")
}

func TestParseInlineDirectiveSuccess(t *testing.T) {
	p := newTestParser()
	src := "see `livellm:confirm{\"question\":\"ok?\"}` now"
	out, err := p.Parse(src)
	require.NoError(t, err)
	assert.Contains(t, out, "Confirm")
	assert.Contains(t, out, "ok?")
}

func TestParseInlineCodeFallsThroughWhenNotDirective(t *testing.T) {
	p := newTestParser()
	out, err := p.Parse("run `ls -la` now")
	require.NoError(t, err)
	assert.Contains(t, out, "<code>ls -la</code>")
}

func TestParseNonLivellmFencedCodeUnaffected(t *testing.T) {
	p := newTestParser()
	out, err := p.Parse("```go\nfmt.Println(1)\n```")
	require.NoError(t, err)
	assert.Contains(t, out, `class="language-go"`)
	assert.Contains(t, out, "fmt.Println(1)")
}
