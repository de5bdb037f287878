// Package parser wraps a goldmark Markdown tokenizer, recognising fenced
// and inline component directives and emitting HTML with placeholder
// tags carrying serialised, defaults-applied props. Non-directive
// Markdown passes through goldmark's own rendering untouched.
package parser

import (
	"bytes"
	"encoding/json"
	"regexp"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	gmparser "github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"

	"github.com/livellm/livellm/pkg/livellm/bus"
	"github.com/livellm/livellm/pkg/livellm/directive"
	"github.com/livellm/livellm/pkg/livellm/monitoring"
	"github.com/livellm/livellm/pkg/livellm/registry"
)

// DefaultMaxJSONSize caps a directive body's JSON payload, per the
// security.maxJsonSize host-configuration option.
const DefaultMaxJSONSize = 64 * 1024

// rendererOverridePriority must sort after goldmark's own html.Renderer
// (registered internally at priority 1000): goldmark.NewRenderer applies
// NodeRenderers in ascending priority order and a later registration for
// the same ast.NodeKind replaces an earlier one, so our directive
// overrides for FencedCodeBlock/CodeSpan must run after the default.
const rendererOverridePriority = 1500

var inlinePattern = regexp.MustCompile(`^livellm:([A-Za-z_][A-Za-z0-9_-]*)\{(.*)\}$`)

// Parser is the directive-aware Markdown-to-HTML pipeline.
type Parser struct {
	md          goldmark.Markdown
	registry    *registry.Registry
	bus         *bus.Bus
	maxJSONSize int
}

// New builds a Parser backed by reg for directive resolution, emitting
// lifecycle events on b (may be nil). maxJSONSize <= 0 uses
// DefaultMaxJSONSize.
func New(reg *registry.Registry, b *bus.Bus, maxJSONSize int) *Parser {
	if b == nil {
		b = bus.New(nil)
	}
	if maxJSONSize <= 0 {
		maxJSONSize = DefaultMaxJSONSize
	}

	p := &Parser{registry: reg, bus: b, maxJSONSize: maxJSONSize}
	p.md = goldmark.New(
		goldmark.WithExtensions(extension.Table, extension.Linkify),
		goldmark.WithParserOptions(gmparser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			renderer.WithNodeRenderers(util.Prioritized(&directiveRenderer{p: p}, rendererOverridePriority)),
		),
	)
	return p
}

// Parse converts markdown source to HTML, resolving any embedded
// directives against the parser's registry. It never returns a Go error
// for a bad directive body — those become fallback/error cards in the
// output per the failure-semantics table; the returned error only
// reflects a goldmark tokenizer failure.
func (p *Parser) Parse(source string) (string, error) {
	p.bus.Emit("parser:start")
	var buf bytes.Buffer
	if err := p.md.Convert([]byte(source), &buf); err != nil {
		p.bus.Emit("parser:error", err.Error())
		return "", err
	}
	p.bus.Emit("parser:complete")
	return buf.String(), nil
}

type directiveRenderer struct{ p *Parser }

func (r *directiveRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, r.renderFencedCodeBlock)
	reg.Register(ast.KindCodeSpan, r.renderCodeSpan)
}

func (r *directiveRenderer) renderFencedCodeBlock(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	node := n.(*ast.FencedCodeBlock)
	lang := string(node.Language(source))

	typeName, ok := blockDirectiveType(lang)
	if !ok {
		writeDefaultFence(w, source, node, lang)
		return ast.WalkContinue, nil
	}

	body := collectLines(source, node)
	w.WriteString(r.p.resolveDirective(typeName, body, directive.Block))
	w.WriteString("\n")
	return ast.WalkContinue, nil
}

func (r *directiveRenderer) renderCodeSpan(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		w.WriteString("</code>")
		return ast.WalkContinue, nil
	}

	text := collectInlineText(source, n)
	m := inlinePattern.FindStringSubmatch(text)
	if m == nil {
		w.WriteString("<code>")
		w.Write(util.EscapeHTML([]byte(text)))
		return ast.WalkSkipChildren, nil
	}

	typeName, body := m[1], m[2]
	w.WriteString(r.p.resolveDirective(typeName, body, directive.Inline))
	return ast.WalkSkipChildren, nil
}

// blockDirectiveType reports whether info is a syntactically valid
// "livellm:<type>" info string and, if so, the extracted type.
func blockDirectiveType(info string) (string, bool) {
	const prefix = "livellm:"
	if len(info) <= len(prefix) || info[:len(prefix)] != prefix {
		return "", false
	}
	typeName := info[len(prefix):]
	if !directive.ValidType(typeName) {
		return "", false
	}
	return typeName, true
}

func collectLines(source []byte, n *ast.FencedCodeBlock) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(source))
	}
	return buf.String()
}

func collectInlineText(source []byte, n ast.Node) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Segment.Value(source))
		}
	}
	return buf.String()
}

func writeDefaultFence(w util.BufWriter, source []byte, n *ast.FencedCodeBlock, lang string) {
	w.WriteString("<pre><code")
	if lang != "" {
		w.WriteString(` class="language-`)
		w.Write(util.EscapeHTML([]byte(lang)))
		w.WriteString(`"`)
	}
	w.WriteString(">")
	w.Write(util.EscapeHTML([]byte(collectLines(source, n))))
	w.WriteString("</code></pre>\n")
}

// resolveDirective runs the shared validate/default/render path used by
// both the block and inline renderer overrides, and by the stream
// renderer's COMPONENT-state finalisation.
func (p *Parser) resolveDirective(typeName, body string, form directive.Form) string {
	metrics := monitoring.GetGlobalMetrics()

	if len(body) > p.maxJSONSize {
		p.bus.Emit("parser:error", "oversize directive body", typeName)
		metrics.RecordFallbackCard()
		return registry.FallbackCard("component body exceeds the configured size limit", body)
	}

	var props map[string]interface{}
	if err := json.Unmarshal([]byte(body), &props); err != nil {
		p.bus.Emit("parser:error", "malformed JSON", typeName)
		metrics.RecordFallbackCard()
		return registry.FallbackCard("malformed JSON body", body)
	}

	if !p.registry.Has(typeName) {
		p.bus.Emit("parser:error", "unknown component type", typeName)
		metrics.RecordFallbackCard()
		return registry.FallbackCard("unknown component type \""+typeName+"\"", body)
	}

	props = p.registry.ApplyDefaults(typeName, props)
	result := p.registry.Validate(typeName, props)
	if !result.Valid {
		p.bus.Emit("parser:error", "schema validation failed", typeName)
		metrics.RecordErrorCard()
		return registry.ErrorCard(typeName, result.Errors, body)
	}

	p.bus.Emit("parser:component:found", typeName, form.String())
	metrics.RecordComponentMaterialized(typeName)
	return p.registry.Materialize(typeName, props)
}
