package registry

import (
	"fmt"
	"strings"

	"github.com/livellm/livellm/pkg/livellm/schema"
	"github.com/livellm/livellm/pkg/livellm/widgets"
)

// FallbackCard renders the visible block shown when a directive cannot be
// honoured at all: malformed JSON, or a type that isn't registered. body
// is the raw, unparsed directive body, shown verbatim so the author can
// see what went wrong.
func FallbackCard(reason, body string) string {
	c := widgets.Card(widgets.CardProps{
		Title:   "Unable to render component",
		Content: reason + "\n\n" + preformatted(body),
		NoBorder: false,
	})
	c.Init()
	return c.View()
}

// ErrorCard renders the visible block shown when a directive is
// well-formed but fails schema validation: every violation, plus the raw
// body.
func ErrorCard(componentType string, errs []schema.ValidationError, body string) string {
	var lines strings.Builder
	fmt.Fprintf(&lines, "Component %q failed validation:\n", componentType)
	for _, e := range errs {
		lines.WriteString("  - ")
		lines.WriteString(e.Error())
		lines.WriteString("\n")
	}
	c := widgets.Card(widgets.CardProps{
		Title:   "Component validation error",
		Content: lines.String() + "\n" + preformatted(body),
	})
	c.Init()
	return c.View()
}

func preformatted(body string) string {
	if body == "" {
		return ""
	}
	return "  " + strings.ReplaceAll(body, "\n", "\n  ")
}
