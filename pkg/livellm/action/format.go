package action

import "fmt"

// FormatAction produces a single-line, natural-language rendering of an
// action suitable for appending to an LLM message history, dispatching on
// Kind. Used as the default label when neither a per-component template
// nor an explicit label from the event payload is available.
func FormatAction(a Action) string {
	if tmpl, ok := defaultTemplates[a.Kind]; ok {
		return tmpl(a)
	}
	return defaultTemplates["default"](a)
}

var defaultTemplates = map[string]func(Action) string{
	"select": func(a Action) string {
		return fmt.Sprintf("User selected: %v", a.Value)
	},
	"confirm": func(a Action) string {
		if b, ok := a.Value.(bool); ok {
			if b {
				return "User confirmed"
			}
			return "User declined"
		}
		return fmt.Sprintf("User responded to confirmation: %v", a.Value)
	},
	"cancel": func(a Action) string {
		return "User cancelled the interaction"
	},
	"submit": func(a Action) string {
		return fmt.Sprintf("User submitted: %v", a.Value)
	},
	"change": func(a Action) string {
		return fmt.Sprintf("User changed %s to: %v", a.Component, a.Value)
	},
	"default": func(a Action) string {
		return fmt.Sprintf("User performed %q on %s: %v", a.Kind, a.Component, a.Value)
	},
}
