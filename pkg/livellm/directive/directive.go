// Package directive defines the parsed component invocation that the
// parser and stream renderer produce from source text, and the helpers
// for decoding its props into a typed struct.
package directive

import (
	"fmt"
	"regexp"

	"github.com/gofrs/uuid/v5"
	"github.com/mitchellh/mapstructure"
)

// identPattern matches a directive type name: an identifier start
// character followed by identifier or hyphen characters.
var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)

// ValidType reports whether typeName is a syntactically valid directive
// type, per the grammar in the directive source-text grammar.
func ValidType(typeName string) bool {
	return identPattern.MatchString(typeName)
}

// Form distinguishes a block directive (fenced section) from an inline
// one (monospace-delimited run).
type Form int

const (
	Block Form = iota
	Inline
)

func (f Form) String() string {
	if f == Inline {
		return "inline"
	}
	return "block"
}

// Directive is a parsed component invocation.
type Directive struct {
	Type  string
	Props map[string]interface{}
	Form  Form
}

// NewID generates a fresh instance identifier for a directive/stream
// component, used for Action.Metadata.ComponentID and placeholder
// bookkeeping.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// uuid.NewV7 only fails if the process entropy source is broken;
		// fall back to a V4 draw rather than propagating an error from a
		// pure ID helper.
		id = uuid.Must(uuid.NewV4())
	}
	return id.String()
}

// DecodeInto decodes a validated, defaults-applied props map into a typed
// built-in component struct, using `mapstructure` tags on dst's fields.
func DecodeInto(props map[string]interface{}, dst interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           dst,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return fmt.Errorf("directive: build decoder: %w", err)
	}
	if err := decoder.Decode(props); err != nil {
		return fmt.Errorf("directive: decode props: %w", err)
	}
	return nil
}

// TagName derives the custom-element tag name the registry exposes for a
// component type, e.g. "alert" -> "livellm-alert".
func TagName(componentType string) string {
	return "livellm-" + componentType
}
