package schema

import "github.com/google/jsonschema-go/jsonschema"

// ToJSONSchema translates a Schema into a standard JSON Schema document,
// for hosts that want to feed a component's prop schema into generic
// tooling (editors, doc generators) rather than our flat validator.
func (s Schema) ToJSONSchema() *jsonschema.Schema {
	props := make(map[string]*jsonschema.Schema, len(s))
	var required []string

	for name, spec := range s {
		props[name] = spec.toJSONSchema()
		if spec.Required {
			required = append(required, name)
		}
	}

	return &jsonschema.Schema{
		Type:       "object",
		Properties: props,
		Required:   required,
	}
}

func (spec PropertySpec) toJSONSchema() *jsonschema.Schema {
	out := &jsonschema.Schema{Default: spec.Default}

	switch spec.Type {
	case TypeString:
		out.Type = "string"
	case TypeNumber:
		out.Type = "number"
		if spec.Min != nil {
			out.Minimum = spec.Min
		}
		if spec.Max != nil {
			out.Maximum = spec.Max
		}
	case TypeBoolean:
		out.Type = "boolean"
	case TypeArray:
		out.Type = "array"
	case TypeObject:
		out.Type = "object"
	case TypeEnum:
		out.Enum = spec.Enum
	}

	return out
}
