package detect

import (
	"encoding/json"
	"fmt"
)

type lineSpan struct {
	text  string
	start int
	end   int
}

// splitLinesKeepOffsets splits source into lines, each carrying the
// character offsets of the substring it came from (including its
// trailing newline when present), per the "offset arithmetic in
// detectors" design note: always computed from the original source.
func splitLinesKeepOffsets(source string) []lineSpan {
	var spans []lineSpan
	start := 0
	for i := 0; i < len(source); i++ {
		if source[i] == '\n' {
			spans = append(spans, lineSpan{text: source[start:i], start: start, end: i + 1})
			start = i + 1
		}
	}
	if start < len(source) {
		spans = append(spans, lineSpan{text: source[start:], start: start, end: len(source)})
	}
	return spans
}

// emitBlockDirective renders data as a fenced livellm:<type> block, the
// same source-text shape the parser expects to re-consume.
func emitBlockDirective(componentType string, data map[string]interface{}) string {
	encoded, err := json.Marshal(data)
	if err != nil {
		encoded = []byte("{}")
	}
	return fmt.Sprintf("```livellm:%s\n%s\n```", componentType, encoded)
}

// emitInlineDirective renders data as an inline livellm:<type>{…} run.
func emitInlineDirective(componentType string, data map[string]interface{}) string {
	encoded, err := json.Marshal(data)
	if err != nil {
		encoded = []byte("{}")
	}
	return fmt.Sprintf("`livellm:%s%s`", componentType, encoded)
}
