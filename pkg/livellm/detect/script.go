package detect

import (
	"fmt"

	"github.com/dop251/goja"
)

// ScriptDetector is a host-registered detector whose detect/transform
// pair is implemented in JavaScript, letting a host customise pattern
// recognition without recompiling the binary. DetectScript must evaluate
// to an array of objects shaped like
// {start, end, confidence, data}; TransformScript must evaluate to a
// string given a bound `match` object.
type ScriptDetector struct {
	NameValue       string
	DetectScript    string
	TransformScript string
}

func (d *ScriptDetector) Name() string { return d.NameValue }

type scriptMatch struct {
	Start      int                    `json:"start"`
	End        int                    `json:"end"`
	Confidence float64                `json:"confidence"`
	Data       map[string]interface{} `json:"data"`
}

func (d *ScriptDetector) Detect(source string) ([]Match, error) {
	vm := goja.New()
	if err := vm.Set("source", source); err != nil {
		return nil, fmt.Errorf("detect: bind source: %w", err)
	}

	raw, err := vm.RunString(d.DetectScript)
	if err != nil {
		return nil, fmt.Errorf("detect: run script %q: %w", d.NameValue, err)
	}

	var results []scriptMatch
	if err := vm.ExportTo(raw, &results); err != nil {
		return nil, fmt.Errorf("detect: export script result for %q: %w", d.NameValue, err)
	}

	matches := make([]Match, len(results))
	for i, r := range results {
		matches[i] = Match{
			Start:      r.Start,
			End:        r.End,
			Data:       r.Data,
			Confidence: clampConfidence(r.Confidence),
			Explain:    []string{"goja script detector"},
		}
	}
	return matches, nil
}

func (d *ScriptDetector) Transform(source string, m Match) string {
	vm := goja.New()
	_ = vm.Set("match", map[string]interface{}{
		"start":      m.Start,
		"end":        m.End,
		"data":       m.Data,
		"confidence": m.Confidence,
	})
	raw, err := vm.RunString(d.TransformScript)
	if err != nil {
		return ""
	}
	return raw.String()
}
