package detect

import (
	"regexp"
	"strings"
)

// CodeDetector recognises non-livellm fenced code blocks carrying a
// language tag and at least two lines, proposing a code-runner
// component.
type CodeDetector struct {
	ConfidenceRule *Rule
}

func (d *CodeDetector) Name() string { return "code" }

var knownLanguages = map[string]bool{
	"go": true, "python": true, "js": true, "javascript": true, "ts": true,
	"typescript": true, "rust": true, "java": true, "c": true, "cpp": true,
	"bash": true, "sh": true, "sql": true, "json": true, "yaml": true,
}

var fencePattern = regexp.MustCompile("(?s)```([A-Za-z0-9_+-]+)\n(.*?)\n```")

func (d *CodeDetector) Detect(source string) ([]Match, error) {
	var matches []Match

	for _, m := range fencePattern.FindAllStringSubmatchIndex(source, -1) {
		lang := source[m[2]:m[3]]
		if strings.HasPrefix(lang, "livellm:") {
			continue
		}
		body := source[m[4]:m[5]]
		lines := strings.Split(body, "\n")
		if len(lines) < 2 {
			continue
		}

		confidence := 0.5
		var explain []string
		if knownLanguages[strings.ToLower(lang)] {
			confidence += 0.25
			explain = append(explain, "known language tag")
		}
		if len(lines) >= 5 {
			confidence += 0.1
			explain = append(explain, "line count >= 5")
		}
		if d.ConfidenceRule != nil {
			bonus, reason := d.ConfidenceRule.Eval(map[string]interface{}{"language": lang, "lineCount": len(lines)})
			confidence += bonus
			if reason != "" {
				explain = append(explain, reason)
			}
		}

		matches = append(matches, Match{
			Start: m[0],
			End:   m[1],
			Data: map[string]interface{}{
				"language": lang,
				"code":     body,
			},
			Confidence: clampConfidence(confidence),
			Explain:    explain,
		})
	}

	return matches, nil
}

func (d *CodeDetector) Transform(source string, m Match) string {
	return emitBlockDirective("code-runner", m.Data)
}
