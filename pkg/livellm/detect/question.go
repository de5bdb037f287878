package detect

import (
	"regexp"
	"strings"
)

// QuestionDetector recognises a question sentence followed by at least
// two numbered/lettered options (-> choice), or explicit yes/no phrasing
// (-> confirm).
type QuestionDetector struct {
	ConfidenceRule *Rule
}

func (d *QuestionDetector) Name() string { return "question" }

var (
	questionLinePattern = regexp.MustCompile(`^\s*(.+\?)\s*$`)
	optionLinePattern   = regexp.MustCompile(`^\s*(?:\d+|[A-Za-z])[\.\)]\s+(.+\S)\s*$`)
	yesNoPattern        = regexp.MustCompile(`(?i)\(?\byes\b\s*(?:/|or)\s*\bno\b\)?\s*\??\s*$`)
)

func (d *QuestionDetector) Detect(source string) ([]Match, error) {
	var matches []Match
	lines := splitLinesKeepOffsets(source)

	for i := 0; i < len(lines); i++ {
		qm := questionLinePattern.FindStringSubmatch(lines[i].text)
		if qm == nil {
			continue
		}
		question := strings.TrimSpace(qm[1])

		if yesNoPattern.MatchString(question) {
			confidence, explain := 0.75, []string{"explicit yes/no phrasing"}
			if d.ConfidenceRule != nil {
				bonus, reason := d.ConfidenceRule.Eval(map[string]interface{}{"optionCount": 2, "hasYesNo": true})
				confidence += bonus
				if reason != "" {
					explain = append(explain, reason)
				}
			}
			matches = append(matches, Match{
				Start:      lines[i].start,
				End:        lines[i].end,
				Data:       map[string]interface{}{"question": question},
				Confidence: clampConfidence(confidence),
				Explain:    explain,
			})
			continue
		}

		var options []string
		end := i
		for j := i + 1; j < len(lines); j++ {
			om := optionLinePattern.FindStringSubmatch(lines[j].text)
			if om == nil {
				break
			}
			options = append(options, strings.TrimSpace(om[1]))
			end = j
		}
		if len(options) < 2 {
			continue
		}

		confidence := 0.65
		var explain []string
		if len(options) >= 3 {
			confidence += 0.2
			explain = append(explain, "option count >= 3")
		} else {
			confidence += 0.1
			explain = append(explain, "option count >= 2")
		}
		if d.ConfidenceRule != nil {
			bonus, reason := d.ConfidenceRule.Eval(map[string]interface{}{"optionCount": len(options), "hasYesNo": false})
			confidence += bonus
			if reason != "" {
				explain = append(explain, reason)
			}
		}

		matches = append(matches, Match{
			Start: lines[i].start,
			End:   lines[end].end,
			Data: map[string]interface{}{
				"question": question,
				"options":  toAnySlice(options),
			},
			Confidence: clampConfidence(confidence),
			Explain:    explain,
		})
		i = end
	}

	return matches, nil
}

func (d *QuestionDetector) Transform(source string, m Match) string {
	if _, ok := m.Data["options"]; ok {
		return emitBlockDirective("choice", m.Data)
	}
	return emitBlockDirective("confirm", m.Data)
}
