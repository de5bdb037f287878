package detect

import (
	"regexp"
	"strconv"
	"strings"
)

// ListDetector recognises an ordered list of at least three
// sequentially-numbered items, averaging at least 15 characters, whose
// items read like instructional steps, proposing an accordion component.
type ListDetector struct {
	ConfidenceRule *Rule
}

func (d *ListDetector) Name() string { return "list" }

var orderedItemPattern = regexp.MustCompile(`^\s*(\d+)[\.\)]\s+(.+\S)\s*$`)

var stepVerbs = map[string]bool{
	"install": true, "run": true, "open": true, "click": true, "configure": true,
	"create": true, "add": true, "set": true, "download": true, "navigate": true,
	"start": true, "build": true, "type": true, "select": true, "enter": true,
	"choose": true, "go": true, "copy": true, "edit": true, "update": true,
	"restart": true, "verify": true, "check": true,
}

func (d *ListDetector) Detect(source string) ([]Match, error) {
	var matches []Match
	lines := splitLinesKeepOffsets(source)

	for i := 0; i < len(lines); i++ {
		first := orderedItemPattern.FindStringSubmatch(lines[i].text)
		if first == nil || first[1] != "1" {
			continue
		}

		var items []string
		end := i
		expected := 1
		for j := i; j < len(lines); j++ {
			m := orderedItemPattern.FindStringSubmatch(lines[j].text)
			if m == nil {
				break
			}
			n, err := strconv.Atoi(m[1])
			if err != nil || n != expected {
				break
			}
			items = append(items, strings.TrimSpace(m[2]))
			end = j
			expected++
		}

		if len(items) < 3 {
			continue
		}

		avgLen := averageLen(items)
		verbCount := countStepVerbs(items)

		if avgLen < 15 {
			continue
		}

		confidence := 0.5
		var explain []string
		if verbCount >= len(items)/2+1 {
			confidence += 0.25
			explain = append(explain, "majority of items start with a step verb")
		}
		if len(items) >= 5 {
			confidence += 0.1
			explain = append(explain, "item count >= 5")
		}
		explain = append(explain, "average item length >= 15 chars")
		if d.ConfidenceRule != nil {
			bonus, reason := d.ConfidenceRule.Eval(map[string]interface{}{"itemCount": len(items), "avgLen": avgLen, "verbCount": verbCount})
			confidence += bonus
			if reason != "" {
				explain = append(explain, reason)
			}
		}

		data := map[string]interface{}{"items": itemsToAccordion(items)}

		matches = append(matches, Match{
			Start:      lines[i].start,
			End:        lines[end].end,
			Data:       data,
			Confidence: clampConfidence(confidence),
			Explain:    explain,
		})
		i = end
	}

	return matches, nil
}

func itemsToAccordion(items []string) []interface{} {
	out := make([]interface{}, len(items))
	for i, item := range items {
		title := item
		if len(title) > 40 {
			title = title[:40] + "…"
		}
		out[i] = map[string]interface{}{"title": title, "content": item}
	}
	return out
}

func averageLen(items []string) float64 {
	if len(items) == 0 {
		return 0
	}
	total := 0
	for _, s := range items {
		total += len(s)
	}
	return float64(total) / float64(len(items))
}

func countStepVerbs(items []string) int {
	count := 0
	for _, s := range items {
		fields := strings.Fields(s)
		if len(fields) == 0 {
			continue
		}
		word := strings.ToLower(strings.TrimRight(fields[0], ".,:;!"))
		if stepVerbs[word] {
			count++
		}
	}
	return count
}

func (d *ListDetector) Transform(source string, m Match) string {
	return emitBlockDirective("accordion", m.Data)
}
