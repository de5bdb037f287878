package detect

import "regexp"

// LinkDetector recognises a standalone HTTP(S) URL that is not already
// inside a Markdown link, proposing a link-preview component.
type LinkDetector struct {
	ConfidenceRule *Rule
}

func (d *LinkDetector) Name() string { return "link" }

var urlPattern = regexp.MustCompile(`https?://[^\s)\]]+`)

func (d *LinkDetector) Detect(source string) ([]Match, error) {
	var matches []Match

	for _, loc := range urlPattern.FindAllStringIndex(source, -1) {
		if insideMarkdownLink(source, loc[0]) {
			continue
		}
		url := source[loc[0]:loc[1]]

		confidence, explain := 0.7, []string{"standalone URL"}
		if d.ConfidenceRule != nil {
			bonus, reason := d.ConfidenceRule.Eval(map[string]interface{}{"url": url})
			confidence += bonus
			if reason != "" {
				explain = append(explain, reason)
			}
		}

		matches = append(matches, Match{
			Start:      loc[0],
			End:        loc[1],
			Data:       map[string]interface{}{"url": url},
			Confidence: clampConfidence(confidence),
			Explain:    explain,
		})
	}

	return matches, nil
}

// insideMarkdownLink reports whether the URL starting at idx is the
// target of a Markdown link `[text](url)`, i.e. preceded by "](".
func insideMarkdownLink(source string, idx int) bool {
	if idx < 2 {
		return false
	}
	if source[idx-1] != '(' {
		return false
	}
	for i := idx - 2; i >= 0; i-- {
		switch source[i] {
		case ']':
			return true
		case '\n':
			return false
		}
	}
	return false
}

func (d *LinkDetector) Transform(source string, m Match) string {
	return emitInlineDirective("link-preview", m.Data)
}
