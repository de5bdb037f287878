package detect

import (
	"regexp"
	"strconv"
	"strings"
)

// DataDetector recognises at least three consecutive "Label: <number>[suffix]"
// lines, proposing a chart component whose kind (line/bar/pie) is chosen
// by the data's shape.
type DataDetector struct {
	ConfidenceRule *Rule
}

func (d *DataDetector) Name() string { return "data" }

var dataLinePattern = regexp.MustCompile(`^\s*([A-Za-z][A-Za-z0-9 _-]*):\s*(-?\d+(?:\.\d+)?)\s*(%|[A-Za-z]*)\s*$`)

var timeLikeLabel = regexp.MustCompile(`(?i)^(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec|monday|tuesday|wednesday|thursday|friday|saturday|sunday|mon|tue|wed|thu|fri|sat|sun|q[1-4]|week|day)`)

type dataPoint struct {
	label  string
	value  float64
	suffix string
}

func (d *DataDetector) Detect(source string) ([]Match, error) {
	var matches []Match
	lines := splitLinesKeepOffsets(source)

	for i := 0; i < len(lines); i++ {
		var points []dataPoint
		end := i
		for j := i; j < len(lines); j++ {
			m := dataLinePattern.FindStringSubmatch(lines[j].text)
			if m == nil {
				break
			}
			v, err := strconv.ParseFloat(m[2], 64)
			if err != nil {
				break
			}
			points = append(points, dataPoint{label: strings.TrimSpace(m[1]), value: v, suffix: m[3]})
			end = j
		}
		if len(points) < 3 {
			continue
		}

		kind := chooseChartKind(points)
		confidence, explain := d.score(points)

		matches = append(matches, Match{
			Start:      lines[i].start,
			End:        lines[end].end,
			Data:       map[string]interface{}{"series": pointsToSeries(points), "kind": kind},
			Confidence: confidence,
			Explain:    explain,
		})
		i = end
	}

	return matches, nil
}

func (d *DataDetector) score(points []dataPoint) (float64, []string) {
	confidence := 0.55
	var explain []string
	if len(points) >= 5 {
		confidence += 0.15
		explain = append(explain, "point count >= 5")
	}
	if consistentSuffix(points) {
		confidence += 0.1
		explain = append(explain, "consistent units across points")
	}
	if d.ConfidenceRule != nil {
		bonus, reason := d.ConfidenceRule.Eval(map[string]interface{}{"pointCount": len(points)})
		confidence += bonus
		if reason != "" {
			explain = append(explain, reason)
		}
	}
	return clampConfidence(confidence), explain
}

func consistentSuffix(points []dataPoint) bool {
	if len(points) == 0 {
		return true
	}
	first := points[0].suffix
	for _, p := range points[1:] {
		if p.suffix != first {
			return false
		}
	}
	return true
}

func chooseChartKind(points []dataPoint) string {
	sequentialLabels := 0
	for _, p := range points {
		if timeLikeLabel.MatchString(p.label) {
			sequentialLabels++
		}
	}
	if sequentialLabels == len(points) {
		return "chart-line"
	}

	if consistentSuffix(points) && points[0].suffix == "%" && len(points) <= 6 {
		sum := 0.0
		for _, p := range points {
			sum += p.value
		}
		if sum > 80 && sum <= 110 {
			return "chart-pie"
		}
	}

	return "chart-bar"
}

func pointsToSeries(points []dataPoint) []interface{} {
	out := make([]interface{}, len(points))
	for i, p := range points {
		out[i] = map[string]interface{}{"label": p.label, "value": p.value}
	}
	return out
}

func (d *DataDetector) Transform(source string, m Match) string {
	kind, _ := m.Data["kind"].(string)
	if kind == "" {
		kind = "chart-bar"
	}
	data := map[string]interface{}{"series": m.Data["series"]}
	return emitBlockDirective(kind, data)
}
