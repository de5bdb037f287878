package detect

import (
	"regexp"
	"strings"
)

// TableDetector recognises a pipe-delimited header, separator row, and at
// least one data row, and proposes a table-plus component.
type TableDetector struct {
	// ConfidenceRule optionally adjusts the base confidence per match.
	ConfidenceRule *Rule
}

func (d *TableDetector) Name() string { return "table" }

var (
	pipeRowPattern = regexp.MustCompile(`^\s*\|?(.+\|.+)\|?\s*$`)
	sepCellPattern = regexp.MustCompile(`^:?-{1,}:?$`)
)

func (d *TableDetector) Detect(source string) ([]Match, error) {
	var matches []Match
	lines := splitLinesKeepOffsets(source)

	for i := 0; i+1 < len(lines); i++ {
		header := lines[i]
		sep := lines[i+1]
		if !pipeRowPattern.MatchString(header.text) {
			continue
		}
		if !isSeparatorRow(sep.text) {
			continue
		}

		columns := splitCells(header.text)
		if len(columns) < 1 {
			continue
		}

		end := i + 1
		var rows [][]string
		for j := i + 2; j < len(lines); j++ {
			if !pipeRowPattern.MatchString(lines[j].text) {
				break
			}
			rows = append(rows, splitCells(lines[j].text))
			end = j
		}
		if len(rows) < 1 {
			continue
		}

		confidence, explain := d.score(len(columns), len(rows))

		data := map[string]interface{}{
			"columns": toAnySlice(columns),
			"data":    rowsToMaps(columns, rows),
		}

		matches = append(matches, Match{
			Start:      lines[i].start,
			End:        lines[end].end,
			Data:       data,
			Confidence: confidence,
			Explain:    explain,
		})
		i = end
	}

	return matches, nil
}

func (d *TableDetector) score(columns, rows int) (float64, []string) {
	confidence := 0.6
	var explain []string
	if rows >= 3 {
		confidence += 0.15
		explain = append(explain, "row count >= 3")
	}
	if columns >= 2 {
		confidence += 0.1
		explain = append(explain, "column count >= 2")
	}
	if d.ConfidenceRule != nil {
		bonus, reason := d.ConfidenceRule.Eval(map[string]interface{}{"rowCount": rows, "columnCount": columns})
		confidence += bonus
		if reason != "" {
			explain = append(explain, reason)
		}
	}
	return clampConfidence(confidence), explain
}

func (d *TableDetector) Transform(source string, m Match) string {
	return emitBlockDirective("table-plus", m.Data)
}

func isSeparatorRow(line string) bool {
	cells := splitCells(line)
	if len(cells) == 0 {
		return false
	}
	for _, c := range cells {
		if !sepCellPattern.MatchString(strings.TrimSpace(c)) {
			return false
		}
	}
	return true
}

func splitCells(line string) []string {
	trimmed := strings.TrimSpace(line)
	trimmed = strings.TrimPrefix(trimmed, "|")
	trimmed = strings.TrimSuffix(trimmed, "|")
	parts := strings.Split(trimmed, "|")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}

func rowsToMaps(columns []string, rows [][]string) []interface{} {
	out := make([]interface{}, 0, len(rows))
	for _, row := range rows {
		m := make(map[string]interface{}, len(columns))
		for i, col := range columns {
			if i < len(row) {
				m[col] = row[i]
			} else {
				m[col] = ""
			}
		}
		out = append(out, m)
	}
	return out
}

func toAnySlice(ss []string) []interface{} {
	out := make([]interface{}, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
