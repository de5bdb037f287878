package detect

import (
	"regexp"
	"strconv"
)

// AddressDetector recognises US-style street addresses and bare
// "lat,lng" coordinate pairs within valid ranges, proposing a map
// component.
type AddressDetector struct {
	ConfidenceRule *Rule
}

func (d *AddressDetector) Name() string { return "address" }

var (
	streetAddressPattern = regexp.MustCompile(
		`\d{1,6}\s+(?:[A-Z][a-zA-Z'.]*\s*){1,5}(?:Street|St|Avenue|Ave|Road|Rd|Boulevard|Blvd|Lane|Ln|Drive|Dr|Court|Ct|Way|Place|Pl)\.?(?:,\s*[A-Za-z .]+)?(?:,\s*[A-Z]{2})?(?:\s+\d{5}(?:-\d{4})?)?`,
	)
	coordPairPattern = regexp.MustCompile(`(-?\d{1,3}(?:\.\d+)?),\s*(-?\d{1,3}(?:\.\d+)?)`)
)

func (d *AddressDetector) Detect(source string) ([]Match, error) {
	var matches []Match

	for _, loc := range streetAddressPattern.FindAllStringIndex(source, -1) {
		text := source[loc[0]:loc[1]]
		confidence, explain := 0.6, []string{"matched street-suffix grammar"}
		if d.ConfidenceRule != nil {
			bonus, reason := d.ConfidenceRule.Eval(map[string]interface{}{"kind": "street"})
			confidence += bonus
			if reason != "" {
				explain = append(explain, reason)
			}
		}
		matches = append(matches, Match{
			Start:      loc[0],
			End:        loc[1],
			Data:       map[string]interface{}{"address": text},
			Confidence: clampConfidence(confidence),
			Explain:    explain,
		})
	}

	for _, m := range coordPairPattern.FindAllStringSubmatchIndex(source, -1) {
		latStr := source[m[2]:m[3]]
		lngStr := source[m[4]:m[5]]
		lat, err1 := strconv.ParseFloat(latStr, 64)
		lng, err2 := strconv.ParseFloat(lngStr, 64)
		if err1 != nil || err2 != nil || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
			continue
		}
		confidence, explain := 0.55, []string{"coordinate pair within valid range"}
		if d.ConfidenceRule != nil {
			bonus, reason := d.ConfidenceRule.Eval(map[string]interface{}{"kind": "coord", "lat": lat, "lng": lng})
			confidence += bonus
			if reason != "" {
				explain = append(explain, reason)
			}
		}
		matches = append(matches, Match{
			Start:      m[0],
			End:        m[1],
			Data:       map[string]interface{}{"lat": lat, "lng": lng},
			Confidence: clampConfidence(confidence),
			Explain:    explain,
		})
	}

	return matches, nil
}

func (d *AddressDetector) Transform(source string, m Match) string {
	return emitInlineDirective("map", m.Data)
}
