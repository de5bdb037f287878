package detect

import (
	"log/slog"
	"sort"
	"time"

	"github.com/livellm/livellm/pkg/livellm/bus"
	"github.com/livellm/livellm/pkg/livellm/monitoring"
)

// Mode selects how the Transformer treats detection results.
type Mode string

const (
	// ModeOff returns input verbatim; no detector runs.
	ModeOff Mode = "off"
	// ModePassive runs detection and emits events but returns input
	// unchanged.
	ModePassive Mode = "passive"
	// ModeAuto detects, filters, and rewrites the source.
	ModeAuto Mode = "auto"
)

// namedMatch pairs a detector name with one of its matches, the unit
// overlap resolution and splicing operate on.
type namedMatch struct {
	detector string
	match    Match
}

// Transformer orchestrates detectors, resolves overlaps between their
// matches, and rewrites source into directive-embedded Markdown.
type Transformer struct {
	Mode                Mode
	ConfidenceThreshold float64

	detectors map[string]Detector
	order     []string
	disabled  map[string]bool

	bus *bus.Bus
	log *slog.Logger
}

// NewTransformer builds a Transformer emitting lifecycle events on b
// (nil creates a private bus) with no detectors registered; call
// RegisterBuiltIns to add the standard seven.
func NewTransformer(b *bus.Bus, log *slog.Logger) *Transformer {
	if b == nil {
		b = bus.New(nil)
	}
	if log == nil {
		log = slog.Default()
	}
	return &Transformer{
		Mode:                ModeAuto,
		ConfidenceThreshold: 0.5,
		detectors:           make(map[string]Detector),
		disabled:            make(map[string]bool),
		bus:                 b,
		log:                 log,
	}
}

// Register adds a detector. Registering a name twice replaces it in
// place, preserving its position in detector run order.
func (t *Transformer) Register(name string, d Detector) {
	if _, exists := t.detectors[name]; !exists {
		t.order = append(t.order, name)
	}
	t.detectors[name] = d
}

// RegisterBuiltIns registers the standard seven detectors.
func (t *Transformer) RegisterBuiltIns() {
	t.Register("table", &TableDetector{})
	t.Register("question", &QuestionDetector{})
	t.Register("address", &AddressDetector{})
	t.Register("code", &CodeDetector{})
	t.Register("link", &LinkDetector{})
	t.Register("list", &ListDetector{})
	t.Register("data", &DataDetector{})
}

// Enable re-activates a previously disabled detector.
func (t *Transformer) Enable(name string) { delete(t.disabled, name) }

// Disable deactivates a detector without unregistering it.
func (t *Transformer) Disable(name string) { t.disabled[name] = true }

// Trace summarises one detector match accepted into the rewritten
// source: its detector, span, confidence and bonus explanations. Exposed
// by TransformTrace for cmd/livellm render's --explain flag.
type Trace struct {
	Detector   string
	Start, End int
	Confidence float64
	Explain    []string
}

// Transform runs the configured mode's pipeline over source.
func (t *Transformer) Transform(source string) string {
	result, _ := t.transform(source)
	return result
}

// TransformTrace runs the same pipeline as Transform but additionally
// returns a Trace per accepted match, sorted by source position, for
// callers that want to explain which detections drove the rewrite.
func (t *Transformer) TransformTrace(source string) (string, []Trace) {
	return t.transform(source)
}

func (t *Transformer) transform(source string) (string, []Trace) {
	if t.Mode == ModeOff {
		return source, nil
	}

	all := t.runDetectors(source)
	t.bus.Emit("transformer:detected", all)

	if t.Mode == ModePassive {
		return source, nil
	}

	filtered, dropped := filterByConfidence(all, t.ConfidenceThreshold)
	accepted, overlapped := resolveOverlaps(filtered)
	metrics := monitoring.GetGlobalMetrics()
	for _, m := range accepted {
		metrics.RecordMatchAccepted(m.detector)
	}
	for _, m := range dropped {
		metrics.RecordMatchDropped(m.detector, "low_confidence")
	}
	for _, m := range overlapped {
		metrics.RecordMatchDropped(m.detector, "overlap")
	}

	result := t.splice(source, accepted)
	t.bus.Emit("transformer:enriched", result)

	traces := make([]Trace, len(accepted))
	for i, m := range accepted {
		traces[i] = Trace{
			Detector:   m.detector,
			Start:      m.match.Start,
			End:        m.match.End,
			Confidence: m.match.Confidence,
			Explain:    m.match.Explain,
		}
	}
	sort.Slice(traces, func(i, j int) bool { return traces[i].Start < traces[j].Start })
	return result, traces
}

func (t *Transformer) runDetectors(source string) []namedMatch {
	metrics := monitoring.GetGlobalMetrics()
	var all []namedMatch
	for _, name := range t.order {
		if t.disabled[name] {
			continue
		}
		d := t.detectors[name]
		start := time.Now()
		matches, err := func() (matches []Match, err error) {
			defer func() {
				if r := recover(); r != nil {
					t.log.Error("detector panicked", "detector", name, "recovered", r)
					metrics.RecordDetectorError(name)
				}
			}()
			return d.Detect(source)
		}()
		metrics.RecordDetectorRun(name, time.Since(start))
		if err != nil {
			t.log.Warn("detector error", "detector", name, "error", err)
			metrics.RecordDetectorError(name)
			continue
		}
		for _, m := range matches {
			all = append(all, namedMatch{detector: name, match: m})
		}
	}
	return all
}

// filterByConfidence splits matches into those meeting threshold and
// those dropped for falling below it.
func filterByConfidence(matches []namedMatch, threshold float64) (kept []namedMatch, dropped []namedMatch) {
	for _, m := range matches {
		if m.match.Confidence >= threshold {
			kept = append(kept, m)
		} else {
			dropped = append(dropped, m)
		}
	}
	return kept, dropped
}

// resolveOverlaps sorts by confidence descending and greedily accepts a
// match iff its [start,end) doesn't overlap any already-accepted match,
// maximising aggregate confidence under this greedy heuristic. Matches
// that lose to an overlapping, higher-confidence match are returned
// separately as dropped.
func resolveOverlaps(matches []namedMatch) (accepted []namedMatch, dropped []namedMatch) {
	sorted := make([]namedMatch, len(matches))
	copy(sorted, matches)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].match.Confidence > sorted[j].match.Confidence
	})

	for _, m := range sorted {
		if !overlapsAny(m.match, accepted) {
			accepted = append(accepted, m)
		} else {
			dropped = append(dropped, m)
		}
	}
	return accepted, dropped
}

func overlapsAny(m Match, accepted []namedMatch) bool {
	for _, a := range accepted {
		if m.Start < a.match.End && a.match.Start < m.End {
			return true
		}
	}
	return false
}

// splice sorts accepted matches by start descending and replaces them
// right-to-left so earlier offsets remain valid.
func (t *Transformer) splice(source string, accepted []namedMatch) string {
	sorted := make([]namedMatch, len(accepted))
	copy(sorted, accepted)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].match.Start > sorted[j].match.Start
	})

	result := source
	for _, m := range sorted {
		detector := t.detectors[m.detector]
		replacement := detector.Transform(source, m.match)
		result = result[:m.match.Start] + replacement + result[m.match.End:]
	}
	return result
}
