package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusMetrics implements Metrics using Prometheus for metric
// collection. All metrics are prefixed with "livellm_".
//
// Metrics exposed:
//   - livellm_detector_runs_total{detector}
//   - livellm_detector_run_seconds{detector} (histogram)
//   - livellm_detector_errors_total{detector}
//   - livellm_matches_accepted_total{detector}
//   - livellm_matches_dropped_total{detector,reason}
//   - livellm_stream_renders_total
//   - livellm_components_materialized_total{type}
//   - livellm_fallback_cards_total
//   - livellm_error_cards_total
//   - livellm_action_callback_errors_total{component}
type PrometheusMetrics struct {
	detectorRuns        *prometheus.CounterVec
	detectorRunSeconds  *prometheus.HistogramVec
	detectorErrors      *prometheus.CounterVec
	matchesAccepted     *prometheus.CounterVec
	matchesDropped      *prometheus.CounterVec
	streamRenders       prometheus.Counter
	componentsMaterial  *prometheus.CounterVec
	fallbackCards       prometheus.Counter
	errorCards          prometheus.Counter
	actionCallbackError *prometheus.CounterVec
}

// NewPrometheusMetrics creates a new Prometheus metrics collector and
// registers all metrics against reg. If any metric fails to register
// (e.g. a duplicate), this function panics — fail fast at startup.
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	pm := &PrometheusMetrics{
		detectorRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "livellm_detector_runs_total",
			Help: "Total number of detector executions, partitioned by detector name.",
		}, []string{"detector"}),
		detectorRunSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "livellm_detector_run_seconds",
			Help:    "Duration of a single detector execution, in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"detector"}),
		detectorErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "livellm_detector_errors_total",
			Help: "Total number of detector panics/errors caught without aborting the batch.",
		}, []string{"detector"}),
		matchesAccepted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "livellm_matches_accepted_total",
			Help: "Total number of detection matches accepted after confidence filtering and overlap resolution.",
		}, []string{"detector"}),
		matchesDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "livellm_matches_dropped_total",
			Help: "Total number of detection matches dropped, partitioned by detector and reason.",
		}, []string{"detector", "reason"}),
		streamRenders: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "livellm_stream_renders_total",
			Help: "Total number of coalesced text paints across all stream renderer instances.",
		}),
		componentsMaterial: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "livellm_components_materialized_total",
			Help: "Total number of directives that resolved into a live component, by type.",
		}, []string{"type"}),
		fallbackCards: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "livellm_fallback_cards_total",
			Help: "Total number of fallback cards rendered for malformed or unknown directives.",
		}),
		errorCards: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "livellm_error_cards_total",
			Help: "Total number of error cards rendered for schema validation failures.",
		}),
		actionCallbackError: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "livellm_action_callback_errors_total",
			Help: "Total number of host action-callback errors or panics, by component.",
		}, []string{"component"}),
	}

	reg.MustRegister(
		pm.detectorRuns, pm.detectorRunSeconds, pm.detectorErrors,
		pm.matchesAccepted, pm.matchesDropped, pm.streamRenders,
		pm.componentsMaterial, pm.fallbackCards, pm.errorCards, pm.actionCallbackError,
	)

	return pm
}

func (pm *PrometheusMetrics) RecordDetectorRun(detector string, duration time.Duration) {
	pm.detectorRuns.WithLabelValues(detector).Inc()
	pm.detectorRunSeconds.WithLabelValues(detector).Observe(duration.Seconds())
}

func (pm *PrometheusMetrics) RecordDetectorError(detector string) {
	pm.detectorErrors.WithLabelValues(detector).Inc()
}

func (pm *PrometheusMetrics) RecordMatchAccepted(detector string) {
	pm.matchesAccepted.WithLabelValues(detector).Inc()
}

func (pm *PrometheusMetrics) RecordMatchDropped(detector string, reason string) {
	pm.matchesDropped.WithLabelValues(detector, reason).Inc()
}

func (pm *PrometheusMetrics) RecordStreamRender() {
	pm.streamRenders.Inc()
}

func (pm *PrometheusMetrics) RecordComponentMaterialized(componentType string) {
	pm.componentsMaterial.WithLabelValues(componentType).Inc()
}

func (pm *PrometheusMetrics) RecordFallbackCard() {
	pm.fallbackCards.Inc()
}

func (pm *PrometheusMetrics) RecordErrorCard() {
	pm.errorCards.Inc()
}

func (pm *PrometheusMetrics) RecordActionCallbackError(component string) {
	pm.actionCallbackError.WithLabelValues(component).Inc()
}
