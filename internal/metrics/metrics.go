// Package metrics keeps the counters conche records while resolving and
// building, and can dump them in the Prometheus textfile format.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeRan      = "ran"
	OutcomeSkipped  = "skipped"
	OutcomeFailed   = "failed"
	OutcomeResolved = "resolved"
	OutcomeRetried  = "retried"
)

// Recorder owns a private registry; nothing is registered globally.
type Recorder struct {
	registry           *prometheus.Registry
	tasksTotal         *prometheus.CounterVec
	resolutionsTotal   *prometheus.CounterVec
	resolutionDuration prometheus.Histogram
}

func NewRecorder() *Recorder {
	r := &Recorder{registry: prometheus.NewRegistry()}
	r.tasksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "conche_tasks_total",
			Help: "Number of build tasks by outcome.",
		},
		[]string{"outcome"},
	)
	r.resolutionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "conche_resolutions_total",
			Help: "Number of dependency resolutions by outcome.",
		},
		[]string{"outcome"},
	)
	r.resolutionDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "conche_resolution_duration_seconds",
			Help:    "Time taken to resolve a dependency graph.",
			Buckets: prometheus.DefBuckets,
		},
	)
	r.registry.MustRegister(r.tasksTotal, r.resolutionsTotal, r.resolutionDuration)
	return r
}

func (r *Recorder) TaskOutcome(outcome string) {
	r.tasksTotal.WithLabelValues(outcome).Inc()
}

func (r *Recorder) Resolution(outcome string, elapsed time.Duration) {
	r.resolutionsTotal.WithLabelValues(outcome).Inc()
	r.resolutionDuration.Observe(elapsed.Seconds())
}

func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile writes every metric to path, replacing the file atomically.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
