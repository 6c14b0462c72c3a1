// Package metrics records per-rule lint timings as Prometheus metrics and
// writes them in the text exposition format, for node_exporter's textfile
// collector or ad-hoc inspection of slow rules.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/yaklabco/swiftlint-go/pkg/lint"
)

const namespace = "swiftlint"

// ruleDurationBuckets spans 10µs to about 1.3s; most rule passes are sub-millisecond.
//
//nolint:gochecknoglobals // Read-only bucket layout.
var ruleDurationBuckets = prometheus.ExponentialBuckets(0.00001, 4, 9)

// Recorder is a lint.Observer backed by its own Prometheus registry.
// It is safe for concurrent use.
type Recorder struct {
	registry *prometheus.Registry

	RuleDuration    *prometheus.HistogramVec
	RuleViolations  *prometheus.CounterVec
	FileDuration    prometheus.Histogram
	FilesLinted     prometheus.Counter
	FileViolations  prometheus.Counter
	CorrectionsMade *prometheus.CounterVec
}

var _ lint.Observer = (*Recorder)(nil)

// NewRecorder creates a Recorder with every metric registered.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		RuleDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "rule_duration_seconds",
				Help:      "Time spent running a rule over one file",
				Buckets:   ruleDurationBuckets,
			},
			[]string{"rule"},
		),
		RuleViolations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rule_violations_total",
				Help:      "Violations reported by a rule before region filtering",
			},
			[]string{"rule"},
		),
		FileDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "file_duration_seconds",
				Help:      "Time spent parsing and linting one file",
				Buckets:   prometheus.DefBuckets,
			},
		),
		FilesLinted: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "files_linted_total",
				Help:      "Files parsed and linted",
			},
		),
		FileViolations: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "violations_total",
				Help:      "Violations reported after region filtering",
			},
		),
		CorrectionsMade: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "corrections_total",
				Help:      "Corrections applied by a rule",
			},
			[]string{"rule"},
		),
	}

	r.registry.MustRegister(
		r.RuleDuration,
		r.RuleViolations,
		r.FileDuration,
		r.FilesLinted,
		r.FileViolations,
		r.CorrectionsMade,
	)
	return r
}

// RuleFinished implements lint.Observer.
func (r *Recorder) RuleFinished(ruleID string, violations int, elapsed time.Duration) {
	r.RuleDuration.WithLabelValues(ruleID).Observe(elapsed.Seconds())
	r.RuleViolations.WithLabelValues(ruleID).Add(float64(violations))
}

// FileFinished implements lint.Observer.
func (r *Recorder) FileFinished(_ string, violations int, elapsed time.Duration) {
	r.FileDuration.Observe(elapsed.Seconds())
	r.FilesLinted.Inc()
	r.FileViolations.Add(float64(violations))
}

// CorrectionsApplied implements lint.Observer.
func (r *Recorder) CorrectionsApplied(ruleID string, count int) {
	r.CorrectionsMade.WithLabelValues(ruleID).Add(float64(count))
}

// Registry returns the registry holding the recorder's metrics.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteFile writes all metrics to path in the Prometheus text format.
// The file is replaced atomically.
func (r *Recorder) WriteFile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics to %s: %w", path, err)
	}
	return nil
}
