package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector holds the Prometheus metrics for mastery updates and
// recommendations. Each collector owns its registry, so several can
// coexist in one process (tests, multiple stores).
//
// All methods are safe to call on a nil *Collector.
type Collector struct {
	registry *prometheus.Registry

	MasteryUpdates      *prometheus.CounterVec
	MasteryUpdateErrors *prometheus.CounterVec
	MasteryScore        prometheus.Histogram
	Recommendations     *prometheus.CounterVec
	Assignments         *prometheus.CounterVec
}

// NewCollector creates a collector with the given namespace.
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		MasteryUpdates: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "mastery_updates_total",
				Help:      "Total number of mastery updates by observed outcome",
			},
			[]string{"outcome"},
		),
		MasteryUpdateErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "mastery_update_errors_total",
				Help:      "Total number of rejected or failed mastery updates",
			},
			[]string{"reason"},
		),
		MasteryScore: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "mastery_score",
				Help:      "Distribution of mastery scores (0-100) written by updates",
				Buckets:   prometheus.LinearBuckets(10, 10, 10),
			},
		),
		Recommendations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "recommendations_total",
				Help:      "Total number of recommendations produced by priority",
			},
			[]string{"priority"},
		),
		Assignments: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "assignments_total",
				Help:      "Total number of adaptive assignments suggested by kind",
			},
			[]string{"kind"},
		),
	}

	registry.MustRegister(
		c.MasteryUpdates,
		c.MasteryUpdateErrors,
		c.MasteryScore,
		c.Recommendations,
		c.Assignments,
	)
	return c
}

// Registry returns the registry backing this collector.
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

// ObserveUpdate records a successful mastery update.
func (c *Collector) ObserveUpdate(correct bool, score float64) {
	if c == nil {
		return
	}
	outcome := "incorrect"
	if correct {
		outcome = "correct"
	}
	c.MasteryUpdates.WithLabelValues(outcome).Inc()
	c.MasteryScore.Observe(score)
}

// ObserveUpdateError records a rejected or failed mastery update.
func (c *Collector) ObserveUpdateError(reason string) {
	if c == nil {
		return
	}
	c.MasteryUpdateErrors.WithLabelValues(reason).Inc()
}

// ObserveRecommendation records one emitted recommendation.
func (c *Collector) ObserveRecommendation(priority string) {
	if c == nil {
		return
	}
	c.Recommendations.WithLabelValues(priority).Inc()
}

// ObserveAssignment records one suggested assignment.
func (c *Collector) ObserveAssignment(kind string) {
	if c == nil {
		return
	}
	c.Assignments.WithLabelValues(kind).Inc()
}

// WriteTextfile writes the current metric values to path in the text
// exposition format read by node_exporter's textfile collector.
func (c *Collector) WriteTextfile(path string) error {
	if c == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
