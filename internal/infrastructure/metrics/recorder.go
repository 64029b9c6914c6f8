// Package metrics exports similarity lookup metrics in the Prometheus format.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/bnema/tabmatch/internal/application/port"
	"github.com/bnema/tabmatch/internal/domain/url"
)

const namespace = "tabmatch"

// Lookup result labels.
const (
	ResultExact   = "exact"
	ResultSimilar = "similar"
	ResultNone    = "none"
)

// Recorder collects match outcomes on its own registry.
type Recorder struct {
	registry *prometheus.Registry
	scores   *prometheus.HistogramVec
	lookups  *prometheus.CounterVec
}

var _ port.MatchRecorder = (*Recorder)(nil)

// NewRecorder creates a Recorder with freshly registered collectors.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		scores: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "similarity_score",
			Help:      "Best similarity score per lookup, by strictness.",
			Buckets:   prometheus.LinearBuckets(0, 100, 11),
		}, []string{"strictness"}),
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookups_total",
			Help:      "Similarity lookups by outcome.",
		}, []string{"result"}),
	}
	r.registry.MustRegister(r.scores, r.lookups)
	return r
}

// RecordMatch counts the lookup and, when the configuration sits on the
// laxness ladder, observes its score.
func (r *Recorder) RecordMatch(cfg url.ScorerConfig, result url.MatchResult) {
	r.lookups.WithLabelValues(resultLabel(result)).Inc()

	if suffix, ok := cfg.HistogramStrictnessSuffix(); ok {
		r.scores.WithLabelValues(suffix).Observe(float64(result.Score))
	}
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile writes the current metrics to path for the node_exporter
// textfile collector. The file is replaced atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

func resultLabel(result url.MatchResult) string {
	switch {
	case !result.Found():
		return ResultNone
	case result.Score == url.Exact:
		return ResultExact
	default:
		return ResultSimilar
	}
}
