// SPDX-License-Identifier: MIT

// Package metrics instruments generation runs with Prometheus collectors.
//
// A Recorder registers its collectors on a caller-supplied registry, so tests
// and batch runs never touch the global default registry. A nil *Recorder is
// valid and records nothing. Batch runs export with WriteTextfile in the
// node-exporter textfile format.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/katalvlaran/ltlsample/charsample"
	"github.com/katalvlaran/ltlsample/sampler"
)

const namespace = "ltlsample"

// Job outcomes used as the "outcome" label.
const (
	OutcomeOK     = "ok"
	OutcomeFailed = "failed"
)

// Recorder owns the collectors of one registry.
type Recorder struct {
	gatherer prometheus.Gatherer

	JobsTotal      *prometheus.CounterVec
	JobDuration    *prometheus.HistogramVec
	TracesTotal    *prometheus.CounterVec
	States         prometheus.Histogram
	PairsTotal     prometheus.Counter
	EquivalentSkip prometheus.Counter
	DeadEndsTotal  prometheus.Counter
	DroppedTotal   prometheus.Counter
	RelabelTotal   prometheus.Counter
	DrawsTotal     prometheus.Counter
	PerturbTotal   prometheus.Counter
}

// New registers every collector on reg.
func New(reg *prometheus.Registry) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		gatherer: reg,
		JobsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "jobs_total",
			Help:      "Generation jobs by strategy and outcome",
		}, []string{"strategy", "outcome"}),
		JobDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "job_duration_seconds",
			Help:      "Wall time of one generation job",
			Buckets:   []float64{0.0001, 0.001, 0.01, 0.1, 1, 10, 60},
		}, []string{"strategy"}),
		TracesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "traces_total",
			Help:      "Traces emitted by strategy and polarity",
		}, []string{"strategy", "polarity"}),
		States: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "automaton_states",
			Help:      "Reachable automaton states per characteristic job",
			Buckets:   []float64{1, 2, 4, 8, 16, 64, 256, 1024, 4096},
		}),
		PairsTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "suffix_pairs_total",
			Help:      "Shortest/extended pairs examined by suffix search",
		}),
		EquivalentSkip: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "equivalent_pairs_total",
			Help:      "Pairs skipped because no suffix separates them",
		}),
		DeadEndsTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dead_ends_total",
			Help:      "Extended paths with no reachable accepting state",
		}),
		DroppedTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dropped_traces_total",
			Help:      "Candidates longer than the trace length",
		}),
		RelabelTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "relabelled_traces_total",
			Help:      "Padded traces whose verdict changed",
		}),
		DrawsTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sampler",
			Name:      "draws_total",
			Help:      "Uniform draws made by the rejection sampler",
		}),
		PerturbTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sampler",
			Name:      "perturbations_total",
			Help:      "Perturbation rounds made by the rejection sampler",
		}),
	}
}

// ObserveJob records one finished job. pos and neg are the emitted counts.
func (r *Recorder) ObserveJob(strategy string, err error, d time.Duration, pos, neg int) {
	if r == nil {
		return
	}
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeFailed
	}
	r.JobsTotal.WithLabelValues(strategy, outcome).Inc()
	r.JobDuration.WithLabelValues(strategy).Observe(d.Seconds())
	r.TracesTotal.WithLabelValues(strategy, "positive").Add(float64(pos))
	r.TracesTotal.WithLabelValues(strategy, "negative").Add(float64(neg))
}

// ObserveCharacteristic records the stage sizes of one characteristic run.
func (r *Recorder) ObserveCharacteristic(s charsample.Stats) {
	if r == nil {
		return
	}
	if s.States > 0 {
		r.States.Observe(float64(s.States))
	}
	r.PairsTotal.Add(float64(s.Pairs))
	r.EquivalentSkip.Add(float64(s.Equivalent))
	r.DeadEndsTotal.Add(float64(s.DeadEnds))
	r.DroppedTotal.Add(float64(s.Dropped))
	r.RelabelTotal.Add(float64(s.Relabelled))
}

// ObserveSampler records the budget use of one rejection run.
func (r *Recorder) ObserveSampler(s sampler.Stats) {
	if r == nil {
		return
	}
	r.DrawsTotal.Add(float64(s.Draws))
	r.PerturbTotal.Add(float64(s.Perturbations))
}

// WriteTextfile writes every collected metric to path atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, r.gatherer)
}
