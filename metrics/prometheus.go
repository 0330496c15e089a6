// SPDX-License-Identifier: MIT

package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus is a Recorder backed by client_golang collectors.
type Prometheus struct {
	extractions *prometheus.CounterVec
	extractDur  *prometheus.HistogramVec
	extractNNZ  prometheus.Histogram
	applies     prometheus.Counter
	applyDur    prometheus.Histogram
	errors      *prometheus.CounterVec
}

// NewPrometheus creates the collectors under namespace and registers them on reg.
// Errors: registration conflicts reported by reg.
func NewPrometheus(reg prometheus.Registerer, namespace string) (*Prometheus, error) {
	p := &Prometheus{
		extractions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "extractions_total",
			Help:      "Completed global CRS/CCS extractions by format.",
		}, []string{"format"}),
		extractDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "extraction_duration_seconds",
			Help:      "Wall time of one extraction on one rank.",
			Buckets:   prometheus.ExponentialBuckets(1e-5, 4, 10),
		}, []string{"format"}),
		extractNNZ: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "extracted_nnz",
			Help:      "Nonzeros assembled per receiving rank.",
			Buckets:   prometheus.ExponentialBuckets(1, 8, 10),
		}),
		applies: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "applies_total",
			Help:      "Completed preconditioner applications.",
		}),
		applyDur: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "apply_duration_seconds",
			Help:      "Wall time of one preconditioner application.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
		}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "Failed adapter operations by operation and error kind.",
		}, []string{"op", "kind"}),
	}

	for _, c := range []prometheus.Collector{p.extractions, p.extractDur, p.extractNNZ, p.applies, p.applyDur, p.errors} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("metrics: register: %w", err)
		}
	}

	return p, nil
}

// RecordExtraction implements Recorder.
func (p *Prometheus) RecordExtraction(format string, nnz int, d time.Duration, err error) {
	if err != nil {
		p.errors.WithLabelValues(format, ErrorKind(err)).Inc()
		return
	}
	p.extractions.WithLabelValues(format).Inc()
	p.extractDur.WithLabelValues(format).Observe(d.Seconds())
	if nnz > 0 {
		p.extractNNZ.Observe(float64(nnz))
	}
}

// RecordApply implements Recorder.
func (p *Prometheus) RecordApply(d time.Duration, err error) {
	if err != nil {
		p.errors.WithLabelValues("apply", ErrorKind(err)).Inc()
		return
	}
	p.applies.Inc()
	p.applyDur.Observe(d.Seconds())
}
