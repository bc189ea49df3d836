// Package metrics records inference counters with Prometheus collectors.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.trai.ch/cpinfer/internal/core/domain"
	"go.trai.ch/cpinfer/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Metrics = (*Prometheus)(nil)

// Prometheus implements ports.Metrics on a private registry, so several
// instances can coexist in one process.
type Prometheus struct {
	registry *prometheus.Registry

	cacheHits     prometheus.Counter
	cacheMisses   prometheus.Counter
	resourceReads prometheus.Counter
	diagnostics   *prometheus.CounterVec
	duration      prometheus.Histogram
}

// New creates the collectors and registers them.
func New() *Prometheus {
	p := &Prometheus{
		registry: prometheus.NewRegistry(),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cpinfer_cache_hits_total",
			Help: "Number of inference calls answered from the cache.",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cpinfer_cache_misses_total",
			Help: "Number of inference calls that ran a traversal.",
		}),
		resourceReads: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cpinfer_resource_reads_total",
			Help: "Number of class files read during traversals.",
		}),
		diagnostics: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cpinfer_diagnostics_total",
				Help: "Number of absorbed traversal failures by kind.",
			},
			[]string{"kind"},
		),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "cpinfer_inference_duration_seconds",
			Help:    "Time taken by one inference call, including lock wait.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	p.registry.MustRegister(
		p.cacheHits,
		p.cacheMisses,
		p.resourceReads,
		p.diagnostics,
		p.duration,
	)
	return p
}

// Registry exposes the underlying registry as a gatherer.
func (p *Prometheus) Registry() *prometheus.Registry {
	return p.registry
}

// CacheHit counts a call answered from the cache.
func (p *Prometheus) CacheHit() {
	p.cacheHits.Inc()
}

// CacheMiss counts a call that ran a traversal.
func (p *Prometheus) CacheMiss() {
	p.cacheMisses.Inc()
}

// ResourceRead counts a class file read.
func (p *Prometheus) ResourceRead() {
	p.resourceReads.Inc()
}

// Diagnostic counts an absorbed failure.
func (p *Prometheus) Diagnostic(kind domain.DiagnosticKind) {
	p.diagnostics.WithLabelValues(string(kind)).Inc()
}

// ObserveInference records the duration of one call.
func (p *Prometheus) ObserveInference(d time.Duration) {
	p.duration.Observe(d.Seconds())
}

// WriteTextfile writes all metrics to path in the text exposition format,
// for pickup by a node exporter textfile collector.
func (p *Prometheus) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, p.registry); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write metrics"), "path", path)
	}
	return nil
}
