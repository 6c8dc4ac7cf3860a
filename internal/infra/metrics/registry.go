// Package metrics records conversion run statistics in a Prometheus registry
// that is written out as a node-exporter textfile.
package metrics

import (
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/domain"
	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/ports"
)

const namespace = "edqm2fhir"

type Registry struct {
	reg *prometheus.Registry

	stageSeconds  *prometheus.GaugeVec
	stageFailures *prometheus.CounterVec
	concepts      prometheus.Gauge
	warnings      prometheus.Gauge
	partition     *prometheus.GaugeVec
	written       *prometheus.CounterVec
	lastRun       prometheus.Gauge
}

var _ ports.RunRecorder = (*Registry)(nil)

func NewRegistry() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		stageSeconds: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of the last execution of each pipeline stage.",
		}, []string{"stage"}),
		stageFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stage_failures_total",
			Help:      "Pipeline stages that returned an error.",
		}, []string{"stage"}),
		concepts: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "concepts",
			Help:      "Concepts in the full concept code system.",
		}),
		warnings: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dropped_elements",
			Help:      "Concept elements dropped during transformation.",
		}),
		partition: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "value_set_members",
			Help:      "Members of each class value set.",
		}, []string{"value_set"}),
		written: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resources_written_total",
			Help:      "Resources written to the output directory.",
		}, []string{"kind"}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the metrics were last written.",
		}),
	}

	r.reg.MustRegister(
		r.stageSeconds,
		r.stageFailures,
		r.concepts,
		r.warnings,
		r.partition,
		r.written,
		r.lastRun,
	)
	return r
}

// Gatherer exposes the underlying registry.
func (r *Registry) Gatherer() prometheus.Gatherer { return r.reg }

func (r *Registry) ObserveStage(stage string, d time.Duration, err error) {
	r.stageSeconds.WithLabelValues(stage).Set(d.Seconds())
	if err != nil {
		r.stageFailures.WithLabelValues(stage).Inc()
	}
}

func (r *Registry) ObserveConcepts(n int) { r.concepts.Set(float64(n)) }

func (r *Registry) ObserveWarnings(n int) { r.warnings.Set(float64(n)) }

func (r *Registry) ObservePartition(name string, members int) {
	r.partition.WithLabelValues(name).Set(float64(members))
}

func (r *Registry) ObserveResourceWritten(kind string) {
	r.written.WithLabelValues(kind).Inc()
}

// WriteTextfile stamps the run time and writes all metrics to path in the
// Prometheus text format.
func (r *Registry) WriteTextfile(path string, now time.Time) error {
	r.lastRun.Set(float64(now.Unix()))

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &domain.OpError{Op: "metrics.write", Kind: domain.KindExecution, Path: path, Err: err}
	}
	if err := prometheus.WriteToTextfile(path, r.reg); err != nil {
		return &domain.OpError{Op: "metrics.write", Kind: domain.KindExecution, Path: path, Err: err}
	}
	return nil
}

// Nop discards every observation.
type Nop struct{}

var _ ports.RunRecorder = Nop{}

func (Nop) ObserveStage(string, time.Duration, error) {}
func (Nop) ObserveConcepts(int) {}
func (Nop) ObserveWarnings(int) {}
func (Nop) ObservePartition(string, int) {}
func (Nop) ObserveResourceWritten(string) {}
