// Package metrics records Prometheus gauges describing one apiroutes run.
//
// Each Recorder owns a private registry, so the values can be exported as a
// node_exporter textfile after the run without touching global state:
//
//	rec := metrics.New()
//	rec.ObserveScan(stats)
//	rec.ObserveRun(time.Since(start), err)
//	rec.WriteTextfile("/var/lib/node_exporter/apiroutes.prom")
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/vango-dev/apiroutes/pkg/routetree"
)

// namespace prefixes every metric name.
const namespace = "apiroutes"

// Recorder holds the gauges for a single run.
type Recorder struct {
	registry *prometheus.Registry

	directories    prometheus.Gauge
	endpoints      prometheus.Gauge
	maxDepth       prometheus.Gauge
	skipped        prometheus.Gauge
	outputBytes    prometheus.Gauge
	duration       prometheus.Gauge
	lastSuccess    prometheus.Gauge
	lastRunSeconds prometheus.Gauge
}

// New creates a Recorder backed by a fresh registry.
func New() *Recorder {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	gauge := func(name, help string) prometheus.Gauge {
		return factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		})
	}

	return &Recorder{
		registry:       registry,
		directories:    gauge("directories_scanned", "Directories listed during the last scan"),
		endpoints:      gauge("endpoints", "Endpoint directories found during the last scan"),
		maxDepth:       gauge("max_depth", "Deepest directory level reached during the last scan"),
		skipped:        gauge("directories_skipped", "Directories skipped by ignore patterns or symlink cycles"),
		outputBytes:    gauge("output_bytes", "Size of the last generated file in bytes"),
		duration:       gauge("run_duration_seconds", "Duration of the last run in seconds"),
		lastSuccess:    gauge("last_run_success", "1 if the last run succeeded, 0 otherwise"),
		lastRunSeconds: gauge("last_run_timestamp_seconds", "Unix time the last run finished"),
	}
}

// ObserveScan records tree builder statistics.
func (r *Recorder) ObserveScan(stats routetree.Stats) {
	r.directories.Set(float64(stats.Directories))
	r.endpoints.Set(float64(stats.Endpoints))
	r.maxDepth.Set(float64(stats.MaxDepth))
	r.skipped.Set(float64(stats.Skipped))
}

// ObserveOutput records the size of the generated file.
func (r *Recorder) ObserveOutput(n int) {
	r.outputBytes.Set(float64(n))
}

// ObserveRun records the run duration and outcome.
func (r *Recorder) ObserveRun(d time.Duration, err error) {
	r.duration.Set(d.Seconds())
	if err == nil {
		r.lastSuccess.Set(1)
	} else {
		r.lastSuccess.Set(0)
	}
	r.lastRunSeconds.SetToCurrentTime()
}

// WriteTextfile writes all gauges to path in the Prometheus text format.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
