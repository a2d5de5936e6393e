// Package metrics provides a small, backend-agnostic abstraction for
// recording operational metrics from the ETL pipeline.
//
// The package exposes a narrow Backend interface focused on counters and
// timing data, with a global, pluggable backend that defaults to a no-op
// implementation. Metrics calls are therefore always safe, even when no real
// backend is configured. Concrete systems (Prometheus Pushgateway, Datadog)
// live in subpackages and are wired up by the CLI, mirroring the storage
// factory pattern used elsewhere in the project.
package metrics

import "time"

// Labels are string key/value pairs attached to a metric.
type Labels map[string]string

// Backend is the minimal interface for metrics backends.
type Backend interface {
	// IncCounter increments a counter by delta.
	IncCounter(name string, delta float64, labels Labels)
	// ObserveHistogram records a value in a latency/duration style metric.
	ObserveHistogram(name string, value float64, labels Labels)
	// Flush pushes or flushes metrics if the backend needs it.
	Flush() error
}

// nopBackend is used by default so metrics are optional.
type nopBackend struct{}

func (nopBackend) IncCounter(name string, delta float64, labels Labels)       {}
func (nopBackend) ObserveHistogram(name string, value float64, labels Labels) {}
func (nopBackend) Flush() error                                               { return nil }

var backend Backend = nopBackend{}

// SetBackend installs a concrete backend. Passing nil keeps the existing one.
func SetBackend(b Backend) {
	if b == nil {
		return
	}
	backend = b
}

// Flush delegates to the current backend.
func Flush() error {
	return backend.Flush()
}

// RecordStep measures one pipeline phase: latency plus success/failure.
// Steps are the orchestrator phases: connect, extract, transform, load,
// report.
func RecordStep(job, step string, err error, d time.Duration) {
	status := "success"
	if err != nil {
		status = "failure"
	}

	lbls := Labels{
		"job":    job,
		"step":   step,
		"status": status,
	}

	backend.IncCounter("etl_step_total", 1, lbls)
	backend.ObserveHistogram("etl_step_duration_seconds", d.Seconds(), lbls)
}

// RecordDataset increments a record-level counter for one dataset. Kinds
// mirror the quality-report fields:
//   - "raw"
//   - "duplicates"
//   - "missing_handled"
//   - "loaded"
func RecordDataset(job, dataset, kind string, delta int64) {
	if delta <= 0 {
		return
	}
	backend.IncCounter("etl_records_total", float64(delta), Labels{
		"job":     job,
		"dataset": dataset,
		"kind":    kind,
	})
}
