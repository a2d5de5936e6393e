package prompush

import (
	"testing"

	dto "github.com/prometheus/client_model/go"

	"fleximart/internal/metrics"
)

// gather returns the family with the given name, or nil.
func gather(t *testing.T, b *Backend, name string) *dto.MetricFamily {
	t.Helper()
	families, err := b.reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func TestNewBackendValidation(t *testing.T) {
	t.Parallel()

	if _, err := NewBackend("job", ""); err == nil {
		t.Fatal("NewBackend with empty URL: want error, got nil")
	}
	b, err := NewBackend("", "http://localhost:9091")
	if err != nil {
		t.Fatalf("NewBackend: %v", err)
	}
	if b.jobName != "fleximart_etl" {
		t.Errorf("default jobName = %q, want fleximart_etl", b.jobName)
	}
}

// TestIncCounterMapping checks the generic calls land on the right
// collectors with the right label values.
func TestIncCounterMapping(t *testing.T) {
	t.Parallel()

	b, err := NewBackend("test", "http://localhost:9091")
	if err != nil {
		t.Fatalf("NewBackend: %v", err)
	}

	b.IncCounter("etl_step_total", 1, metrics.Labels{"step": "extract", "status": "success"})
	b.IncCounter("etl_step_total", 1, metrics.Labels{"step": "extract", "status": "success"})
	b.IncCounter("etl_records_total", 42, metrics.Labels{"dataset": "sales", "kind": "loaded"})
	b.IncCounter("unknown_metric", 9, nil)

	steps := gather(t, b, "etl_step_total")
	if steps == nil || len(steps.Metric) != 1 {
		t.Fatalf("etl_step_total families = %+v, want one series", steps)
	}
	if got := steps.Metric[0].GetCounter().GetValue(); got != 2 {
		t.Errorf("etl_step_total = %v, want 2", got)
	}

	recs := gather(t, b, "etl_records_total")
	if recs == nil || len(recs.Metric) != 1 {
		t.Fatalf("etl_records_total families = %+v, want one series", recs)
	}
	m := recs.Metric[0]
	if got := m.GetCounter().GetValue(); got != 42 {
		t.Errorf("etl_records_total = %v, want 42", got)
	}
	labels := map[string]string{}
	for _, lp := range m.GetLabel() {
		labels[lp.GetName()] = lp.GetValue()
	}
	if labels["dataset"] != "sales" || labels["kind"] != "loaded" {
		t.Errorf("labels = %v, want dataset=sales kind=loaded", labels)
	}

	if mf := gather(t, b, "unknown_metric"); mf != nil {
		t.Errorf("unknown metric name was registered: %+v", mf)
	}
}

// TestObserveHistogram checks durations land on the summary with a sample
// count.
func TestObserveHistogram(t *testing.T) {
	t.Parallel()

	b, err := NewBackend("test", "http://localhost:9091")
	if err != nil {
		t.Fatalf("NewBackend: %v", err)
	}

	b.ObserveHistogram("etl_step_duration_seconds", 0.5, metrics.Labels{"step": "load", "status": "success"})
	b.ObserveHistogram("etl_step_duration_seconds", 1.5, metrics.Labels{"step": "load", "status": "success"})
	b.ObserveHistogram("something_else", 3, nil)

	mf := gather(t, b, "etl_step_duration_seconds")
	if mf == nil || len(mf.Metric) != 1 {
		t.Fatalf("duration families = %+v, want one series", mf)
	}
	s := mf.Metric[0].GetSummary()
	if s.GetSampleCount() != 2 {
		t.Errorf("sample count = %d, want 2", s.GetSampleCount())
	}
	if s.GetSampleSum() != 2.0 {
		t.Errorf("sample sum = %v, want 2.0", s.GetSampleSum())
	}
}
