package quality

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestTrackerSetGet verifies overwrite semantics and the zeroed defaults for
// the known datasets.
func TestTrackerSetGet(t *testing.T) {
	t.Parallel()

	tr := NewTracker()
	for _, ds := range Datasets {
		if got := tr.Get(ds, MetricRaw); got != 0 {
			t.Errorf("fresh tracker %s raw = %d, want 0", ds, got)
		}
	}

	tr.Set(DatasetCustomers, MetricRaw, 100)
	tr.Set(DatasetCustomers, MetricRaw, 42)
	if got := tr.Get(DatasetCustomers, MetricRaw); got != 42 {
		t.Errorf("Get after overwrite = %d, want 42", got)
	}
}

// TestTrackerScore checks the percentage math and the raw=0 guard.
func TestTrackerScore(t *testing.T) {
	t.Parallel()

	tr := NewTracker()
	if got := tr.Score(DatasetSales); got != 0 {
		t.Errorf("Score with raw=0 = %v, want 0", got)
	}

	tr.Set(DatasetSales, MetricRaw, 200)
	tr.Set(DatasetSales, MetricLoaded, 150)
	if got := tr.Score(DatasetSales); got != 75 {
		t.Errorf("Score = %v, want 75", got)
	}
}

// TestWriteReport checks the rendered report structure: header, one block
// per dataset in order, and the overall summary with the aggregated rate.
func TestWriteReport(t *testing.T) {
	t.Parallel()

	tr := NewTracker()
	tr.Set(DatasetCustomers, MetricRaw, 10)
	tr.Set(DatasetCustomers, MetricDuplicates, 1)
	tr.Set(DatasetCustomers, MetricMissingHandled, 3)
	tr.Set(DatasetCustomers, MetricLoaded, 8)
	tr.Set(DatasetProducts, MetricRaw, 5)
	tr.Set(DatasetProducts, MetricLoaded, 5)
	tr.Set(DatasetSales, MetricRaw, 20)
	tr.Set(DatasetSales, MetricLoaded, 15)

	var buf bytes.Buffer
	if err := tr.WriteReport(&buf, "run-123"); err != nil {
		t.Fatalf("WriteReport: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"FLEXIMART ETL PIPELINE - DATA QUALITY REPORT",
		"Run ID:    run-123",
		"CUSTOMERS DATASET",
		"PRODUCTS DATASET",
		"SALES DATASET",
		"Records in raw file:              10",
		"Duplicate records removed:        1",
		"Missing values handled:           3",
		"Records loaded successfully:      8",
		"Data quality score:               80.00%",
		"OVERALL SUMMARY",
		"Total records processed:          35",
		"Total records loaded:             28",
		"Overall success rate:             80.00%",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q\n%s", want, out)
		}
	}

	// Dataset blocks appear in processing order.
	ci := strings.Index(out, "CUSTOMERS DATASET")
	pi := strings.Index(out, "PRODUCTS DATASET")
	si := strings.Index(out, "SALES DATASET")
	if !(ci < pi && pi < si) {
		t.Errorf("dataset blocks out of order: customers=%d products=%d sales=%d", ci, pi, si)
	}
}

func TestWriteReportFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "report.txt")
	if err := NewTracker().WriteReportFile(path, "run-x"); err != nil {
		t.Fatalf("WriteReportFile: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !strings.Contains(string(b), "OVERALL SUMMARY") {
		t.Errorf("report file missing summary section")
	}
}
