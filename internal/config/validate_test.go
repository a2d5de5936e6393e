package config

import (
	"strings"
	"testing"
)

func validPipeline() Pipeline {
	p := Pipeline{
		Job:     "fleximart-etl",
		Storage: Storage{Kind: "sqlite", DSN: "fleximart.db"},
	}
	p.ApplyDefaults()
	return p
}

// TestValidateOK checks a fully specified pipeline produces no issues.
func TestValidateOK(t *testing.T) {
	if issues := Validate(validPipeline()); len(issues) != 0 {
		t.Errorf("Validate = %v, want no issues", issues)
	}
}

// TestValidateErrors covers each error path and its reported field.
func TestValidateErrors(t *testing.T) {
	cases := []struct {
		name     string
		mutate   func(*Pipeline)
		wantPath string
		wantSev  IssueSeverity
	}{
		{
			name:     "empty_job",
			mutate:   func(p *Pipeline) { p.Job = " " },
			wantPath: "job",
			wantSev:  SeverityError,
		},
		{
			name:     "empty_source",
			mutate:   func(p *Pipeline) { p.Sources.Products = "" },
			wantPath: "sources.products",
			wantSev:  SeverityError,
		},
		{
			name:     "multi_char_delimiter",
			mutate:   func(p *Pipeline) { p.Parser.Delimiter = ",," },
			wantPath: "parser.delimiter",
			wantSev:  SeverityError,
		},
		{
			name:     "empty_storage_kind",
			mutate:   func(p *Pipeline) { p.Storage.Kind = "" },
			wantPath: "storage.kind",
			wantSev:  SeverityError,
		},
		{
			name:     "unknown_storage_kind",
			mutate:   func(p *Pipeline) { p.Storage.Kind = "oracle" },
			wantPath: "storage.kind",
			wantSev:  SeverityWarning,
		},
		{
			name:     "empty_dsn",
			mutate:   func(p *Pipeline) { p.Storage.DSN = "" },
			wantPath: "storage.dsn",
			wantSev:  SeverityError,
		},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			p := validPipeline()
			tc.mutate(&p)

			issues := Validate(p)
			if len(issues) != 1 {
				t.Fatalf("got %d issues (%v), want 1", len(issues), issues)
			}
			if issues[0].Path != tc.wantPath || issues[0].Severity != tc.wantSev {
				t.Errorf("issue = %+v, want path %q severity %q", issues[0], tc.wantPath, tc.wantSev)
			}
		})
	}
}

// TestValidateUTF8Delimiter checks a single multibyte rune is accepted.
func TestValidateUTF8Delimiter(t *testing.T) {
	p := validPipeline()
	p.Parser.Delimiter = "§"
	if issues := Validate(p); len(issues) != 0 {
		t.Errorf("single multibyte delimiter rejected: %v", issues)
	}
}

// TestIssueError checks issues read well when treated as errors.
func TestIssueError(t *testing.T) {
	issue := Issue{Severity: SeverityError, Path: "storage.dsn", Message: "must be set"}
	msg := issue.Error()
	for _, want := range []string{"error", "storage.dsn", "must be set"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() = %q, missing %q", msg, want)
		}
	}
}
