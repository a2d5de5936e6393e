package config

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates a configuration error that blocks execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates a finding surfaced to users without
	// necessarily blocking execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation finding. Path is a dotted path into
// the config (e.g. "storage.kind"); Message is human-readable.
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a
// single error in contexts that expect one.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// knownStorageKinds mirrors the backends registered by
// fleximart/internal/storage/all, without importing them.
var knownStorageKinds = []string{"mssql", "mysql", "postgres", "sqlite"}

// Validate performs static validation of a Pipeline, typically after
// ApplyDefaults. It does not mutate the pipeline; it returns a slice of
// Issues for the caller to surface.
func Validate(p Pipeline) []Issue {
	var issues []Issue

	if strings.TrimSpace(p.Job) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "job",
			Message:  "job must not be empty; it is used for metrics labeling and identifying runs",
		})
	}

	for _, src := range []struct{ path, value string }{
		{"sources.customers", p.Sources.Customers},
		{"sources.products", p.Sources.Products},
		{"sources.sales", p.Sources.Sales},
	} {
		if strings.TrimSpace(src.value) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     src.path,
				Message:  "input path must not be empty",
			})
		}
	}

	if p.Parser.Delimiter != "" && utf8.RuneCountInString(p.Parser.Delimiter) != 1 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "parser.delimiter",
			Message:  fmt.Sprintf("delimiter must be a single character, got %q", p.Parser.Delimiter),
		})
	}

	switch {
	case strings.TrimSpace(p.Storage.Kind) == "":
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "storage.kind",
			Message:  "storage.kind must not be empty",
		})
	case !contains(knownStorageKinds, p.Storage.Kind):
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "storage.kind",
			Message:  fmt.Sprintf("unknown storage.kind %q; known kinds: %s", p.Storage.Kind, strings.Join(knownStorageKinds, ", ")),
		})
	}

	if strings.TrimSpace(p.Storage.DSN) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "storage.dsn",
			Message:  fmt.Sprintf("storage.dsn must be set in the pipeline file or via %s", EnvDSN),
		})
	}

	return issues
}

func contains(xs []string, x string) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
