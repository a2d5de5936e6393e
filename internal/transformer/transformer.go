// Package transformer implements the per-dataset cleaning pipelines. Each
// pipeline is built from the builtin transformers (de-dup, required-field
// filtering, normalizers, numeric coercion) and reports the data-quality
// stats the tracker needs: duplicates removed and missing values handled.
package transformer

import "fleximart/pkg/records"

// Transformer mutates or filters a batch of records.
type Transformer interface {
	Apply([]records.Record) []records.Record
}

// Chain is an ordered list of transformers.
type Chain []Transformer

func (c Chain) Apply(in []records.Record) []records.Record {
	out := in
	for _, t := range c {
		out = t.Apply(out)
	}
	return out
}

// Stats carries the per-dataset quality counts produced by a cleaning
// pipeline. MissingHandled intentionally mixes granularities: it is the drop
// in nil cells across the pipeline plus the rows removed for a missing
// required field. The formula is preserved verbatim from the accounting the
// quality report has always shown.
type Stats struct {
	Duplicates     int
	MissingHandled int
}
