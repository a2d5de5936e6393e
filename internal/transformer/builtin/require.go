package builtin

import "fleximart/pkg/records"

// Require removes any record missing a value for one of the specified
// fields. These are the hard-fail fields of a dataset: a missing value drops
// the whole record, unlike soft fields which are normalized in place.
type Require struct {
	Fields []string
}

// Apply returns a filtered slice containing only records that have all
// required fields present and non-empty. Callers derive the dropped count
// from len(in) - len(out).
func (r Require) Apply(in []records.Record) []records.Record {
	out := make([]records.Record, 0, len(in))
	for _, rec := range in {
		ok := true
		for _, f := range r.Fields {
			if rec.Nil(f) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, rec)
		}
	}
	return out
}
