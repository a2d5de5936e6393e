package builtin

import (
	"strconv"

	"fleximart/pkg/records"
)

// Coerce converts named string fields to typed values in place. Fields that
// cannot be parsed are cleared to nil rather than carried forward as text,
// so downstream arithmetic and inserts never see a junk numeric.
type Coerce struct {
	Ints   []string // fields coerced to int
	Floats []string // fields coerced to float64
}

// Apply coerces each record in place and returns the same slice.
func (c Coerce) Apply(in []records.Record) []records.Record {
	for _, r := range in {
		for _, f := range c.Ints {
			v, ok := r[f]
			if !ok || v == nil {
				continue
			}
			s, isStr := v.(string)
			if !isStr {
				continue
			}
			if i, err := strconv.Atoi(s); err == nil {
				r[f] = i
			} else if fl, err := strconv.ParseFloat(s, 64); err == nil {
				// "3.0" style integers survive a float round-trip.
				r[f] = int(fl)
			} else {
				r[f] = nil
			}
		}
		for _, f := range c.Floats {
			v, ok := r[f]
			if !ok || v == nil {
				continue
			}
			s, isStr := v.(string)
			if !isStr {
				continue
			}
			if fl, err := strconv.ParseFloat(s, 64); err == nil {
				r[f] = fl
			} else {
				r[f] = nil
			}
		}
	}
	return in
}
