// Package records defines the row representation shared by the parser,
// transformer, and load stages. A Record is a raw or cleaned row keyed by
// column name; empty source cells are stored as nil so that missing-value
// accounting can distinguish "absent" from an empty string.
package records

import "strconv"

// Record is one row of a dataset, keyed by canonical column name.
type Record map[string]any

// String returns the value for key as a string, or "" when the value is
// absent, nil, or not a string.
func (r Record) String(key string) string {
	if v, ok := r[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Float returns the value for key as a float64. String values are parsed;
// integer values are widened. The second return reports whether a numeric
// value was available.
func (r Record) Float(key string) (float64, bool) {
	switch v := r[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

// Int returns the value for key as an int. String values are parsed. The
// second return reports whether an integral value was available.
func (r Record) Int(key string) (int, bool) {
	switch v := r[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	case string:
		if i, err := strconv.Atoi(v); err == nil {
			return i, true
		}
	}
	return 0, false
}

// Nil reports whether the value for key is absent, nil, or an empty string.
func (r Record) Nil(key string) bool {
	v, ok := r[key]
	if !ok || v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}

// NullCells counts the nil cells across a batch of records. Empty strings do
// not count; only cells holding nil (missing source values or values cleared
// by normalization) do.
func NullCells(recs []Record) int {
	n := 0
	for _, r := range recs {
		for _, v := range r {
			if v == nil {
				n++
			}
		}
	}
	return n
}
