package builtin

import (
	"fmt"
	"strings"

	"fleximart/pkg/records"
)

// DeDup collapses records that share a natural key, keeping the first
// occurrence in input order. It runs in-memory on a single batch before any
// database work; the database still carries UNIQUE constraints as a backstop.
//
// A record's key is the concatenation of the configured fields as strings.
// Nil or missing key cells map to a sentinel byte, so records with an absent
// key still de-duplicate against one another instead of passing through.
type DeDup struct {
	// Keys are the field names that form the business key, e.g. ["customer_id"].
	Keys []string
}

// Apply returns a new slice containing the first record seen for each key,
// preserving input order. Callers derive the removed-duplicate count from
// len(in) - len(out).
func (d DeDup) Apply(in []records.Record) []records.Record {
	if len(in) == 0 || len(d.Keys) == 0 {
		return in
	}

	seen := make(map[string]struct{}, len(in))
	out := make([]records.Record, 0, len(in))
	for _, r := range in {
		key := d.keyOf(r)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r)
	}
	return out
}

func (d DeDup) keyOf(r records.Record) string {
	var b strings.Builder
	for i, k := range d.Keys {
		if i > 0 {
			b.WriteByte('\x1f') // unlikely separator
		}
		switch v := r[k].(type) {
		case nil:
			b.WriteByte('\x00')
		case string:
			b.WriteString(v)
		default:
			// Stabilize non-string keys across earlier coercions.
			b.WriteString(fmt.Sprint(v))
		}
	}
	return b.String()
}
