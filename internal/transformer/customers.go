package transformer

import (
	"strings"

	"go.uber.org/zap"

	"fleximart/internal/transformer/builtin"
	"fleximart/pkg/records"
)

// Customers cleans the raw customer dataset.
//
// Pipeline: de-dup on customer_id (keep first) -> drop records with no email
// (hard-fail field) -> normalize phone, title-case city, ISO dates, trimmed
// names, lowercased email.
func Customers(in []records.Record, log *zap.Logger) ([]records.Record, Stats) {
	var st Stats
	missingBefore := records.NullCells(in)

	deduped := builtin.DeDup{Keys: []string{"customer_id"}}.Apply(in)
	st.Duplicates = len(in) - len(deduped)
	log.Info("removed duplicate customer records", zap.Int("duplicates", st.Duplicates))

	// Email is required; records without one are dropped entirely.
	clean := builtin.Require{Fields: []string{"email"}}.Apply(deduped)
	droppedRows := len(deduped) - len(clean)

	for _, r := range clean {
		normalizePhoneField(r, "phone")
		normalizeDateField(r, "registration_date", log)
		if !r.Nil("city") {
			r["city"] = builtin.TitleCase(r.String("city"))
		}
		trimField(r, "first_name")
		trimField(r, "last_name")
		r["email"] = strings.ToLower(strings.TrimSpace(r.String("email")))
	}

	st.MissingHandled = missingBefore - records.NullCells(clean) + droppedRows
	log.Info("customer transformation complete", zap.Int("clean_records", len(clean)))
	return clean, st
}

// normalizePhoneField replaces the field with its standardized form, or nil
// when no valid ten-digit number can be recovered.
func normalizePhoneField(r records.Record, field string) {
	if r.Nil(field) {
		return
	}
	if p, ok := builtin.NormalizePhone(r.String(field)); ok {
		r[field] = p
	} else {
		r[field] = nil
	}
}

// normalizeDateField replaces the field with an ISO date, or nil with a
// warning when no known layout matches. An unparseable date never drops the
// record.
func normalizeDateField(r records.Record, field string, log *zap.Logger) {
	if r.Nil(field) {
		return
	}
	raw := r.String(field)
	if d, ok := builtin.NormalizeDate(raw); ok {
		r[field] = d
		return
	}
	log.Warn("could not parse date", zap.String("field", field), zap.String("value", raw))
	r[field] = nil
}

func trimField(r records.Record, field string) {
	if !r.Nil(field) {
		r[field] = strings.TrimSpace(r.String(field))
	}
}
