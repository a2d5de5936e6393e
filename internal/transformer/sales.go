package transformer

import (
	"go.uber.org/zap"

	"fleximart/internal/transformer/builtin"
	"fleximart/pkg/records"
)

// Sales cleans the raw sales transaction dataset.
//
// Pipeline: de-dup on transaction_id (keep first) -> drop records missing
// customer_id or product_id (both are hard dependencies of the load stage)
// -> ISO dates, numeric coercion, derived subtotal, trimmed status.
func Sales(in []records.Record, log *zap.Logger) ([]records.Record, Stats) {
	var st Stats
	missingBefore := records.NullCells(in)

	deduped := builtin.DeDup{Keys: []string{"transaction_id"}}.Apply(in)
	st.Duplicates = len(in) - len(deduped)
	log.Info("removed duplicate sales records", zap.Int("duplicates", st.Duplicates))

	// Count each missing id cell, then drop the affected rows: a sales row
	// without both references can never be loaded.
	droppedCells := 0
	for _, r := range deduped {
		if r.Nil("customer_id") {
			droppedCells++
		}
		if r.Nil("product_id") {
			droppedCells++
		}
	}
	clean := builtin.Require{Fields: []string{"customer_id", "product_id"}}.Apply(deduped)

	builtin.Coerce{Ints: []string{"quantity"}, Floats: []string{"unit_price"}}.Apply(clean)
	for _, r := range clean {
		normalizeDateField(r, "transaction_date", log)
		trimField(r, "status")

		// Derived field: subtotal = quantity * unit_price. Left nil when
		// either operand is missing or unparseable.
		q, qok := r.Int("quantity")
		u, uok := r.Float("unit_price")
		if qok && uok {
			r["subtotal"] = float64(q) * u
		} else {
			r["subtotal"] = nil
		}
	}

	st.MissingHandled = missingBefore - records.NullCells(clean) + droppedCells
	log.Info("sales transformation complete", zap.Int("clean_records", len(clean)))
	return clean, st
}
