package transformer

import (
	"go.uber.org/zap"

	"fleximart/internal/transformer/builtin"
	"fleximart/pkg/records"
)

// Products cleans the raw product dataset.
//
// Pipeline: de-dup on product_id (keep first) -> drop records with no price
// (hard-fail field) -> title-case category, default missing stock to 0,
// coerce price/stock to numerics, trim product names.
func Products(in []records.Record, log *zap.Logger) ([]records.Record, Stats) {
	var st Stats
	missingBefore := records.NullCells(in)

	deduped := builtin.DeDup{Keys: []string{"product_id"}}.Apply(in)
	st.Duplicates = len(in) - len(deduped)
	log.Info("removed duplicate product records", zap.Int("duplicates", st.Duplicates))

	clean := builtin.Require{Fields: []string{"price"}}.Apply(deduped)
	droppedRows := len(deduped) - len(clean)

	for _, r := range clean {
		if !r.Nil("category") {
			r["category"] = builtin.TitleCase(r.String("category"))
		}
		// Missing stock is a soft field: default to zero instead of dropping.
		if r.Nil("stock_quantity") {
			r["stock_quantity"] = 0
		}
		trimField(r, "product_name")
	}
	builtin.Coerce{Ints: []string{"stock_quantity"}, Floats: []string{"price"}}.Apply(clean)

	st.MissingHandled = missingBefore - records.NullCells(clean) + droppedRows
	log.Info("product transformation complete", zap.Int("clean_records", len(clean)))
	return clean, st
}
