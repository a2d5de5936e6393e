package transformer

import (
	"testing"

	"go.uber.org/zap"

	"fleximart/pkg/records"
)

// TestProducts covers the product pipeline: keep-first de-dup, price as the
// hard-fail field, stock defaulting, category casing, numeric coercion.
func TestProducts(t *testing.T) {
	t.Parallel()

	in := []records.Record{
		{
			"product_id":     "P001",
			"product_name":   "  USB Cable ",
			"category":       "electronics",
			"price":          "199.99",
			"stock_quantity": "25",
		},
		{"product_id": "P001", "price": "150.00"}, // duplicate, dropped
		{"product_id": "P002", "price": nil},      // no price, dropped
		{
			"product_id":     "P003",
			"product_name":   "Notebook",
			"category":       "STATIONERY",
			"price":          "49.50",
			"stock_quantity": nil, // defaults to 0
		},
	}

	out, st := Products(in, zap.NewNop())

	if len(out) != 2 {
		t.Fatalf("got %d clean records, want 2", len(out))
	}
	if st.Duplicates != 1 {
		t.Errorf("Duplicates = %d, want 1", st.Duplicates)
	}

	p1 := out[0]
	if got := p1.String("product_name"); got != "USB Cable" {
		t.Errorf("product_name = %q, want trimmed", got)
	}
	if got := p1.String("category"); got != "Electronics" {
		t.Errorf("category = %q, want Electronics", got)
	}
	if v, ok := p1["price"].(float64); !ok || v != 199.99 {
		t.Errorf("price = %#v, want float64 199.99", p1["price"])
	}
	if v, ok := p1["stock_quantity"].(int); !ok || v != 25 {
		t.Errorf("stock_quantity = %#v, want int 25", p1["stock_quantity"])
	}

	p3 := out[1]
	if v, ok := p3["stock_quantity"].(int); !ok || v != 0 {
		t.Errorf("defaulted stock_quantity = %#v, want int 0", p3["stock_quantity"])
	}
	if got := p3.String("category"); got != "Stationery" {
		t.Errorf("category = %q, want Stationery", got)
	}
}

// TestProductsMissingHandled checks that a defaulted stock cell counts as a
// handled missing value alongside the dropped no-price row.
func TestProductsMissingHandled(t *testing.T) {
	t.Parallel()

	in := []records.Record{
		{"product_id": "P1", "price": "10.0", "stock_quantity": nil},
		{"product_id": "P2", "price": nil},
	}
	_, st := Products(in, zap.NewNop())

	// before=2 nil cells, after=0 (stock defaulted, no-price row gone),
	// dropped rows=1 -> 2-0+1 = 3.
	if st.MissingHandled != 3 {
		t.Errorf("MissingHandled = %d, want 3", st.MissingHandled)
	}
}
