package transformer

import (
	"testing"

	"go.uber.org/zap"

	"fleximart/pkg/records"
)

// TestCustomers runs the full customer pipeline over a batch exercising every
// cleaning rule at once and checks both the surviving records and the quality
// stats.
func TestCustomers(t *testing.T) {
	t.Parallel()

	in := []records.Record{
		{
			"customer_id":       "C001",
			"first_name":        "  Priya ",
			"last_name":         "Sharma",
			"email":             " Priya.Sharma@Example.COM ",
			"phone":             "98765 43210",
			"city":              "new delhi",
			"registration_date": "15/03/2024",
		},
		// Duplicate id, later occurrence: dropped.
		{
			"customer_id": "C001",
			"email":       "other@example.com",
		},
		// No email: dropped by the required-field filter.
		{
			"customer_id": "C002",
			"email":       nil,
			"phone":       "9876543210",
		},
		// Unparseable phone and date both null out in place.
		{
			"customer_id":       "C003",
			"email":             "c3@example.com",
			"phone":             "12345",
			"city":              nil,
			"registration_date": "not-a-date",
		},
	}

	out, st := Customers(in, zap.NewNop())

	if len(out) != 2 {
		t.Fatalf("got %d clean records, want 2", len(out))
	}
	if st.Duplicates != 1 {
		t.Errorf("Duplicates = %d, want 1", st.Duplicates)
	}

	first := out[0]
	if got := first.String("first_name"); got != "Priya" {
		t.Errorf("first_name = %q, want trimmed Priya", got)
	}
	if got := first.String("email"); got != "priya.sharma@example.com" {
		t.Errorf("email = %q, want lowercased and trimmed", got)
	}
	if got := first.String("phone"); got != "+91-9876543210" {
		t.Errorf("phone = %q, want +91-9876543210", got)
	}
	if got := first.String("city"); got != "New Delhi" {
		t.Errorf("city = %q, want New Delhi", got)
	}
	if got := first.String("registration_date"); got != "2024-03-15" {
		t.Errorf("registration_date = %q, want 2024-03-15", got)
	}

	third := out[1]
	if third["phone"] != nil {
		t.Errorf("invalid phone = %#v, want nil", third["phone"])
	}
	if third["registration_date"] != nil {
		t.Errorf("unparseable registration_date = %#v, want nil", third["registration_date"])
	}
}

// TestCustomersMissingHandled pins the accounting formula: nil-cell delta
// across the pipeline plus rows dropped for a missing required field.
func TestCustomersMissingHandled(t *testing.T) {
	t.Parallel()

	in := []records.Record{
		// One nil cell (phone) that stays nil through the pipeline.
		{"customer_id": "C1", "email": "a@x.com", "phone": nil},
		// Dropped for missing email: +1 row, and its nil cell leaves the batch.
		{"customer_id": "C2", "email": nil},
	}
	_, st := Customers(in, zap.NewNop())

	// before=2 nil cells, after=1, dropped rows=1 -> 2-1+1 = 2.
	if st.MissingHandled != 2 {
		t.Errorf("MissingHandled = %d, want 2", st.MissingHandled)
	}
}

func TestCustomersEmpty(t *testing.T) {
	t.Parallel()

	out, st := Customers(nil, zap.NewNop())
	if len(out) != 0 || st.Duplicates != 0 || st.MissingHandled != 0 {
		t.Errorf("empty input: out=%d stats=%+v, want all zero", len(out), st)
	}
}
