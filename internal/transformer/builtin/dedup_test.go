package builtin

import (
	"reflect"
	"testing"

	"fleximart/pkg/records"
)

// TestDeDupKeepFirst verifies keep-first semantics: for each key the record
// that appears earliest in input order survives, output order is otherwise
// preserved.
func TestDeDupKeepFirst(t *testing.T) {
	t.Parallel()

	in := []records.Record{
		{"customer_id": "C001", "email": "first@example.com"},
		{"customer_id": "C001", "email": "second@example.com"},
		{"customer_id": "C002", "email": "other@example.com"},
	}
	out := DeDup{Keys: []string{"customer_id"}}.Apply(in)

	if len(out) != 2 {
		t.Fatalf("got %d records, want 2", len(out))
	}
	if got := out[0].String("email"); got != "first@example.com" {
		t.Errorf("kept record email = %q, want the first occurrence", got)
	}
	if got := out[1].String("customer_id"); got != "C002" {
		t.Errorf("second record = %q, want C002", got)
	}
	if dups := len(in) - len(out); dups != 1 {
		t.Errorf("duplicate count = %d, want 1", dups)
	}
}

// TestDeDupNilKeys checks that records with an absent key de-duplicate
// against each other instead of all passing through.
func TestDeDupNilKeys(t *testing.T) {
	t.Parallel()

	in := []records.Record{
		{"customer_id": nil, "email": "a@example.com"},
		{"customer_id": nil, "email": "b@example.com"},
		{"email": "c@example.com"},
	}
	out := DeDup{Keys: []string{"customer_id"}}.Apply(in)

	if len(out) != 1 {
		t.Fatalf("got %d records, want 1", len(out))
	}
	if got := out[0].String("email"); got != "a@example.com" {
		t.Errorf("kept record email = %q, want a@example.com", got)
	}
}

func TestDeDupCompositeKey(t *testing.T) {
	t.Parallel()

	in := []records.Record{
		{"a": "x", "b": "y"},
		{"a": "x", "b": "z"},
		{"a": "x", "b": "y"},
	}
	out := DeDup{Keys: []string{"a", "b"}}.Apply(in)
	want := []records.Record{
		{"a": "x", "b": "y"},
		{"a": "x", "b": "z"},
	}
	if !reflect.DeepEqual(out, want) {
		t.Errorf("Apply = %#v, want %#v", out, want)
	}
}

// TestDeDupNoKeys checks the no-op paths: empty input or no configured keys
// return the input untouched.
func TestDeDupNoKeys(t *testing.T) {
	t.Parallel()

	in := []records.Record{{"a": "x"}, {"a": "x"}}
	if out := (DeDup{}).Apply(in); len(out) != 2 {
		t.Errorf("Apply with no keys dropped records: got %d, want 2", len(out))
	}
	if out := (DeDup{Keys: []string{"a"}}).Apply(nil); out != nil {
		t.Errorf("Apply(nil) = %#v, want nil", out)
	}
}
