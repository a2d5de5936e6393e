// Package builtin contains the reusable cleaning transformers used by the
// per-dataset pipelines: de-duplication, required-field filtering, numeric
// coercion, and the field-level normalizers for phone numbers, dates, and
// text casing.
package builtin

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// dateLayouts is the ordered list of accepted input formats. The order is a
// compatibility contract: ambiguous values such as "01/02/2024" resolve to
// whichever layout matches first (day-first before month-first).
var dateLayouts = []string{
	"2006-01-02", // ISO
	"02/01/2006", // DD/MM/YYYY
	"01-02-2006", // MM-DD-YYYY
	"02-01-2006", // DD-MM-YYYY
	"01/02/2006", // MM/DD/YYYY
}

// NormalizePhone standardizes a raw phone value to "+91-XXXXXXXXXX".
//
// All non-digit characters are stripped; a leading "91" country code is
// removed when more than ten digits remain; the result is truncated to the
// first ten digits. Anything that does not end up as exactly ten digits
// yields ok=false, which callers treat as a nullable field rather than an
// error.
func NormalizePhone(raw string) (string, bool) {
	var b strings.Builder
	for _, c := range raw {
		if c >= '0' && c <= '9' {
			b.WriteRune(c)
		}
	}
	digits := b.String()

	if strings.HasPrefix(digits, "91") && len(digits) > 10 {
		digits = digits[2:]
	}
	if len(digits) > 10 {
		digits = digits[:10]
	}
	if len(digits) != 10 {
		return "", false
	}
	return "+91-" + digits, true
}

// NormalizeDate parses a raw date against the ordered layout list and
// reformats the first match as ISO "YYYY-MM-DD". ok=false means no layout
// matched; callers log a warning and carry the field as nil.
func NormalizeDate(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}

// TitleCase trims the value and converts it to English title case, used for
// city and category names ("new delhi" -> "New Delhi").
func TitleCase(s string) string {
	return cases.Title(language.English).String(strings.TrimSpace(s))
}
