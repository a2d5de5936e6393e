// Package csv parses delimited input files into records. Headers are
// normalized to canonical column names, empty cells become nil, and rows
// that fail to parse are skipped and counted rather than aborting the run.
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"fleximart/pkg/records"
)

// skippedLogLimit caps per-row warnings so a badly mangled file cannot flood
// the log; the total skipped count is always reported by the caller.
const skippedLogLimit = 100

// utf8BOM is stripped from the first header cell if present.
const utf8BOM = "\uFEFF"

// Options configures the parser. All fields are optional; sensible defaults
// apply when a field is zero.
type Options struct {
	// HasHeader indicates whether the first row contains column headers.
	HasHeader bool

	// Comma specifies the field delimiter. When zero, ',' is used.
	Comma rune

	// TrimSpace trims leading/trailing spaces from each field value.
	TrimSpace bool

	// HeaderMap maps source header names to canonical column names. Only
	// applies when HasHeader is true.
	HeaderMap map[string]string
}

// Parser parses delimited input according to Options. It is safe to reuse
// across inputs but is not concurrency-safe.
type Parser struct {
	opt Options
	log *zap.Logger
}

// NewParser constructs a Parser with the provided Options.
func NewParser(opt Options, log *zap.Logger) *Parser {
	return &Parser{opt: opt, log: log}
}

// Parse consumes rows from r and returns the parsed records along with the
// number of rows skipped due to parse errors or field-count mismatches.
func (p *Parser) Parse(r io.Reader) ([]records.Record, int, error) {
	cr := csv.NewReader(r)
	if p.opt.Comma != 0 {
		cr.Comma = p.opt.Comma
	}
	cr.FieldsPerRecord = -1 // width enforced below, against the header

	var headers []string
	if p.opt.HasHeader {
		h, err := cr.Read()
		if err != nil {
			return nil, 0, fmt.Errorf("read csv header: %w", err)
		}
		headers = p.normalizeHeaders(h)
	}

	var out []records.Record
	var skipped int
	for line := 1; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			if skipped < skippedLogLimit {
				p.log.Warn("skipping unparseable row", zap.Int("line", line), zap.Error(err))
			}
			skipped++
			continue
		}
		if len(headers) > 0 && len(row) != len(headers) {
			if skipped < skippedLogLimit {
				p.log.Warn("skipping row with unexpected field count",
					zap.Int("line", line),
					zap.Int("expected", len(headers)),
					zap.Int("got", len(row)),
				)
			}
			skipped++
			continue
		}

		rec := make(records.Record, len(row))
		for i, val := range row {
			if p.opt.TrimSpace {
				val = strings.TrimSpace(val)
			}
			rec[keyFor(i, headers)] = emptyToNil(val)
		}
		out = append(out, rec)
	}
	return out, skipped, nil
}

// keyFor returns the column key for index idx, using headers when available,
// otherwise synthesizing a "col_N" name.
func keyFor(idx int, headers []string) string {
	if idx < len(headers) && headers[idx] != "" {
		return headers[idx]
	}
	return fmt.Sprintf("col_%d", idx)
}

// emptyToNil converts an empty string to nil so missing-value accounting can
// see it; all other values pass through.
func emptyToNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// normalizeHeaders produces canonical header keys using HeaderMap when
// provided, plus simple normalization (lowercase, spaces to underscores). A
// UTF-8 BOM on the first cell is stripped.
func (p *Parser) normalizeHeaders(h []string) []string {
	res := make([]string, len(h))
	for i, col := range h {
		c := strings.TrimSpace(col)
		if i == 0 {
			c = strings.TrimPrefix(c, utf8BOM)
		}
		if p.opt.HeaderMap != nil {
			if m, ok := p.opt.HeaderMap[c]; ok {
				res[i] = m
				continue
			}
		}
		res[i] = strings.ReplaceAll(strings.ToLower(c), " ", "_")
	}
	return res
}
