package dataset

import (
	"strconv"
	"strings"
)

// CleanReport summarizes what the cleaning pass removed.
type CleanReport struct {
	RowsRead             int
	NullRowsDropped      int
	DuplicateRowsDropped int
}

// RowsKept returns the number of rows that survived cleaning.
func (r CleanReport) RowsKept() int {
	return r.RowsRead - r.NullRowsDropped - r.DuplicateRowsDropped
}

// nullTokens are field values treated as missing.
var nullTokens = map[string]bool{
	"":     true,
	"na":   true,
	"n/a":  true,
	"nan":  true,
	"null": true,
	"none": true,
}

// IsNull reports whether a raw field value counts as missing.
func IsNull(field string) bool {
	return nullTokens[strings.ToLower(strings.TrimSpace(field))]
}

// Clean drops every row with a missing field, then every duplicate of an
// earlier row. Rows are compared by value: fields are trimmed and numbers
// compared numerically, so "1", " 1" and "1.0" are equal. Surviving rows keep their order. Running Clean on its
// own output removes nothing.
func Clean(rows [][]string) ([][]string, CleanReport) {
	report := CleanReport{RowsRead: len(rows)}
	seen := make(map[string]struct{}, len(rows))
	out := make([][]string, 0, len(rows))

	for _, row := range rows {
		if hasNull(row) {
			report.NullRowsDropped++
			continue
		}
		key := rowKey(row)
		if _, dup := seen[key]; dup {
			report.DuplicateRowsDropped++
			continue
		}
		seen[key] = struct{}{}
		out = append(out, row)
	}
	return out, report
}

func hasNull(row []string) bool {
	for _, f := range row {
		if IsNull(f) {
			return true
		}
	}
	return false
}

func rowKey(row []string) string {
	var b strings.Builder
	for i, f := range row {
		if i > 0 {
			b.WriteByte('\x1f')
		}
		f = strings.TrimSpace(f)
		if v, err := strconv.ParseFloat(f, 64); err == nil {
			f = strconv.FormatFloat(v, 'g', -1, 64)
		}
		b.WriteString(f)
	}
	return b.String()
}
