package usecase

import (
	"sort"
	"strings"

	"github.com/offerlens/backend/internal/domain"
)

// fallbackKeywords are the category keywords the second resolver tier
// scans for when no alias matches exactly
var fallbackKeywords = []string{"debit", "credit"}

// FindColumn locates the row column best matching the caller's ordered
// alias candidates. Tier one: exact normalized name equality, first
// candidate with a hit wins. Tier two: if the alias set is about debit or
// credit cards, any column whose normalized name contains that keyword.
// Returns the original (verbatim) column name.
func FindColumn(row domain.RawRow, aliases []string) (string, bool) {
	if len(row) == 0 || len(aliases) == 0 {
		return "", false
	}

	// Deterministic scan order regardless of map iteration
	columns := make([]string, 0, len(row))
	for col := range row {
		columns = append(columns, col)
	}
	sort.Strings(columns)

	normalized := make(map[string]string, len(columns))
	for _, col := range columns {
		normalized[col] = NormalizeColumnName(col)
	}

	for _, alias := range aliases {
		want := NormalizeColumnName(alias)
		if want == "" {
			continue
		}
		for _, col := range columns {
			if normalized[col] == want {
				return col, true
			}
		}
	}

	joined := Normalize(strings.Join(aliases, " "))
	for _, keyword := range fallbackKeywords {
		if !strings.Contains(joined, keyword) {
			continue
		}
		for _, col := range columns {
			if strings.Contains(normalized[col], keyword) {
				return col, true
			}
		}
	}

	return "", false
}

// FirstField resolves a column via FindColumn and returns its trimmed
// value, or false if no column resolved or the cell is empty. Callers are
// expected to try alternative alias lists (or ScanColumnsContaining) when
// this comes back empty.
func FirstField(row domain.RawRow, aliases []string) (string, bool) {
	col, ok := FindColumn(row, aliases)
	if !ok {
		return "", false
	}
	value := strings.TrimSpace(row[col])
	if value == "" {
		return "", false
	}
	return value, true
}

// ScanColumnsContaining returns the verbatim names of all columns whose
// normalized name contains any of the given keywords, in sorted order.
// Used for the secondary harvest pass and substring-contains fallbacks.
func ScanColumnsContaining(row domain.RawRow, keywords ...string) []string {
	columns := make([]string, 0, len(row))
	for col := range row {
		columns = append(columns, col)
	}
	sort.Strings(columns)

	var hits []string
	for _, col := range columns {
		nc := NormalizeColumnName(col)
		for _, keyword := range keywords {
			if strings.Contains(nc, keyword) {
				hits = append(hits, col)
				break
			}
		}
	}
	return hits
}
