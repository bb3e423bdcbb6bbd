package services

import (
	"strings"
	"unicode"

	"github.com/nvdpcode/qa-final/internal/core/domain"
)

// NotAvailable is the comparison form of every null-like value.
const NotAvailable = "N/A"

// NormalizeValue canonicalises a scalar for cross-store comparison.
// Null-like values map to NotAvailable; everything else is trimmed and
// stripped of all whitespace.
func NormalizeValue(v any) string {
	if v == nil {
		return NotAvailable
	}
	s := strings.TrimSpace(stringify(v))
	switch s {
	case "", domain.NullMarker, NotAvailable, "None", "unknown":
		return NotAvailable
	}
	if strings.EqualFold(s, "n/a") {
		return NotAvailable
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// relationalComparable is the relational side of a field comparison.
func relationalComparable(v any) string {
	return stripQuotes(NormalizeValue(v))
}

// indexComparable is the index side of a field comparison. Index values
// may carry quotes and Windows path separators.
func indexComparable(v any, strip TagStripper) string {
	v = unwrap(v)
	if s, ok := v.(string); ok && strip != nil {
		v = strip(s)
	}
	return strings.ReplaceAll(stripQuotes(NormalizeValue(v)), `\`, "/")
}

// equivalent applies the cross-store null rule: a relational NotAvailable
// equals an index NullMarker.
func equivalent(relational, index string) bool {
	if relational == NotAvailable && index == domain.NullMarker {
		return true
	}
	return relational == index
}
