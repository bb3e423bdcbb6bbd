package services

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/nvdpcode/qa-final/internal/core/domain"
)

// Release date bounds accepted by IsValidReleaseDate.
const (
	minReleaseYear = 1900
	maxReleaseYear = 2100
)

// LifecycleValidator flags index documents that are not in the expected
// lifecycle state or carry an invalid release date.
type LifecycleValidator struct {
	log      *zap.Logger
	expected string
	extract  TagStripper
}

// NewLifecycleValidator creates a validator. extract pulls the value out
// of each unwrapped field; TokenAt(1) matches the tagged index format.
func NewLifecycleValidator(log *zap.Logger, expected string, extract TagStripper) *LifecycleValidator {
	if log == nil {
		log = zap.NewNop()
	}
	if expected == "" {
		expected = domain.DefaultExpectedLifecycle
	}
	if extract == nil {
		extract = TokenAt(1)
	}
	return &LifecycleValidator{log: log, expected: expected, extract: extract}
}

// LifecycleExtractor returns the field extractor for a profile.
func LifecycleExtractor(p domain.Profile) TagStripper {
	if p.TaggedIndexValues {
		return TokenAt(1)
	}
	return TokenAt(0)
}

// Validate returns one violation per failing document, in input order.
// A document failing several conditions is still reported once.
func (v *LifecycleValidator) Validate(docs []domain.IndexDocument) *domain.LifecycleResult {
	result := &domain.LifecycleResult{Checked: len(docs), Violations: make([]domain.LifecycleViolation, 0)}

	for _, doc := range docs {
		lifecycle := v.field(doc, fieldLifecycle)
		releaseDate := v.field(doc, fieldReleaseDate)
		itemNumber := v.field(doc, fieldItemNumber)

		if lifecycle == v.expected && IsValidReleaseDate(releaseDate) {
			continue
		}

		result.Violations = append(result.Violations, domain.LifecycleViolation{
			ItemNumber:  itemNumber,
			ReleaseDate: releaseDate,
			Lifecycle:   lifecycle,
		})
		v.log.Warn(fmt.Sprintf("Discrepancy found in the item number: %s. Release Date: %s, Lifecycle: %s",
			itemNumber, releaseDate, lifecycle),
			zap.String("item_number", itemNumber),
			zap.String("release_date", releaseDate),
			zap.String("lifecycle", lifecycle))
	}

	v.log.Info(fmt.Sprintf("Discrepancy Count: %d", len(result.Violations)),
		zap.Int("checked", result.Checked),
		zap.Int("discrepancies", len(result.Violations)))
	return result
}

func (v *LifecycleValidator) field(doc domain.IndexDocument, name string) string {
	raw, ok := doc[name]
	if !ok {
		return ""
	}
	return v.extract(stringify(unwrap(raw)))
}

// IsValidReleaseDate reports whether s is YYYY-MM-DD with month 1-12,
// day 1-31 and year 1900-2100. Days are not checked against the month.
func IsValidReleaseDate(s string) bool {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return false
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return false
		}
		nums[i] = n
	}
	year, month, day := nums[0], nums[1], nums[2]
	return month >= 1 && month <= 12 &&
		day >= 1 && day <= 31 &&
		year >= minReleaseYear && year <= maxReleaseYear
}
