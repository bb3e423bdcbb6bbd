package driven

import (
	"context"

	"github.com/nvdpcode/qa-final/internal/core/domain"
)

// RelationalSource executes pre-built queries against the relational store.
type RelationalSource interface {
	// Query executes query and returns every row. Column names are
	// returned exactly as the database reports them.
	Query(ctx context.Context, query string) ([]domain.Row, error)

	// FormatTimestamps canonicalises date/time values to
	// "YYYY-MM-DD HH:MM:SS" strings.
	FormatTimestamps(rows []domain.Row) []domain.Row

	// Close releases the underlying connection.
	Close() error
}
