package driven

import (
	"context"

	"github.com/nvdpcode/qa-final/internal/core/domain"
)

// IndexSource reads from the search index.
// Pagination is handled by the implementation; callers receive the
// fully drained collection.
type IndexSource interface {
	// FetchAll returns every document matching query, paging pageSize at a time.
	FetchAll(ctx context.Context, query string, pageSize int) ([]domain.IndexDocument, error)

	// SchemaFields returns the fields declared in the index schema.
	SchemaFields(ctx context.Context) ([]domain.SchemaField, error)
}
