package driving

import (
	"context"

	"github.com/nvdpcode/qa-final/internal/core/domain"
)

// CheckService runs reconciliation checks for a profile.
// Every check is independently invokable.
type CheckService interface {
	// CheckCounts compares the number of composite relational documents
	// with the number of index documents.
	CheckCounts(ctx context.Context, profile domain.Profile) (*domain.CountResult, error)

	// CheckColumns compares relational field names with the index schema.
	CheckColumns(ctx context.Context, profile domain.Profile) (*domain.ColumnResult, error)

	// CompareDocuments pairs documents by key and compares their fields.
	// A failed fetch degrades that side to an empty collection.
	CompareDocuments(ctx context.Context, profile domain.Profile) (*domain.DocumentResult, error)

	// CheckLifecycle validates lifecycle status and release dates in the index.
	CheckLifecycle(ctx context.Context, profile domain.Profile) (*domain.LifecycleResult, error)

	// Run executes the given checks in order and collects a report.
	// Check failures are recorded in the report rather than aborting the run.
	Run(ctx context.Context, profile domain.Profile, checks []domain.CheckKind) (*domain.RunReport, error)
}

// ProfileService resolves named profiles from configuration.
type ProfileService interface {
	// List returns the configured profile names in sorted order.
	List() []string

	// Get loads a profile by name.
	Get(name string) (domain.Profile, error)
}
