package driven

import (
	"context"

	"github.com/nvdpcode/qa-final/internal/core/domain"
)

// RunStore persists the reports of past runs.
type RunStore interface {
	// Save stores a report, replacing any report with the same run id.
	Save(ctx context.Context, report *domain.RunReport) error

	// Get retrieves a full report by run id.
	// Returns domain.ErrRunNotFound if no such run exists.
	Get(ctx context.Context, runID string) (*domain.RunReport, error)

	// List returns summaries newest first. An empty profile matches every
	// profile; limit <= 0 means no limit.
	List(ctx context.Context, profile string, limit int) ([]domain.RunSummary, error)
}
