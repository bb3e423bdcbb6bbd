package driving

import (
	"context"

	"github.com/nvdpcode/qa-final/internal/core/domain"
)

// HistoryService records and retrieves past runs.
type HistoryService interface {
	// Record stores a finished run.
	Record(ctx context.Context, report *domain.RunReport) error

	// Recent lists the latest runs, newest first.
	Recent(ctx context.Context, profile string, limit int) ([]domain.RunSummary, error)

	// Get loads a stored report.
	Get(ctx context.Context, runID string) (*domain.RunReport, error)
}
