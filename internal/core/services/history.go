package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nvdpcode/qa-final/internal/core/domain"
	"github.com/nvdpcode/qa-final/internal/core/ports/driven"
	"github.com/nvdpcode/qa-final/internal/core/ports/driving"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// DefaultHistoryLimit is the number of runs listed when no limit is given.
const DefaultHistoryLimit = 20

// HistoryService stores run reports in a RunStore.
type HistoryService struct {
	store driven.RunStore
}

// NewHistoryService creates a new history service.
func NewHistoryService(store driven.RunStore) *HistoryService {
	return &HistoryService{store: store}
}

// Record stores a finished run.
func (s *HistoryService) Record(ctx context.Context, report *domain.RunReport) error {
	if s.store == nil {
		return fmt.Errorf("run store: %w", domain.ErrNotConfigured)
	}
	if report == nil || report.RunID == "" {
		return errors.New("report has no run id")
	}
	if err := s.store.Save(ctx, report); err != nil {
		return fmt.Errorf("save run %s: %w", report.RunID, err)
	}
	return nil
}

// Recent lists the latest runs for profile, or for every profile when
// profile is empty.
func (s *HistoryService) Recent(ctx context.Context, profile string, limit int) ([]domain.RunSummary, error) {
	if s.store == nil {
		return nil, fmt.Errorf("run store: %w", domain.ErrNotConfigured)
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return s.store.List(ctx, strings.ToLower(strings.TrimSpace(profile)), limit)
}

// Get loads a stored report by run id.
func (s *HistoryService) Get(ctx context.Context, runID string) (*domain.RunReport, error) {
	if s.store == nil {
		return nil, fmt.Errorf("run store: %w", domain.ErrNotConfigured)
	}
	return s.store.Get(ctx, strings.TrimSpace(runID))
}
