package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/nvdpcode/qa-final/internal/core/domain"
	"github.com/nvdpcode/qa-final/internal/core/ports/driven"
)

// Ensure RunStore implements the interface.
var _ driven.RunStore = (*RunStore)(nil)

// RunStore is an in-memory implementation of driven.RunStore.
type RunStore struct {
	mu   sync.RWMutex
	runs map[string]domain.RunReport
}

// NewRunStore creates a new in-memory run store.
func NewRunStore() *RunStore {
	return &RunStore{runs: make(map[string]domain.RunReport)}
}

// Save stores or replaces a run.
func (s *RunStore) Save(_ context.Context, report *domain.RunReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[report.RunID] = *report
	return nil
}

// Get retrieves a run by id.
func (s *RunStore) Get(_ context.Context, runID string) (*domain.RunReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	report, ok := s.runs[runID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrRunNotFound, runID)
	}
	return &report, nil
}

// List returns run summaries newest first.
func (s *RunStore) List(_ context.Context, profile string, limit int) ([]domain.RunSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.RunSummary, 0, len(s.runs))
	for _, report := range s.runs {
		if profile != "" && report.Profile != profile {
			continue
		}
		out = append(out, report.Summarize())
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartedAt.Equal(out[j].StartedAt) {
			return out[i].StartedAt.After(out[j].StartedAt)
		}
		return out[i].RunID < out[j].RunID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
