package services

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nvdpcode/qa-final/internal/core/domain"
	"github.com/nvdpcode/qa-final/internal/core/ports/driven"
	"github.com/nvdpcode/qa-final/internal/core/ports/driving"
	"github.com/nvdpcode/qa-final/internal/logger"
)

// Ensure CheckService implements the interface.
var _ driving.CheckService = (*CheckService)(nil)

// Query labels used in fetch logs.
const (
	labelParentQuery = "PARENT_QUERY"
	labelChildQuery  = "CHILD_QUERY"
)

// checkTitles are the section banner titles for each check.
var checkTitles = map[domain.CheckKind]string{
	domain.CheckCounts:    "No of Records Checker",
	domain.CheckColumns:   "Column Checker",
	domain.CheckDocuments: "Document Comparator",
	domain.CheckLifecycle: "Lifecycle and Release Date Checker",
}

// CheckService fetches both stores for a profile and runs the
// reconciliation engine over the results.
type CheckService struct {
	factory driven.SourceFactory
	log     *zap.Logger
	now     func() time.Time
	newID   func() string
}

// NewCheckService creates a new check service.
func NewCheckService(factory driven.SourceFactory, log *zap.Logger) *CheckService {
	if log == nil {
		log = zap.NewNop()
	}
	return &CheckService{
		factory: factory,
		log:     log,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// CheckCounts compares composite relational documents with index documents by count.
func (s *CheckService) CheckCounts(ctx context.Context, profile domain.Profile) (*domain.CountResult, error) {
	return s.checkCounts(ctx, profile.WithDefaults(), s.log)
}

// CheckColumns compares relational field names with the index schema.
func (s *CheckService) CheckColumns(ctx context.Context, profile domain.Profile) (*domain.ColumnResult, error) {
	return s.checkColumns(ctx, profile.WithDefaults(), s.log)
}

// CompareDocuments pairs documents by key and compares their fields.
func (s *CheckService) CompareDocuments(ctx context.Context, profile domain.Profile) (*domain.DocumentResult, error) {
	return s.compareDocuments(ctx, profile.WithDefaults(), s.log)
}

// CheckLifecycle validates lifecycle state and release dates in the index.
func (s *CheckService) CheckLifecycle(ctx context.Context, profile domain.Profile) (*domain.LifecycleResult, error) {
	return s.checkLifecycle(ctx, profile.WithDefaults(), s.log)
}

// Run executes checks in order. A failing check is recorded in the report
// and the run continues with the next one.
func (s *CheckService) Run(ctx context.Context, profile domain.Profile, checks []domain.CheckKind) (*domain.RunReport, error) {
	profile = profile.WithDefaults()
	if len(checks) == 0 {
		checks = domain.AllChecks
	}
	for _, check := range checks {
		if _, ok := checkTitles[check]; !ok {
			return nil, fmt.Errorf("unknown check %q", check)
		}
	}

	report := &domain.RunReport{
		RunID:     s.newID(),
		Profile:   profile.Name,
		DocType:   profile.DocType,
		StartedAt: s.now(),
	}
	log := s.log.With(zap.String("run_id", report.RunID), zap.String("doctype", profile.DocType))

	for _, check := range checks {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		logger.Section(log, fmt.Sprintf("%s for Doctype: %s", checkTitles[check], profile.DocType))

		var err error
		switch check {
		case domain.CheckCounts:
			report.Counts, err = s.checkCounts(ctx, profile, log)
		case domain.CheckColumns:
			report.Columns, err = s.checkColumns(ctx, profile, log)
		case domain.CheckDocuments:
			report.Documents, err = s.compareDocuments(ctx, profile, log)
		case domain.CheckLifecycle:
			report.Lifecycle, err = s.checkLifecycle(ctx, profile, log)
		}
		if err != nil {
			log.Error("Check failed", zap.String("check", string(check)), zap.Error(err))
			if report.Errors == nil {
				report.Errors = make(map[domain.CheckKind]string)
			}
			report.Errors[check] = err.Error()
		}
	}

	report.FinishedAt = s.now()
	log.Info("Run finished",
		zap.Int("discrepancies", len(report.Discrepancies())),
		zap.Int("failed_checks", len(report.Errors)),
		zap.Duration("elapsed", report.FinishedAt.Sub(report.StartedAt)))
	return report, nil
}

func (s *CheckService) checkCounts(ctx context.Context, profile domain.Profile, log *zap.Logger) (*domain.CountResult, error) {
	relational, err := s.fetchComposite(ctx, profile, log)
	if err != nil {
		return nil, err
	}
	index, err := s.fetchIndex(ctx, profile, log)
	if err != nil {
		return nil, err
	}
	return s.reconciler(profile, log).CountCheck(len(relational), len(index)), nil
}

func (s *CheckService) checkColumns(ctx context.Context, profile domain.Profile, log *zap.Logger) (*domain.ColumnResult, error) {
	relational, err := s.fetchComposite(ctx, profile, log)
	if err != nil {
		return nil, err
	}

	source, err := s.indexSource(profile)
	if err != nil {
		return nil, err
	}
	fields, err := source.SchemaFields(ctx)
	if err != nil {
		return nil, domain.NewSourceFetchError(domain.StoreIndex, "schema/fields", err)
	}
	log.Info(fmt.Sprintf("Fetched %d schema fields from %s", len(fields), profile.IndexLabel))

	return s.reconciler(profile, log).ColumnCheck(relational, fields, profile.IgnoreIndexFields), nil
}

// compareDocuments degrades a failing side to an empty collection so the
// run still reports the asymmetric difference.
func (s *CheckService) compareDocuments(ctx context.Context, profile domain.Profile, log *zap.Logger) (*domain.DocumentResult, error) {
	relational, err := s.fetchDocuments(ctx, profile, log)
	if err != nil {
		log.Error(fmt.Sprintf("Error fetching data from %s", profile.RelationalLabel), zap.Error(err))
		relational = nil
	}

	index, err := s.fetchIndex(ctx, profile, log)
	if err != nil {
		log.Error(fmt.Sprintf("Error fetching data from %s", profile.IndexLabel), zap.Error(err))
		index = nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return s.reconciler(profile, log).Reconcile(relational, index, profile.CompareFields), nil
}

func (s *CheckService) checkLifecycle(ctx context.Context, profile domain.Profile, log *zap.Logger) (*domain.LifecycleResult, error) {
	index, err := s.fetchIndex(ctx, profile, log)
	if err != nil {
		return nil, err
	}
	validator := NewLifecycleValidator(log, profile.ExpectedLifecycle, LifecycleExtractor(profile))
	return validator.Validate(index), nil
}

// fetchComposite runs the parent and child queries and joins the results.
func (s *CheckService) fetchComposite(ctx context.Context, profile domain.Profile, log *zap.Logger) ([]domain.Document, error) {
	source, err := s.openRelational(ctx, profile)
	if err != nil {
		return nil, err
	}
	defer closeSource(source, log)

	parents, err := s.query(ctx, source, profile.ParentQuery, labelParentQuery, log)
	if err != nil {
		return nil, err
	}
	children, err := s.query(ctx, source, profile.ChildQuery, labelChildQuery, log)
	if err != nil {
		return nil, err
	}

	docs := slices.Collect(NewJoiner(log).Join(parents, children))
	log.Info(fmt.Sprintf("Built %d composite documents", len(docs)),
		zap.Int("parents", len(parents)),
		zap.Int("children", len(children)))
	return docs, nil
}

// fetchDocuments returns the relational side of a document comparison:
// the ad-hoc document query when configured, the joined documents otherwise.
func (s *CheckService) fetchDocuments(ctx context.Context, profile domain.Profile, log *zap.Logger) ([]domain.Document, error) {
	if profile.DocumentQuery == "" {
		return s.fetchComposite(ctx, profile, log)
	}

	source, err := s.openRelational(ctx, profile)
	if err != nil {
		return nil, err
	}
	defer closeSource(source, log)

	rows, err := source.Query(ctx, profile.DocumentQuery)
	if err != nil {
		return nil, domain.NewSourceFetchError(domain.StoreRelational, "document query", err)
	}
	rows = source.FormatTimestamps(rows)
	log.Info(fmt.Sprintf("Fetched %d records from %s.", len(rows), profile.RelationalLabel))

	docs := make([]domain.Document, len(rows))
	for i, row := range rows {
		docs[i] = domain.Document(row)
	}
	return docs, nil
}

func (s *CheckService) fetchIndex(ctx context.Context, profile domain.Profile, log *zap.Logger) ([]domain.IndexDocument, error) {
	source, err := s.indexSource(profile)
	if err != nil {
		return nil, err
	}
	docs, err := source.FetchAll(ctx, profile.IndexQuery, profile.PageSize)
	if err != nil {
		return nil, domain.NewSourceFetchError(domain.StoreIndex, profile.IndexQuery, err)
	}
	log.Info(fmt.Sprintf("Fetched %d records from %s.", len(docs), profile.IndexLabel))
	return docs, nil
}

func (s *CheckService) query(ctx context.Context, source driven.RelationalSource, query, label string, log *zap.Logger) ([]domain.Row, error) {
	rows, err := source.Query(ctx, query)
	if err != nil {
		return nil, domain.NewSourceFetchError(domain.StoreRelational, label, err)
	}
	rows = source.FormatTimestamps(rows)
	log.Info(fmt.Sprintf("Fetched %d records from %s", len(rows), label))
	return rows, nil
}

func (s *CheckService) openRelational(ctx context.Context, profile domain.Profile) (driven.RelationalSource, error) {
	if s.factory == nil {
		return nil, fmt.Errorf("source factory: %w", domain.ErrNotConfigured)
	}
	source, err := s.factory.Relational(ctx, profile)
	if err != nil {
		return nil, domain.NewSourceFetchError(domain.StoreRelational, "connect", err)
	}
	return source, nil
}

func (s *CheckService) indexSource(profile domain.Profile) (driven.IndexSource, error) {
	if s.factory == nil {
		return nil, fmt.Errorf("source factory: %w", domain.ErrNotConfigured)
	}
	source, err := s.factory.Index(profile)
	if err != nil {
		return nil, domain.NewSourceFetchError(domain.StoreIndex, "connect", err)
	}
	return source, nil
}

func (s *CheckService) reconciler(profile domain.Profile, log *zap.Logger) *Reconciler {
	return NewReconciler(log, ReconcileOptionsFromProfile(profile))
}

func closeSource(source driven.RelationalSource, log *zap.Logger) {
	if err := source.Close(); err != nil {
		log.Error("Failed to close relational connection", zap.Error(err))
	}
}
