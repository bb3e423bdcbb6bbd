package memory

import (
	"context"
	"fmt"
	"maps"
	"sync"

	"github.com/nvdpcode/qa-final/internal/core/domain"
	"github.com/nvdpcode/qa-final/internal/core/ports/driven"
)

// Ensure the sources implement the interfaces.
var (
	_ driven.RelationalSource = (*RelationalSource)(nil)
	_ driven.IndexSource      = (*IndexSource)(nil)
	_ driven.SourceFactory    = (*SourceFactory)(nil)
)

// RelationalSource serves canned rows keyed by query text.
type RelationalSource struct {
	mu      sync.Mutex
	results map[string][]domain.Row
	errs    map[string]error
	queries []string
	closed  int
}

// NewRelationalSource creates an empty relational source.
func NewRelationalSource() *RelationalSource {
	return &RelationalSource{
		results: make(map[string][]domain.Row),
		errs:    make(map[string]error),
	}
}

// SetResult registers the rows returned for query.
func (s *RelationalSource) SetResult(query string, rows []domain.Row) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[query] = rows
}

// SetError makes query fail with err.
func (s *RelationalSource) SetError(query string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errs[query] = err
}

// Query returns copies of the rows registered for query.
// Unknown queries return no rows.
func (s *RelationalSource) Query(ctx context.Context, query string) ([]domain.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries = append(s.queries, query)
	if err, ok := s.errs[query]; ok {
		return nil, err
	}
	rows := s.results[query]
	out := make([]domain.Row, len(rows))
	for i, row := range rows {
		out[i] = maps.Clone(row)
	}
	return out, nil
}

// FormatTimestamps canonicalises date/time values.
func (s *RelationalSource) FormatTimestamps(rows []domain.Row) []domain.Row {
	return domain.FormatTimestamps(rows)
}

// Close records the close.
func (s *RelationalSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed++
	return nil
}

// Queries returns the executed queries in order.
func (s *RelationalSource) Queries() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.queries...)
}

// CloseCount returns how many times Close was called.
func (s *RelationalSource) CloseCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// IndexSource serves canned index documents and schema fields.
type IndexSource struct {
	mu        sync.Mutex
	docs      []domain.IndexDocument
	fields    []domain.SchemaField
	fetchErr  error
	schemaErr error
	pages     int
}

// NewIndexSource creates an index source over docs.
func NewIndexSource(docs []domain.IndexDocument, fields []domain.SchemaField) *IndexSource {
	return &IndexSource{docs: docs, fields: fields}
}

// SetFetchError makes FetchAll fail with err.
func (s *IndexSource) SetFetchError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetchErr = err
}

// SetSchemaError makes SchemaFields fail with err.
func (s *IndexSource) SetSchemaError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.schemaErr = err
}

// FetchAll pages through the documents pageSize at a time.
// The query is ignored.
func (s *IndexSource) FetchAll(ctx context.Context, _ string, pageSize int) ([]domain.IndexDocument, error) {
	if pageSize <= 0 {
		return nil, fmt.Errorf("%w: page size must be positive", domain.ErrInvalidProfile)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}

	out := make([]domain.IndexDocument, 0, len(s.docs))
	for start := 0; ; start += pageSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		end := min(start+pageSize, len(s.docs))
		page := s.docs[min(start, len(s.docs)):end]
		s.pages++
		out = append(out, page...)
		if len(page) < pageSize {
			break
		}
	}
	return out, nil
}

// SchemaFields returns the configured schema fields.
func (s *IndexSource) SchemaFields(ctx context.Context) ([]domain.SchemaField, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.schemaErr != nil {
		return nil, s.schemaErr
	}
	return append([]domain.SchemaField(nil), s.fields...), nil
}

// Pages returns how many pages FetchAll has read.
func (s *IndexSource) Pages() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pages
}

// SourceFactory hands out fixed in-memory sources.
type SourceFactory struct {
	RelationalSource *RelationalSource
	IndexSource      *IndexSource

	// RelationalErr and IndexErr make the corresponding open fail.
	RelationalErr error
	IndexErr      error
}

// NewSourceFactory creates a factory over the given sources.
func NewSourceFactory(rel *RelationalSource, idx *IndexSource) *SourceFactory {
	return &SourceFactory{RelationalSource: rel, IndexSource: idx}
}

// Relational returns the relational source.
func (f *SourceFactory) Relational(_ context.Context, _ domain.Profile) (driven.RelationalSource, error) {
	if f.RelationalErr != nil {
		return nil, f.RelationalErr
	}
	if f.RelationalSource == nil {
		return nil, fmt.Errorf("relational source: %w", domain.ErrNotConfigured)
	}
	return f.RelationalSource, nil
}

// Index returns the index source.
func (f *SourceFactory) Index(_ domain.Profile) (driven.IndexSource, error) {
	if f.IndexErr != nil {
		return nil, f.IndexErr
	}
	if f.IndexSource == nil {
		return nil, fmt.Errorf("index source: %w", domain.ErrNotConfigured)
	}
	return f.IndexSource, nil
}
