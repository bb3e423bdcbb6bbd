package services

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/nvdpcode/qa-final/internal/core/domain"
)

// ReconcileOptions configures reporting for a Reconciler.
type ReconcileOptions struct {
	// RelationalLabel and IndexLabel name the stores in report messages.
	RelationalLabel string
	IndexLabel      string

	// OnlyInRelationalMax and OnlyInIndexMax cap how many keys are shown in
	// logs. Results always carry the full sets.
	OnlyInRelationalMax int
	OnlyInIndexMax      int

	// IndexTag extracts the real value from tagged index values.
	IndexTag TagStripper
}

// ReconcileOptionsFromProfile derives reconciler options from a profile.
func ReconcileOptionsFromProfile(p domain.Profile) ReconcileOptions {
	tag := TagStripper(NoTag)
	if p.TaggedIndexValues {
		tag = PrefixTag
	}
	return ReconcileOptions{
		RelationalLabel:     p.RelationalLabel,
		IndexLabel:          p.IndexLabel,
		OnlyInRelationalMax: p.OnlyInRelationalMax,
		OnlyInIndexMax:      p.OnlyInIndexMax,
		IndexTag:            tag,
	}
}

// Reconciler compares relational documents with index documents and
// reports every discrepancy to its logger.
type Reconciler struct {
	log  *zap.Logger
	opts ReconcileOptions
}

// NewReconciler creates a reconciler. Zero-valued options fall back to
// the profile defaults.
func NewReconciler(log *zap.Logger, opts ReconcileOptions) *Reconciler {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.RelationalLabel == "" {
		opts.RelationalLabel = domain.DefaultRelationalLabel
	}
	if opts.IndexLabel == "" {
		opts.IndexLabel = domain.DefaultIndexLabel
	}
	if opts.OnlyInRelationalMax <= 0 {
		opts.OnlyInRelationalMax = domain.DefaultOnlyInRelationalMax
	}
	if opts.OnlyInIndexMax <= 0 {
		opts.OnlyInIndexMax = domain.DefaultOnlyInIndexMax
	}
	if opts.IndexTag == nil {
		opts.IndexTag = NoTag
	}
	return &Reconciler{log: log, opts: opts}
}

// CountCheck compares raw record totals only. Equal counts never produce
// a discrepancy, even if the underlying document sets differ.
func (r *Reconciler) CountCheck(relationalCount, indexCount int) *domain.CountResult {
	a, b := r.opts.RelationalLabel, r.opts.IndexLabel
	r.log.Info(fmt.Sprintf("%s record count: %d", a, relationalCount), zap.Int("count", relationalCount))
	r.log.Info(fmt.Sprintf("%s record count: %d", b, indexCount), zap.Int("count", indexCount))

	result := &domain.CountResult{RelationalCount: relationalCount, IndexCount: indexCount}
	if relationalCount == indexCount {
		r.log.Info(fmt.Sprintf("Record counts match between %s and %s.", a, b))
		return result
	}

	result.Mismatch = &domain.CountMismatch{RelationalCount: relationalCount, IndexCount: indexCount}
	r.log.Warn(fmt.Sprintf("Record count discrepancy: %s (%d) vs %s (%d).", a, relationalCount, b, indexCount),
		zap.Int("relational_count", relationalCount),
		zap.Int("index_count", indexCount))
	return result
}

// ColumnCheck compares every field name seen across the relational
// documents with the index schema, minus ignore. Names are compared
// case-insensitively.
func (r *Reconciler) ColumnCheck(docs []domain.Document, schema []domain.SchemaField, ignore []string) *domain.ColumnResult {
	a, b := r.opts.RelationalLabel, r.opts.IndexLabel
	r.log.Info("Starting Columns comparison...")

	relational := make(map[string]struct{})
	for _, doc := range docs {
		for k := range doc {
			relational[strings.ToLower(k)] = struct{}{}
		}
	}

	ignored := make(map[string]struct{}, len(ignore))
	for _, name := range ignore {
		ignored[strings.ToLower(name)] = struct{}{}
	}
	index := make(map[string]struct{}, len(schema))
	for _, field := range schema {
		name := strings.ToLower(field.Name)
		if _, skip := ignored[name]; skip {
			continue
		}
		index[name] = struct{}{}
	}

	result := &domain.ColumnResult{
		RelationalColumns: sortedSet(relational),
		IndexColumns:      sortedSet(index),
	}
	onlyA := difference(relational, index)
	onlyB := difference(index, relational)

	if len(onlyA) == 0 && len(onlyB) == 0 {
		r.log.Info(fmt.Sprintf("Columns match between %s and %s.", a, b))
		return result
	}

	result.Mismatch = &domain.ColumnSetMismatch{OnlyInRelational: onlyA, OnlyInIndex: onlyB}
	if len(onlyA) > 0 {
		r.log.Warn(fmt.Sprintf("Columns mismatch : Columns only in %s but not in %s", a, b),
			zap.Strings("columns", onlyA))
	}
	if len(onlyB) > 0 {
		r.log.Warn(fmt.Sprintf("Columns mismatch : Columns present only in %s but not in %s", b, a),
			zap.Strings("columns", onlyB))
	}
	return result
}

// Reconcile pairs documents by DocumentKey, reports documents present in
// only one store and compares fields for documents present in both.
// Relational values are looked up by field name as given; index values by
// the lower-cased name.
func (r *Reconciler) Reconcile(relational []domain.Document, index []domain.IndexDocument, fields []string) *domain.DocumentResult {
	a, b := r.opts.RelationalLabel, r.opts.IndexLabel

	relByKey := make(map[domain.DocumentKey]domain.Document, len(relational))
	for _, doc := range relational {
		if key, ok := RelationalKey(doc); ok {
			relByKey[key] = doc
		}
	}
	idxByKey := make(map[domain.DocumentKey]domain.IndexDocument, len(index))
	for _, doc := range index {
		if key, ok := IndexKey(doc, r.opts.IndexTag); ok {
			idxByKey[key] = doc
		}
	}

	r.log.Info(fmt.Sprintf("%s documents count: %d", a, len(relByKey)), zap.Int("fetched", len(relational)))
	r.log.Info(fmt.Sprintf("%s documents count: %d", b, len(idxByKey)), zap.Int("fetched", len(index)))

	result := &domain.DocumentResult{
		RelationalCount:  len(relational),
		IndexCount:       len(index),
		RelationalKeyed:  len(relByKey),
		IndexKeyed:       len(idxByKey),
		OnlyInRelational: keyDifference(relByKey, idxByKey),
		OnlyInIndex:      keyDifference(idxByKey, relByKey),
	}

	if len(result.OnlyInRelational) == 0 && len(result.OnlyInIndex) == 0 {
		r.log.Info(fmt.Sprintf("Documents match between %s and %s.", a, b))
	}
	if n := len(result.OnlyInRelational); n > 0 {
		r.log.Warn(fmt.Sprintf("Documents only in %s: %d", a, n), zap.Int("count", n))
		r.log.Warn(fmt.Sprintf("Items only in %s", a),
			zap.Strings("keys", keyStrings(result.OnlyInRelational, r.opts.OnlyInRelationalMax)))
	}
	if n := len(result.OnlyInIndex); n > 0 {
		r.log.Warn(fmt.Sprintf("Documents only in %s: %d", b, n), zap.Int("count", n))
		r.log.Warn(fmt.Sprintf("Items only in %s", b),
			zap.Strings("keys", keyStrings(result.OnlyInIndex, r.opts.OnlyInIndexMax)))
	}

	shared := make([]domain.DocumentKey, 0, len(relByKey))
	for key := range relByKey {
		if _, ok := idxByKey[key]; ok {
			shared = append(shared, key)
		}
	}
	domain.SortKeys(shared)
	result.Matched = len(shared)

	for _, key := range shared {
		mismatches := r.compareFields(key, relByKey[key], idxByKey[key], fields)
		result.FieldMismatches = append(result.FieldMismatches, mismatches...)
	}

	if len(result.FieldMismatches) > 0 {
		result.HasFieldDiscrepancies = true
		r.log.Warn("Unique key which is combination of item number and filepath is mismatched",
			zap.Int("field_mismatches", len(result.FieldMismatches)))
	}
	return result
}

func (r *Reconciler) compareFields(key domain.DocumentKey, rel domain.Document, idx domain.IndexDocument, fields []string) []domain.FieldMismatch {
	var mismatches []domain.FieldMismatch
	for _, field := range fields {
		relValue, _ := rel.Lookup(field)
		a := relationalComparable(relValue)
		b := indexComparable(idx[strings.ToLower(field)], r.opts.IndexTag)

		if equivalent(a, b) {
			continue
		}
		mismatches = append(mismatches, domain.FieldMismatch{
			Key:             key,
			Field:           field,
			RelationalValue: a,
			IndexValue:      b,
		})
	}

	if len(mismatches) == 0 {
		return nil
	}

	r.log.Warn("Discrepancies for ITEM_NUMBER: "+key.ItemNumber, zap.String("file_path", key.FilePath))
	for _, m := range mismatches {
		r.log.Warn(fmt.Sprintf("Field '%s' - %s: %s | %s: %s",
			m.Field, r.opts.RelationalLabel, m.RelationalValue, r.opts.IndexLabel, m.IndexValue),
			zap.String("item_number", key.ItemNumber),
			zap.String("field", m.Field),
			zap.String("relational_value", m.RelationalValue),
			zap.String("index_value", m.IndexValue))
	}
	return mismatches
}

func keyDifference[A, B any](left map[domain.DocumentKey]A, right map[domain.DocumentKey]B) []domain.DocumentKey {
	out := make([]domain.DocumentKey, 0)
	for key := range left {
		if _, ok := right[key]; !ok {
			out = append(out, key)
		}
	}
	domain.SortKeys(out)
	return out
}

func keyStrings(keys []domain.DocumentKey, limit int) []string {
	if limit > 0 && len(keys) > limit {
		keys = keys[:limit]
	}
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.String()
	}
	return out
}

func difference(left, right map[string]struct{}) []string {
	out := make([]string, 0)
	for k := range left {
		if _, ok := right[k]; !ok {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

func sortedSet(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
