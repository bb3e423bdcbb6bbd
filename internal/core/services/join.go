package services

import (
	"fmt"
	"iter"
	"reflect"
	"strings"

	"go.uber.org/zap"

	"github.com/nvdpcode/qa-final/internal/core/domain"
)

// parentOnlyFields are owned by the parent row and never overwritten by a child.
var parentOnlyFields = map[string]struct{}{
	fieldItemNumber:  {},
	fieldDescription: {},
	fieldLifecycle:   {},
	fieldReleaseDate: {},
}

// Joiner flattens parent item rows and child attachment rows into
// composite documents.
type Joiner struct {
	log *zap.Logger
}

// NewJoiner creates a joiner that reports skipped records to log.
func NewJoiner(log *zap.Logger) *Joiner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Joiner{log: log}
}

// Join yields one composite document per (parent, matching child) pair,
// or a single document for a parent with no children. Children match
// parents by case-insensitive item_number equality.
//
// Parents without an item_number are logged and skipped. A malformed
// child is logged with its item number and skipped; the rest of the
// input is still processed.
func (j *Joiner) Join(parents, children []domain.Row) iter.Seq[domain.Document] {
	return func(yield func(domain.Document) bool) {
		byItem := indexChildren(children)

		for _, parent := range parents {
			lowered := lowerKeys(parent)
			itemNumber := stringify(lowered[fieldItemNumber])
			if itemNumber == "" {
				j.log.Warn("Parent record missing item_number", zap.Any("parent", lowered))
				continue
			}

			matched := byItem[strings.ToLower(itemNumber)]
			if len(matched) == 0 {
				if !yield(NormalizeRow(lowered)) {
					return
				}
				continue
			}

			for _, child := range matched {
				doc, err := compose(lowered, child)
				if err != nil {
					j.log.Error("Error processing child document",
						zap.String("item_number", itemNumber),
						zap.Error(err))
					continue
				}
				if !yield(doc) {
					return
				}
			}
		}
	}
}

// Join is a convenience wrapper around Joiner.Join.
func Join(parents, children []domain.Row, log *zap.Logger) iter.Seq[domain.Document] {
	return NewJoiner(log).Join(parents, children)
}

// indexChildren groups children by lower-cased item number, preserving order.
func indexChildren(children []domain.Row) map[string][]domain.Row {
	byItem := make(map[string][]domain.Row)
	for _, child := range children {
		v, ok := child.Lookup(fieldItemNumber)
		if !ok {
			continue
		}
		key := strings.ToLower(stringify(v))
		if key == "" {
			continue
		}
		byItem[key] = append(byItem[key], child)
	}
	return byItem
}

func compose(parent, child domain.Row) (domain.Document, error) {
	extra := make(domain.Row, len(child))
	for k, v := range child {
		key := strings.ToLower(strings.TrimSpace(k))
		if key == "" {
			return nil, fmt.Errorf("%w: empty column name", domain.ErrMalformedRecord)
		}
		if _, owned := parentOnlyFields[key]; owned {
			continue
		}
		if !isScalar(v) {
			return nil, fmt.Errorf("%w: column %s has non-scalar value of type %T", domain.ErrMalformedRecord, key, v)
		}
		extra[key] = v
	}

	doc := NormalizeRow(parent)
	for k, v := range NormalizeRow(extra) {
		doc[k] = v
	}
	return doc, nil
}

func lowerKeys(row domain.Row) domain.Row {
	out := make(domain.Row, len(row))
	for k, v := range row {
		out[strings.ToLower(k)] = v
	}
	return out
}

func isScalar(v any) bool {
	if v == nil {
		return true
	}
	if _, ok := v.([]byte); ok {
		return true
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Chan, reflect.Func:
		return false
	default:
		return true
	}
}
