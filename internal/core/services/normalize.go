package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/nvdpcode/qa-final/internal/core/domain"
)

// Relational field names with special handling.
const (
	fieldItemNumber  = "item_number"
	fieldDescription = "description"
	fieldLifecycle   = "lifecycle"
	fieldReleaseDate = "release_date"
	fieldRevNumber   = "rev_number"
	fieldIFSFilePath = "ifs_filepath"
	fieldHFSFilePath = "hfs_filepath"
)

// NormalizeRow returns a copy of row with lower-cased keys, canonical
// timestamps and NullMarker in place of absent values.
//
// A non-null rev_number is wrapped in single quotes. The index stores it
// unquoted, so key derivation and field comparison strip the quotes again.
func NormalizeRow(row domain.Row) domain.Document {
	doc := make(domain.Document, len(row))
	for k, v := range row {
		key := strings.ToLower(k)
		v = normalizeRelationalValue(v)
		if key == fieldRevNumber && v != domain.NullMarker {
			v = "'" + stringify(v) + "'"
		}
		doc[key] = v
	}
	return doc
}

func normalizeRelationalValue(v any) any {
	switch t := v.(type) {
	case nil:
		return domain.NullMarker
	case []byte:
		return normalizeRelationalValue(string(t))
	case string:
		if isRelationalNull(t) {
			return domain.NullMarker
		}
		return t
	case time.Time:
		return t.Format(domain.TimestampLayout)
	case *time.Time:
		if t == nil {
			return domain.NullMarker
		}
		return t.Format(domain.TimestampLayout)
	default:
		return v
	}
}

func isRelationalNull(s string) bool {
	return s == "" || s == "null" || strings.EqualFold(s, "n/a")
}

// stringify renders a scalar the way both stores print it.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case time.Time:
		return t.Format(domain.TimestampLayout)
	case *time.Time:
		if t == nil {
			return ""
		}
		return t.Format(domain.TimestampLayout)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}
